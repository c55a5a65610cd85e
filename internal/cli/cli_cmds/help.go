package cli_cmds

import (
	"github.com/spf13/cobra"

	"github.com/kestrelpay/kestrel-go/internal/cli"
)

// NewHelp creates the detailed_help command
func NewHelp(params *cli.CmdParams) *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "detailed_help",
		Short: "Show detailed help for all commands",
		Run: func(cmd *cobra.Command, args []string) {
			if !showAll {
				cmd.Println("Use --all to list every command with its description")
				return
			}
			for _, sub := range params.Palette {
				cmd.Printf("%s\n  %s\n", sub.Use, sub.Short)
				if sub.Long != "" {
					cmd.Printf("  %s\n", sub.Long)
				}
				cmd.Println()
			}
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "show help for every command")

	return cmd
}
