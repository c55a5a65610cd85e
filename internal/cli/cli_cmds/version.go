package cli_cmds

import (
	"github.com/spf13/cobra"

	"github.com/kestrelpay/kestrel-go/internal"
	"github.com/kestrelpay/kestrel-go/internal/cli"
)

// NewVersion creates the version command
func NewVersion(params *cli.CmdParams) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Kestrel Payments Engine %s\n", internal.VersionInfo())
		},
	}
}
