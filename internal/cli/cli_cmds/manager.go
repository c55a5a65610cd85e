// Package cli_cmds assembles the command palette for the kestrel CLI.
package cli_cmds

import (
	"github.com/spf13/cobra"

	"github.com/kestrelpay/kestrel-go/internal/cli"
)

// GeneratePalette creates all subcommands for the root command
func GeneratePalette(params *cli.CmdParams) []*cobra.Command {
	return []*cobra.Command{
		NewProcess(params),
		NewVersion(params),
		NewHelp(params),
	}
}
