package cli

import (
	"github.com/kestrelpay/kestrel-go/internal"
	"github.com/spf13/cobra"
)

// CmdParams holds all dependencies needed by command handlers
type CmdParams struct {
	Config  *internal.Config
	Logger  *internal.Logger
	Palette []*cobra.Command
	Use     string
	Alias   string
	Short   string
	Long    string
}
