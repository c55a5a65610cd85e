package main

import (
	"github.com/kestrelpay/kestrel-go/internal"
	"github.com/kestrelpay/kestrel-go/internal/cli"
	"github.com/kestrelpay/kestrel-go/internal/cli/cli_cmds"
)

func main() {
	cfg, logger := internal.Init()
	defer logger.Close()

	if err := run(cfg, logger); err != nil {
		logger.Fatal(internal.ComponentGeneral, "Error executing command: %v", err)
	}
}

func run(cfg *internal.Config, logger *internal.Logger) error {
	params := &cli.CmdParams{
		Config: cfg,
		Logger: logger,
		Use:    "kestrel",
		Alias:  "kst",
		Short:  "Kestrel Payments Engine",
		Long: "Kestrel Payments Engine streams transaction records through a " +
			"dispute-aware ledger and settles per-client balances.",
	}
	params.Palette = cli_cmds.GeneratePalette(params)

	rootCmd := cli.NewRootCMD(params)

	return rootCmd.Root.Execute()
}
