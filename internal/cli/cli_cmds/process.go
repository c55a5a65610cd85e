package cli_cmds

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kestrelpay/kestrel-go/adapters/csvio"
	"github.com/kestrelpay/kestrel-go/adapters/events"
	"github.com/kestrelpay/kestrel-go/interfaces"
	"github.com/kestrelpay/kestrel-go/internal"
	"github.com/kestrelpay/kestrel-go/internal/cli"
	"github.com/kestrelpay/kestrel-go/services"
)

// NewProcess creates the process command
func NewProcess(params *cli.CmdParams) *cobra.Command {
	var (
		outputPath  string
		natsURL     string
		natsSubject string
		auditPath   string
	)

	cmd := &cobra.Command{
		Use:     "process [file]",
		Aliases: []string{"run"},
		Short:   "Process a transaction stream and print the final account snapshot",
		Long: "Reads a CSV transaction stream from the given file, applies every " +
			"record to the ledger in arrival order and writes the resulting " +
			"per-client account snapshot as CSV.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg := params.Config
			if cfg == nil {
				cfg = &internal.Config{}
			}
			if outputPath == "" {
				outputPath = cfg.Output
			}
			if natsURL == "" {
				natsURL = cfg.NATS.URL
			}
			if natsSubject == "" {
				natsSubject = cfg.NATS.Subject
			}
			if auditPath == "" {
				auditPath = cfg.Audit.Path
			}

			return runProcess(cmd, params.Logger, args[0], outputPath, natsURL, natsSubject, auditPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the snapshot to a file instead of stdout")
	cmd.Flags().StringVar(&natsURL, "nats-url", "", "publish per-record outcomes to this NATS server")
	cmd.Flags().StringVar(&natsSubject, "nats-subject", "", "NATS subject for outcome events")
	cmd.Flags().StringVar(&auditPath, "audit-db", "", "record rejected transactions in this SQLite database")

	return cmd
}

func runProcess(cmd *cobra.Command, logger *internal.Logger, inputPath, outputPath, natsURL, natsSubject, auditPath string) error {
	if logger == nil {
		logger = internal.GetLogger()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := internal.GenerateRunID()
	logger.Info(internal.ComponentGeneral, "starting run %s on %s", runID, inputPath)

	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer input.Close()

	sinks, closeSinks, err := buildSinks(logger, runID, natsURL, natsSubject, auditPath)
	if err != nil {
		return err
	}
	defer closeSinks()

	ledger := services.NewLedger()
	txlog := services.NewTransactionLog()
	engine := services.NewEngine(ledger, txlog, logger)
	reader := csvio.NewReader(input, logger)

	var outcomes chan interfaces.Outcome
	if len(sinks) > 0 {
		outcomes = make(chan interfaces.Outcome, 64)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if outcomes != nil {
			defer close(outcomes)
		}
		return engine.Run(gctx, reader, outcomes)
	})
	if outcomes != nil {
		g.Go(func() error {
			for outcome := range outcomes {
				for _, sink := range sinks {
					if err := sink.Emit(gctx, outcome); err != nil {
						logger.Warn(internal.ComponentExport, "outcome sink failed: %v", err)
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := csvio.NewWriter(out).WriteSnapshot(ledger.Snapshot()); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	stats := engine.Stats()
	logger.Info(internal.ComponentGeneral,
		"run %s finished: processed=%d applied=%d rejected=%d malformed=%d clients=%d",
		runID, stats.Processed, stats.Applied, stats.Rejected, reader.Malformed(), ledger.Len())

	return nil
}

// buildSinks assembles the optional outcome sinks. Both are off unless
// configured; the engine pass itself never depends on them.
func buildSinks(logger *internal.Logger, runID, natsURL, natsSubject, auditPath string) ([]interfaces.OutcomeSink, func(), error) {
	var sinks []interfaces.OutcomeSink

	closeAll := func() {
		for _, sink := range sinks {
			if err := sink.Close(); err != nil {
				logger.Warn(internal.ComponentExport, "closing outcome sink: %v", err)
			}
		}
	}

	if natsURL != "" {
		pub, err := events.NewNATSPublisher(natsURL, natsSubject, runID, logger)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, pub)
	}

	if auditPath != "" {
		store, err := internal.NewAuditStore(auditPath, runID)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, store)
	}

	return sinks, closeAll, nil
}
