// Package merge implements the merge command.
package merge

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/trendkit/internal/cmd/application"
	"github.com/agentstation/trendkit/internal/cmd/output"
	"github.com/agentstation/trendkit/internal/ledger"
	"github.com/agentstation/trendkit/pkg/errors"
	"github.com/agentstation/trendkit/pkg/reconcile"
)

// Flags holds the merge command flags.
type Flags struct {
	DryRun       bool
	RawOnly      bool
	AdjustedOnly bool
	Ledger       string
}

// NewCommand creates the merge command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "merge [root]",
		GroupID: "core",
		Short:   "Merge exports into raw and adjusted tables per topic",
		Args:    cobra.MaximumNArgs(1),
		Long: `Merge walks <root>/<region>_<language>/<topic>/ and combines the
multiTimeline*.csv exports of every topic into two tables written next to the
topic directories:

  <topic>_<region>_<language>_raw.csv       outer join, colliding series kept apart
  <topic>_<region>_<language>_adjusted.csv  exports rescaled onto a shared anchor series

Topics that cannot be merged are reported and skipped; the command fails only
when a topic could not be read or written.`,
		Example: `  trendkit merge                 # merge ./data
  trendkit merge exports --dry   # compute without writing
  trendkit merge --raw-only      # skip ratio linking
  trendkit merge --ledger runs.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := app.DataDir()
			if len(args) == 1 {
				root = args[0]
			}
			if flags.Ledger == "" {
				flags.Ledger = app.LedgerPath()
			}
			return run(cmd, app, root, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry", false, "compute merges without writing outputs")
	cmd.Flags().BoolVar(&flags.RawOnly, "raw-only", false, "only produce the raw merge")
	cmd.Flags().BoolVar(&flags.AdjustedOnly, "adjusted-only", false, "only produce the ratio-linked merge")
	cmd.Flags().StringVar(&flags.Ledger, "ledger", "", "record results in this SQLite ledger")
	cmd.MarkFlagsMutuallyExclusive("raw-only", "adjusted-only")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, root string, flags *Flags) error {
	ctx := cmd.Context()
	logger := app.Logger()

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return errors.NewNotFoundError("data directory", root)
	}

	jobs, err := reconcile.Discover(root)
	if err != nil {
		return err
	}
	logger.Debug().Str("root", root).Int("topics", len(jobs)).Msg("Discovered topics")

	opts := []reconcile.Option{
		reconcile.WithDryRun(flags.DryRun),
		reconcile.WithLogger(logger),
	}
	if flags.RawOnly {
		opts = append(opts, reconcile.WithRawOnly())
	}
	if flags.AdjustedOnly {
		opts = append(opts, reconcile.WithAdjustedOnly())
	}
	if flags.Ledger != "" {
		l, err := ledger.Open(ctx, flags.Ledger)
		if err != nil {
			return err
		}
		defer l.Close() //nolint:errcheck // nothing left to flush
		opts = append(opts, reconcile.WithLedger(l))
	}

	r, err := reconcile.New(opts...)
	if err != nil {
		return err
	}

	report, runErr := r.Run(ctx, jobs)
	if report != nil {
		format := output.DetectFormat(app.OutputFormat())
		if err := output.Write(cmd.OutOrStdout(), format, output.NewReportView(report)); err != nil {
			return err
		}
		logger.Info().Msg(report.Summary())
	}
	if runErr != nil {
		return runErr
	}
	if report.HasFailures() {
		return fmt.Errorf("%d topic(s) failed", report.Failures())
	}
	return nil
}
