// Package history implements the history command.
package history

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/trendkit/internal/cmd/application"
	"github.com/agentstation/trendkit/internal/cmd/output"
	"github.com/agentstation/trendkit/internal/ledger"
	"github.com/agentstation/trendkit/pkg/errors"
)

// Flags holds the history command flags.
type Flags struct {
	Ledger string
	Limit  int
	Run    string
}

// NewCommand creates the history command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "history",
		GroupID: "management",
		Short:   "Show merge results recorded in the ledger",
		Example: `  trendkit history --ledger runs.db
  trendkit history --ledger runs.db --run 6f1c2a9e-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.Ledger == "" {
				flags.Ledger = app.LedgerPath()
			}
			if flags.Ledger == "" {
				return errors.NewValidationError("ledger", "", "no ledger configured; pass --ledger or set ledger in the config")
			}

			ctx := cmd.Context()
			l, err := ledger.Open(ctx, flags.Ledger)
			if err != nil {
				return err
			}
			defer l.Close() //nolint:errcheck // read-only use

			var entries []ledger.Entry
			if flags.Run != "" {
				entries, err = l.Run(ctx, flags.Run)
			} else {
				entries, err = l.List(ctx, flags.Limit)
			}
			if err != nil {
				return err
			}

			return output.Write(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), output.HistoryView(entries))
		},
	}

	cmd.Flags().StringVar(&flags.Ledger, "ledger", "", "ledger database (default: ledger from the config)")
	cmd.Flags().IntVar(&flags.Limit, "limit", 20, "most recent entries to show, 0 for all")
	cmd.Flags().StringVar(&flags.Run, "run", "", "show every entry of one run")

	return cmd
}
