// Package open implements the open command.
package open

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/trendkit/internal/browser"
	"github.com/agentstation/trendkit/internal/cmd/application"
	"github.com/agentstation/trendkit/pkg/constants"
)

// Flags holds the open command flags.
type Flags struct {
	Column    string
	BatchSize int
	Delay     time.Duration
	Jitter    time.Duration
}

// NewCommand creates the open command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "open <queries.csv>",
		GroupID: "core",
		Short:   "Open query URLs in a browser, one batch at a time",
		Long: `Open reads the query URLs of a queries CSV and opens them in a browser
so their exports can be downloaded. After each batch it waits for Enter,
then closes the batch's pages and continues with the next one.

A browser is launched unless open.browser_url names a running one to
connect to.`,
		Example: `  trendkit open data/nepal_nepali/queries/NP_ne_email_queries.csv
  trendkit open queries.csv --batch-size 5 --delay 2s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("batch-size") {
				flags.BatchSize = app.BatchSize()
			}
			return run(cmd, app, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.Column, "column", constants.QueryURLColumn, "CSV column holding the URLs")
	cmd.Flags().IntVar(&flags.BatchSize, "batch-size", constants.DefaultBatchSize, "links opened before waiting for Enter")
	cmd.Flags().DurationVar(&flags.Delay, "delay", constants.LinkOpenDelay, "pause after opening each link")
	cmd.Flags().DurationVar(&flags.Jitter, "jitter", constants.LinkOpenJitter, "upper bound of random time added to --delay")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, path string, flags *Flags) error {
	ctx := cmd.Context()
	logger := app.Logger()

	links, err := browser.LoadLinks(path, flags.Column)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No links in %s\n", path)
		return nil
	}

	session, err := app.Browser(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close browser")
		}
	}()

	runner := browser.NewRunner(session,
		browser.LineConfirm(cmd.InOrStdin(), cmd.OutOrStdout()),
		browser.WithBatchSize(flags.BatchSize),
		browser.WithDelay(flags.Delay, flags.Jitter),
		browser.WithRunnerLogger(logger),
	)

	opened, err := runner.Run(ctx, links)
	fmt.Fprintf(cmd.OutOrStdout(), "\nOpened %d of %d links\n", opened, len(links))
	return err
}
