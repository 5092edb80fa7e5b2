// Package queries implements the queries command.
package queries

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/trendkit/internal/cmd/application"
	"github.com/agentstation/trendkit/internal/cmd/output"
	"github.com/agentstation/trendkit/internal/queries"
)

// Flags holds the queries command flags.
type Flags struct {
	Workbook  string
	Languages string
	Mapping   string
	Out       string
	DryRun    bool

	Timeframe string
	Anchor    string
	HL        string
	ChunkSize int
}

// NewCommand creates the queries command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "queries",
		GroupID: "core",
		Short:   "Build explore URLs from a keyword workbook",
		Long: `Queries reads a keyword workbook (one sheet per topic, one column per
ISO-639-1 language code) and writes, for every country and each of its
languages, one CSV of explore URLs per topic:

  <out>/<country>_<language>/queries/<iso>_<lang>_<topic>_queries.csv

Keywords are grouped four to a URL and compared against the anchor topic.
Languages missing from the dictionary, and topics without keywords in a
language, fall back to English.`,
		Example: `  trendkit queries --workbook topics.xlsx --languages languages.csv --mapping countries.csv
  trendkit queries --workbook topics.xlsx --languages languages.csv --mapping countries.csv \
      --timeframe "2020-01-01 2024-01-01" --chunk-size 3 --dry`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := app.QueryOptions()
			if cmd.Flags().Changed("timeframe") {
				opts.Timeframe = flags.Timeframe
			}
			if cmd.Flags().Changed("anchor") {
				opts.Anchor = flags.Anchor
			}
			if cmd.Flags().Changed("hl") {
				opts.HostLanguage = flags.HL
			}
			if cmd.Flags().Changed("chunk-size") {
				opts.ChunkSize = flags.ChunkSize
			}
			if flags.Out == "" {
				flags.Out = app.DataDir()
			}
			return run(cmd, app, flags, opts)
		},
	}

	defaults := queries.DefaultOptions()
	cmd.Flags().StringVar(&flags.Workbook, "workbook", "", "xlsx workbook with one sheet of keywords per topic")
	cmd.Flags().StringVar(&flags.Languages, "languages", "", "CSV language dictionary (alpha_two, lang_name)")
	cmd.Flags().StringVar(&flags.Mapping, "mapping", "", "CSV country mapping (iso_two, country_name, lang)")
	cmd.Flags().StringVar(&flags.Out, "out", "", "output root (default: data_dir)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry", false, "list the files without writing them")
	cmd.Flags().StringVar(&flags.Timeframe, "timeframe", defaults.Timeframe, "date range as \"<start> <end>\"")
	cmd.Flags().StringVar(&flags.Anchor, "anchor", defaults.Anchor, "anchor term appended to every query")
	cmd.Flags().StringVar(&flags.HL, "hl", defaults.HostLanguage, "interface language")
	cmd.Flags().IntVar(&flags.ChunkSize, "chunk-size", defaults.ChunkSize, "keywords per query")
	for _, name := range []string{"workbook", "languages", "mapping"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *Flags, opts queries.Options) error {
	logger := app.Logger()

	topics, err := queries.LoadWorkbook(flags.Workbook)
	if err != nil {
		return err
	}
	langs, err := queries.LoadLanguages(flags.Languages)
	if err != nil {
		return err
	}
	countries, err := queries.LoadCountries(flags.Mapping)
	if err != nil {
		return err
	}
	logger.Debug().
		Int("topics", len(topics)).
		Int("languages", len(langs)).
		Int("countries", len(countries)).
		Msg("Loaded query inputs")

	files, err := queries.Plan(topics, langs, countries, opts)
	if err != nil {
		return err
	}

	if !flags.DryRun {
		written, err := queries.Write(flags.Out, files)
		if err != nil {
			return err
		}
		logger.Info().Int("files", len(written)).Str("out", flags.Out).Msg("Wrote query files")
	}

	view := make(output.QueryFilesView, 0, len(files))
	total := 0
	for _, f := range files {
		total += len(f.Queries)
		view = append(view, output.QueryFileRow{
			Path:     f.Path(flags.Out),
			Country:  f.Country.Name,
			Language: f.LanguageName,
			Topic:    f.Topic,
			Queries:  len(f.Queries),
		})
	}
	logger.Debug().Int("queries", total).Msg("Planned queries")

	return output.Write(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), view)
}
