package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/trendkit/cmd/trendkit/cmd/docs"
	"github.com/agentstation/trendkit/cmd/trendkit/cmd/history"
	"github.com/agentstation/trendkit/cmd/trendkit/cmd/merge"
	"github.com/agentstation/trendkit/cmd/trendkit/cmd/open"
	"github.com/agentstation/trendkit/cmd/trendkit/cmd/queries"
	"github.com/agentstation/trendkit/cmd/trendkit/cmd/scaffold"
	"github.com/agentstation/trendkit/cmd/trendkit/cmd/version"
	"github.com/agentstation/trendkit/internal/cmd/output"
	"github.com/agentstation/trendkit/pkg/errors"
)

// Execute runs the CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "trendkit",
		Short:   "Reconcile Google Trends exports",
		Version: a.version,
		Long: `Trendkit prepares and reconciles Google Trends exports collected per
region, language and topic.

It scaffolds the export tree, builds the Explore URLs to download, opens them
in batches, and merges the downloaded multiTimeline CSVs into one raw and one
anchor-adjusted table per topic.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is ./.trendkit.yaml or $HOME/.trendkit.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml (default: table on a terminal, json otherwise)")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	_ = rootCmd.RegisterFlagCompletionFunc("format", fixedCompletions("table", "json", "yaml"))
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", fixedCompletions("trace", "debug", "info", "warn", "error"))

	rootCmd.SetVersionTemplate("trendkit {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand runs before every command. It reloads the configuration when
// --config names a file and applies the global flags.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	configFile := mustGetString(cmd, "config")
	if configFile != "" && configFile != a.config.ConfigFile {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	format := mustGetString(cmd, "format")
	if _, err := output.ParseFormat(format); err != nil {
		return errors.WrapValidation("format", err)
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		format,
		mustGetString(cmd, "log-level"),
	)

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(merge.NewCommand(a))
	rootCmd.AddCommand(queries.NewCommand(a))
	rootCmd.AddCommand(open.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(scaffold.NewCommand(a))
	rootCmd.AddCommand(history.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
	rootCmd.AddCommand(docs.NewCommand())
	rootCmd.AddCommand(docs.NewManCommand())
}

func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// ExitOnError prints err to stderr and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // exiting anyway
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a persistent flag defined in createRootCommand.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a persistent flag defined in createRootCommand.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
