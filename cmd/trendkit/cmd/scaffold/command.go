// Package scaffold implements the scaffold command.
package scaffold

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/trendkit/internal/cmd/application"
	"github.com/agentstation/trendkit/internal/cmd/emoji"
	"github.com/agentstation/trendkit/internal/scaffold"
)

// NewCommand creates the scaffold command.
func NewCommand(app application.Application) *cobra.Command {
	var layoutPath string

	cmd := &cobra.Command{
		Use:     "scaffold [root]",
		GroupID: "management",
		Short:   "Create the region, language and topic directories",
		Long: `Scaffold creates <root>/<region>_<language>/<topic>/ for every combination
in a YAML layout, each with an empty .placeholder file:

  regions: [dhaka, khulna]
  languages: [english, bengali]
  topics: [email, jobs]

Without --layout the built-in layout is used. Existing directories are left
alone, so running it twice is harmless.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := app.DataDir()
			if len(args) == 1 {
				root = args[0]
			}

			layout := scaffold.DefaultLayout()
			if layoutPath != "" {
				var err error
				if layout, err = scaffold.LoadLayout(layoutPath); err != nil {
					return err
				}
			}

			created, err := scaffold.Create(root, layout)
			if err != nil {
				return err
			}

			app.Logger().Debug().Str("root", root).Int("created", len(created)).Msg("Scaffolded topic directories")
			out := cmd.OutOrStdout()
			for _, dir := range created {
				fmt.Fprintf(out, "%s %s\n", emoji.Success, dir)
			}
			total := len(layout.Paths(root))
			fmt.Fprintf(out, "Created %d of %d topic directories under %s\n", len(created), total, root)
			return nil
		},
	}

	cmd.Flags().StringVar(&layoutPath, "layout", "", "YAML layout file (default: built-in layout)")

	return cmd
}
