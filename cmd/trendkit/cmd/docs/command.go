// Package docs implements the hidden docs and man commands.
package docs

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/agentstation/trendkit/pkg/constants"
	"github.com/agentstation/trendkit/pkg/errors"
)

// NewCommand creates the docs command, which writes one markdown page per command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "docs <dir>",
		Short:  "Generate markdown documentation",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
				return errors.WrapIO("create", dir, err)
			}
			root := cmd.Root()
			root.DisableAutoGenTag = true
			if err := doc.GenMarkdownTree(root, dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote documentation to %s\n", dir)
			return nil
		},
	}
}

// NewManCommand creates the man command, which prints the man page.
func NewManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := &doc.GenManHeader{
				Title:   "TRENDKIT",
				Section: "1",
				Source:  "trendkit",
				Manual:  "trendkit Manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
