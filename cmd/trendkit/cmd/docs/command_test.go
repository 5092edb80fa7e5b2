package docs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "trendkit", Short: "test root"}
	root.AddCommand(&cobra.Command{Use: "merge", Short: "merge", Run: func(*cobra.Command, []string) {}})
	root.AddCommand(NewCommand(), NewManCommand())
	return root
}

func TestDocsCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	root := newRoot()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"docs", dir})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "trendkit_merge.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "## trendkit merge")
	assert.NoFileExists(t, filepath.Join(dir, "trendkit_docs.md"))
}

func TestManCommand(t *testing.T) {
	root := newRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"man"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "TRENDKIT")
	assert.Contains(t, out.String(), "merge")
}
