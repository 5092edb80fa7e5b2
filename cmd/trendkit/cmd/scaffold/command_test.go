package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/trendkit/internal/cmd/application"
)

func TestScaffoldCommand(t *testing.T) {
	root := t.TempDir()
	layout := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(layout, []byte("regions: [dhaka]\nlanguages: [english, bengali]\ntopics: [email]\n"), 0o644))

	run := func() string {
		cmd := NewCommand(&application.Mock{})
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--layout", layout, root})
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	first := run()
	assert.Contains(t, first, "Created 2 of 2 topic directories")
	assert.FileExists(t, filepath.Join(root, "dhaka_bengali", "email", ".placeholder"))

	second := run()
	assert.Contains(t, second, "Created 0 of 2 topic directories")
}

func TestScaffoldCommandDefaultLayout(t *testing.T) {
	root := t.TempDir()
	cmd := NewCommand(&application.Mock{DataDirFunc: func() string { return root }})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestScaffoldCommandBadLayout(t *testing.T) {
	layout := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(layout, []byte("regions: []\n"), 0o644))

	cmd := NewCommand(&application.Mock{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--layout", layout, t.TempDir()})
	assert.Error(t, cmd.Execute())
}
