package merge

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/trendkit/internal/cmd/application"
	"github.com/agentstation/trendkit/internal/cmd/output"
	"github.com/agentstation/trendkit/internal/ledger"
)

func writeExport(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("Category: All categories\n\n"+body), 0o644))
}

func setup(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	topic := filepath.Join(root, "nepal_nepali", "email")
	writeExport(t, filepath.Join(topic, "multiTimeline.csv"), "Month,X: (Nepal)\n2020-01,10\n2020-02,20\n")
	writeExport(t, filepath.Join(topic, "multiTimeline (1).csv"), "Month,X: (Nepal)\n2020-02,5\n2020-03,15\n")
	return root
}

func execute(t *testing.T, app application.Application, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMergeCommand(t *testing.T) {
	root := setup(t)
	app := &application.Mock{DataDirFunc: func() string { return root }}

	out, err := execute(t, app)
	require.NoError(t, err)

	var view output.ReportView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Topics, 1)
	assert.Equal(t, "written", view.Topics[0].Raw)
	assert.Equal(t, "written", view.Topics[0].Adjusted)
	assert.Equal(t, "X", view.Topics[0].Anchor)

	assert.FileExists(t, filepath.Join(root, "nepal_nepali", "email_nepal_nepali_raw.csv"))
	assert.FileExists(t, filepath.Join(root, "nepal_nepali", "email_nepal_nepali_adjusted.csv"))
}

func TestMergeCommandDryRunWithLedger(t *testing.T) {
	root := setup(t)
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	app := &application.Mock{}

	_, err := execute(t, app, root, "--dry", "--raw-only", "--ledger", dbPath)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(root, "nepal_nepali", "email_nepal_nepali_raw.csv"))

	l, err := ledger.Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer l.Close() //nolint:errcheck
	entries, err := l.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "computed", entries[0].RawStatus)
	assert.Equal(t, "disabled", entries[0].AdjustedStatus)
}

func TestMergeCommandErrors(t *testing.T) {
	app := &application.Mock{}

	_, err := execute(t, app, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	root := setup(t)
	_, err = execute(t, app, root, "--raw-only", "--adjusted-only")
	assert.Error(t, err)

	broken := filepath.Join(root, "nepal_nepali", "email", "multiTimeline (2).csv")
	require.NoError(t, os.WriteFile(broken, []byte("x\n"), 0o644))
	_, err = execute(t, app, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 topic(s) failed")
}
