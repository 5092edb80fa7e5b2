package history

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/trendkit/internal/cmd/application"
	"github.com/agentstation/trendkit/internal/ledger"
	"github.com/agentstation/trendkit/pkg/errors"
	"github.com/agentstation/trendkit/pkg/reconcile"
)

func seed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()
	l, err := ledger.Open(ctx, path)
	require.NoError(t, err)
	defer l.Close() //nolint:errcheck

	for i, topic := range []string{"email", "jobs", "news"} {
		runID := "run-a"
		if i == 2 {
			runID = "run-b"
		}
		require.NoError(t, l.Record(ctx, runID, reconcile.Result{
			Dir:      "nepal_nepali",
			Topic:    topic,
			Raw:      reconcile.Outcome{Status: reconcile.StatusWritten},
			Adjusted: reconcile.Outcome{Status: reconcile.StatusNoAnchor},
		}))
	}
	return path
}

func execute(t *testing.T, app application.Application, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestHistoryCommand(t *testing.T) {
	path := seed(t)

	tests := []struct {
		name   string
		args   []string
		topics []string
	}{
		{name: "latest first", args: []string{"--ledger", path}, topics: []string{"news", "jobs", "email"}},
		{name: "limit", args: []string{"--ledger", path, "--limit", "1"}, topics: []string{"news"}},
		{name: "one run", args: []string{"--ledger", path, "--run", "run-a"}, topics: []string{"email", "jobs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, &application.Mock{}, tt.args...)
			require.NoError(t, err)

			var entries []ledger.Entry
			require.NoError(t, json.Unmarshal([]byte(out), &entries))
			topics := make([]string, 0, len(entries))
			for _, e := range entries {
				topics = append(topics, e.Topic)
			}
			assert.Equal(t, tt.topics, topics)
		})
	}
}

func TestHistoryCommandLedgerFromConfig(t *testing.T) {
	path := seed(t)
	app := &application.Mock{LedgerPathFunc: func() string { return path }}

	out, err := execute(t, app, "--limit", "0")
	require.NoError(t, err)
	assert.Contains(t, out, `"no_anchor"`)
}

func TestHistoryCommandErrors(t *testing.T) {
	_, err := execute(t, &application.Mock{})
	assert.True(t, errors.IsValidationError(err))

	_, err = execute(t, &application.Mock{}, "--ledger", seed(t), "--run", "missing")
	assert.True(t, errors.IsNotFound(err))
}
