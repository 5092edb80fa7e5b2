package series_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/trendkit/pkg/series"
)

const preamble = "Category: All categories\n\n"

// export renders an export body with the usual two preamble lines.
func export(lines ...string) string {
	return preamble + strings.Join(lines, "\n") + "\n"
}

// writeExport writes an export into dir and returns its path.
func writeExport(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(export(lines...)), 0o644))
	return path
}

// parse parses an in-memory export and fails the test on error.
func parse(t *testing.T, source string, lines ...string) series.Table {
	t.Helper()
	table, err := series.ParseExport(strings.NewReader(export(lines...)), source)
	require.NoError(t, err)
	return table
}

// column returns the values of name in row order, with NaN mapped to -1 so
// results compare with plain equality.
func column(t *testing.T, table series.Table, name string) []float64 {
	t.Helper()
	idx := table.ColumnIndex(name)
	require.GreaterOrEqual(t, idx, 0, "column %q missing from %v", name, table.Columns)
	out := make([]float64, len(table.Rows))
	for i, r := range table.Rows {
		v := r.Values[idx]
		if math.IsNaN(v) {
			v = -1
		}
		out[i] = v
	}
	return out
}
