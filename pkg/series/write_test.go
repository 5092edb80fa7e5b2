package series_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/trendkit/pkg/series"
)

func TestWriteCSV(t *testing.T) {
	table := series.Table{
		Columns: []string{"X", "Y, with comma"},
		Rows: []series.Row{
			{Period: "2020-01", Values: []float64{10, math.NaN()}},
			{Period: "2020-02", Values: []float64{0.5, 3}},
		},
	}

	var sb strings.Builder
	require.NoError(t, series.WriteCSV(&sb, table))

	want := "Month,X,\"Y, with comma\"\n" +
		"2020-01,10,\n" +
		"2020-02,0.5,3\n"
	assert.Equal(t, want, sb.String())
}

func TestWriteFileReadsBack(t *testing.T) {
	dir := t.TempDir()
	a := parse(t, "a", "Month,X,Y", "2020-01,10,<1", "2020-02,,2")

	path := filepath.Join(dir, "out", "topic_dir_raw.csv")
	require.NoError(t, series.WriteFile(path, a))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Month,X,Y\n2020-01,10,0\n2020-02,,2\n", string(data))

	// Written files carry no preamble; prepend one to read them as exports.
	back, err := series.ParseExport(strings.NewReader(preamble+string(data)), "a")
	require.NoError(t, err)
	if diff := cmp.Diff(a, back, cmpTable); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	table := series.Table{Columns: []string{"X"}, Rows: []series.Row{{Period: "p", Values: []float64{1}}}}
	require.NoError(t, series.WriteFile(path, table))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Month,X\np,1\n", string(data))
}
