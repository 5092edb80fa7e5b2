package series

import (
	"fmt"

	"github.com/agentstation/trendkit/pkg/errors"
)

// MergeRaw outer-joins tables on the period label in input order without any
// rescaling. A column whose name is already taken is kept apart as
// "<name>_file<i>", i being the zero-based input position. The result has
// one row per distinct period, sorted by label; cells no input covered are NaN.
// It fails with an EmptyResultError when there are no rows.
func MergeRaw(tables []Table) (Table, error) {
	b := newBuilder()
	for i, t := range tables {
		cols := make([]int, len(t.Columns))
		for j, name := range t.Columns {
			if b.hasColumn(name) {
				name = b.uniqueName(fmt.Sprintf("%s_file%d", name, i))
			}
			cols[j] = b.addColumn(name)
		}
		for _, r := range t.Rows {
			idx := b.row(r.Period)
			for j, v := range r.Values {
				b.rows[idx].Values[cols[j]] = v
			}
		}
	}

	merged := b.table("raw")
	if merged.Empty() {
		return merged, errors.NewEmptyResultError("raw", len(tables))
	}
	return merged, nil
}

// MergeRawFiles reads every export and merges them with MergeRaw.
func MergeRawFiles(paths []string) (Table, error) {
	tables, err := readAll(paths)
	if err != nil {
		return Table{}, err
	}
	return MergeRaw(tables)
}

func readAll(paths []string) ([]Table, error) {
	tables := make([]Table, 0, len(paths))
	for _, p := range paths {
		t, err := ReadExport(p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
