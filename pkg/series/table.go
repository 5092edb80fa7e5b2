package series

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// PeriodColumn is the header of the period label column in exports and outputs.
const PeriodColumn = "Month"

// Row is one period of a Table. Values align with Table.Columns; a missing
// cell is NaN.
type Row struct {
	Period string
	Values []float64
}

// Table is a parsed export or a merge result.
type Table struct {
	// Source names where the table came from, for error messages.
	Source string

	// Columns are the normalized series names, excluding the period column.
	Columns []string

	Rows []Row
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// ColumnIndex returns the position of the first column called name, or -1.
func (t Table) ColumnIndex(name string) int {
	return slices.Index(t.Columns, name)
}

// HasColumn reports whether the table has a column called name.
func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Periods returns the period labels in row order.
func (t Table) Periods() []string {
	periods := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		periods[i] = r.Period
	}
	return periods
}

// Series returns the values of column name keyed by period.
// ok is false when the column does not exist.
func (t Table) Series(name string) (values map[string]float64, ok bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	values = make(map[string]float64, len(t.Rows))
	for _, r := range t.Rows {
		values[r.Period] = r.Values[idx]
	}
	return values, true
}

// Value returns the cell at period/column. Missing rows, columns and cells
// all read as NaN.
func (t Table) Value(period, column string) float64 {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return math.NaN()
	}
	for _, r := range t.Rows {
		if r.Period == period {
			return r.Values[idx]
		}
	}
	return math.NaN()
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := Table{
		Source:  t.Source,
		Columns: slices.Clone(t.Columns),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = Row{Period: r.Period, Values: slices.Clone(r.Values)}
	}
	return out
}

// builder accumulates an outer join keyed by period.
type builder struct {
	columns  []string
	colIndex map[string]int
	rows     []Row
	rowIndex map[string]int
}

func newBuilder() *builder {
	return &builder{
		colIndex: make(map[string]int),
		rowIndex: make(map[string]int),
	}
}

func (b *builder) hasColumn(name string) bool {
	_, ok := b.colIndex[name]
	return ok
}

// addColumn appends a column filled with NaN and returns its index.
func (b *builder) addColumn(name string) int {
	idx := len(b.columns)
	b.columns = append(b.columns, name)
	b.colIndex[name] = idx
	for i := range b.rows {
		b.rows[i].Values = append(b.rows[i].Values, math.NaN())
	}
	return idx
}

// row returns the index of the row for period, appending an all-NaN row if needed.
func (b *builder) row(period string) int {
	if idx, ok := b.rowIndex[period]; ok {
		return idx
	}
	values := make([]float64, len(b.columns))
	for i := range values {
		values[i] = math.NaN()
	}
	idx := len(b.rows)
	b.rows = append(b.rows, Row{Period: period, Values: values})
	b.rowIndex[period] = idx
	return idx
}

// uniqueName returns base, or base with a numeric suffix, not yet used as a column.
func (b *builder) uniqueName(base string) string {
	name := base
	for n := 2; b.hasColumn(name); n++ {
		name = base + "_" + strconv.Itoa(n)
	}
	return name
}

// table returns the accumulated rows sorted by period label.
func (b *builder) table(source string) Table {
	rows := slices.Clone(b.rows)
	slices.SortStableFunc(rows, func(a, c Row) int {
		return strings.Compare(a.Period, c.Period)
	})
	return Table{
		Source:  source,
		Columns: slices.Clone(b.columns),
		Rows:    rows,
	}
}

func fillMissing(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
