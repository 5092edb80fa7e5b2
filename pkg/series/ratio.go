package series

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/agentstation/trendkit/pkg/errors"
)

// RatioResult is the outcome of a ratio-linked merge.
type RatioResult struct {
	Table  Table
	Anchor string

	// Scales holds the factor applied to each input; the first is always 1.
	Scales []float64
}

// CommonColumns returns the names present in every set, sorted.
func CommonColumns(sets [][]string) []string {
	if len(sets) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, set := range sets {
		seen := make(map[string]bool, len(set))
		for _, name := range set {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			counts[name]++
		}
	}
	var common []string
	for name, n := range counts {
		if n == len(sets) {
			common = append(common, name)
		}
	}
	slices.Sort(common)
	return common
}

// SelectAnchor picks the lexicographically smallest name present in every
// set. sources name the sets for the error returned when none is shared.
func SelectAnchor(sets [][]string, sources []string) (string, error) {
	common := CommonColumns(sets)
	if len(common) == 0 {
		return "", errors.NewNoCommonAnchorError(sources)
	}
	return common[0], nil
}

// MergeRatioLinked selects an anchor shared by every table and merges the
// tables with MergeRatioLinkedWithAnchor.
func MergeRatioLinked(tables []Table) (RatioResult, error) {
	sets := make([][]string, len(tables))
	sources := make([]string, len(tables))
	for i, t := range tables {
		sets[i] = t.Columns
		sources[i] = t.Source
	}
	anchor, err := SelectAnchor(sets, sources)
	if err != nil {
		return RatioResult{}, err
	}
	return MergeRatioLinkedWithAnchor(tables, anchor)
}

// MergeRatioLinkedWithAnchor seeds the result with the first table, then
// folds in each later table: its columns are multiplied by
// mean(result anchor)/mean(table anchor) over the periods both cover, and
// columns the result already has are summed with missing cells read as 0.
// The scale is 1 when the tables share no period, when the table's anchor
// mean is 0, or when either mean is undefined.
//
// Every table must carry the anchor; otherwise an AnchorMissingError is
// returned and nothing is merged. A result without rows is returned together
// with an EmptyResultError.
func MergeRatioLinkedWithAnchor(tables []Table, anchor string) (RatioResult, error) {
	if len(tables) == 0 {
		return RatioResult{}, errors.NewNoCommonAnchorError(nil)
	}
	for _, t := range tables {
		if !t.HasColumn(anchor) {
			return RatioResult{}, errors.NewAnchorMissingError(anchor, t.Source)
		}
	}

	b := newBuilder()
	scales := make([]float64, 0, len(tables))

	seed := tables[0]
	cols := seedColumns(b, seed)
	for _, r := range seed.Rows {
		idx := b.row(r.Period)
		for j, v := range r.Values {
			if cols[j] >= 0 {
				b.rows[idx].Values[cols[j]] = v
			}
		}
	}
	scales = append(scales, 1)

	for _, t := range tables[1:] {
		scale := linkScale(b, t, anchor)
		scales = append(scales, scale)
		fold(b, t, scale)
	}

	result := RatioResult{Table: b.table("adjusted"), Anchor: anchor, Scales: scales}
	if result.Table.Empty() {
		return result, errors.NewEmptyResultError("adjusted", len(tables))
	}
	return result, nil
}

// MergeRatioLinkedFiles chooses the anchor from the export headers alone,
// then reads every export and merges them with MergeRatioLinkedWithAnchor.
func MergeRatioLinkedFiles(paths []string) (RatioResult, error) {
	sets := make([][]string, len(paths))
	for i, p := range paths {
		header, err := ReadHeader(p)
		if err != nil {
			return RatioResult{}, err
		}
		sets[i] = header
	}
	anchor, err := SelectAnchor(sets, paths)
	if err != nil {
		return RatioResult{}, err
	}

	tables, err := readAll(paths)
	if err != nil {
		return RatioResult{Anchor: anchor}, err
	}
	res, err := MergeRatioLinkedWithAnchor(tables, anchor)
	res.Anchor = anchor
	return res, err
}

// seedColumns adds the table's columns to b. A name repeated within the
// table maps to -1 so only its first occurrence is used.
func seedColumns(b *builder, t Table) []int {
	cols := make([]int, len(t.Columns))
	for j, name := range t.Columns {
		if b.hasColumn(name) {
			cols[j] = -1
			continue
		}
		cols[j] = b.addColumn(name)
	}
	return cols
}

// linkScale computes the factor that brings t's anchor onto the scale of
// the anchor accumulated in b.
func linkScale(b *builder, t Table, anchor string) float64 {
	combinedIdx := b.colIndex[anchor]
	newIdx := t.ColumnIndex(anchor)

	var combined, added []float64
	overlap := 0
	for _, r := range t.Rows {
		idx, ok := b.rowIndex[r.Period]
		if !ok {
			continue
		}
		overlap++
		if v := b.rows[idx].Values[combinedIdx]; !math.IsNaN(v) {
			combined = append(combined, v)
		}
		if v := r.Values[newIdx]; !math.IsNaN(v) {
			added = append(added, v)
		}
	}
	if overlap == 0 || len(combined) == 0 || len(added) == 0 {
		return 1
	}

	meanNew := stat.Mean(added, nil)
	if meanNew == 0 {
		return 1
	}
	return stat.Mean(combined, nil) / meanNew
}

// fold outer-joins t, scaled, into b. Shared columns become
// fill(existing, 0) + fill(new, 0) on every row; new columns take the
// scaled values as they are.
func fold(b *builder, t Table, scale float64) {
	for _, r := range t.Rows {
		b.row(r.Period)
	}

	used := make(map[string]bool, len(t.Columns))
	for j, name := range t.Columns {
		if used[name] {
			continue
		}
		used[name] = true

		incoming := make(map[string]float64, len(t.Rows))
		for _, r := range t.Rows {
			incoming[r.Period] = r.Values[j] * scale
		}

		if b.hasColumn(name) {
			ci := b.colIndex[name]
			for i := range b.rows {
				row := &b.rows[i]
				add := 0.0
				if v, ok := incoming[row.Period]; ok {
					add = fillMissing(v)
				}
				row.Values[ci] = fillMissing(row.Values[ci]) + add
			}
			continue
		}

		ci := b.addColumn(name)
		for period, v := range incoming {
			b.rows[b.rowIndex[period]].Values[ci] = v
		}
	}
}
