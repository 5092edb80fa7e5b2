package series

import (
	"math"
	"strconv"
	"strings"
)

// ThresholdMarker is exported in place of values too small to report.
// It means "present but unmeasurable" and is read as 0.
const ThresholdMarker = "<1"

// NormalizeColumn strips the geography annotation from a series header:
// "email: (Bangladesh)" becomes "email". The period column is returned as-is.
// Normalizing an already normalized name returns it unchanged.
func NormalizeColumn(name string) string {
	if name == PeriodColumn {
		return name
	}
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// NormalizeColumns applies NormalizeColumn to every name.
func NormalizeColumns(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeColumn(n)
	}
	return out
}

// ParseValue converts a cell to a number. The threshold marker reads as 0;
// blanks and anything non-numeric read as NaN.
func ParseValue(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == ThresholdMarker {
		return 0
	}
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// FormatValue renders a cell for CSV output; NaN is written as an empty cell.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
