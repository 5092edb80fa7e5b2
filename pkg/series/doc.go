// Package series merges monthly search-interest exports into wide tables.
//
// An export is a CSV with a two-line preamble, a header whose first field
// names the period column ("Month") and whose remaining fields name series
// ("keyword: (Bangladesh)"), then one row per period. Series names are
// normalized by dropping everything from the first colon, so the same
// keyword exported for different geographies lines up as one column.
//
// Two merges are provided. MergeRaw outer-joins every export on the period
// label and keeps colliding columns apart with a per-file suffix.
// MergeRatioLinked picks an anchor series present in every export, rescales
// each later export so its anchor agrees with the running combination over
// the shared periods, and sums overlapping values.
//
// Both operate on parsed Tables so they can be tested without files; the
// *Files variants read exports from disk first.
package series
