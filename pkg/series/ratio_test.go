package series_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/trendkit/pkg/errors"
	"github.com/agentstation/trendkit/pkg/series"
)

func TestMergeRatioLinkedScenario(t *testing.T) {
	a := parse(t, "a", "Month,X: (US)", "2020-01,10", "2020-02,20")
	b := parse(t, "b", "Month,X: (US)", "2020-02,5", "2020-03,15")

	res, err := series.MergeRatioLinked([]series.Table{a, b})
	require.NoError(t, err)

	assert.Equal(t, "X", res.Anchor)
	assert.Equal(t, []float64{1, 4}, res.Scales)
	assert.Equal(t, []string{"2020-01", "2020-02", "2020-03"}, res.Table.Periods())
	assert.Equal(t, []float64{10, 40, 60}, column(t, res.Table, "X"))
}

func TestMergeRatioLinkedZeroMeanScale(t *testing.T) {
	a := parse(t, "a", "Month,X", "2020-01,10", "2020-02,20")
	b := parse(t, "b", "Month,X", "2020-02,<1", "2020-03,15")

	res, err := series.MergeRatioLinked([]series.Table{a, b})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 1}, res.Scales)
	assert.Equal(t, []float64{10, 20, 15}, column(t, res.Table, "X"))
}

func TestMergeRatioLinkedThresholdParticipatesInMean(t *testing.T) {
	a := parse(t, "a", "Month,X", "2020-01,10", "2020-02,30")
	// The new anchor over the overlap is [<1, 8], mean 4. Read as missing
	// the mean would be 8 and the scale 2.5.
	b := parse(t, "b", "Month,X", "2020-01,<1", "2020-02,8")

	res, err := series.MergeRatioLinked([]series.Table{a, b})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 5}, res.Scales)
	assert.Equal(t, []float64{10, 70}, column(t, res.Table, "X"))
}

func TestMergeRatioLinkedNoOverlap(t *testing.T) {
	a := parse(t, "a", "Month,X,Y", "2020-01,10,1")
	b := parse(t, "b", "Month,X,Z", "2020-02,5,7")

	res, err := series.MergeRatioLinked([]series.Table{a, b})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 1}, res.Scales)
	assert.Equal(t, []string{"X", "Y", "Z"}, res.Table.Columns)
	// Shared columns are filled with 0 before summing, on every row.
	assert.Equal(t, []float64{10, 5}, column(t, res.Table, "X"))
	// Columns only one side has keep their gaps.
	assert.Equal(t, []float64{1, -1}, column(t, res.Table, "Y"))
	assert.Equal(t, []float64{-1, 7}, column(t, res.Table, "Z"))
}

func TestMergeRatioLinkedSharedColumnSum(t *testing.T) {
	a := parse(t, "a", "Month,A,S", "2020-01,10,1", "2020-02,20,2")
	b := parse(t, "b", "Month,A,S", "2020-02,10,4", "2020-03,30,6")

	res, err := series.MergeRatioLinked([]series.Table{a, b})
	require.NoError(t, err)

	assert.Equal(t, "A", res.Anchor)
	assert.Equal(t, []float64{1, 2}, res.Scales)
	assert.Equal(t, []float64{10, 40, 60}, column(t, res.Table, "A"))
	assert.Equal(t, []float64{1, 10, 12}, column(t, res.Table, "S"))
}

func TestMergeRatioLinkedThreeInputs(t *testing.T) {
	a := parse(t, "a", "Month,X", "2020-01,10", "2020-02,20")
	b := parse(t, "b", "Month,X", "2020-02,5", "2020-03,15")
	// After b the running X is [10, 40, 60]; over 2020-03 the scale is 60/30.
	c := parse(t, "c", "Month,X,W", "2020-03,30,3", "2020-04,40,4")

	res, err := series.MergeRatioLinked([]series.Table{a, b, c})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 4, 2}, res.Scales)
	assert.Equal(t, []float64{10, 40, 120, 80}, column(t, res.Table, "X"))
	assert.Equal(t, []float64{-1, -1, 6, 8}, column(t, res.Table, "W"))
}

func TestMergeRatioLinkedAnchorSelection(t *testing.T) {
	a := parse(t, "a", "Month,zeta,beta,alpha", "2020-01,1,2,3")
	b := parse(t, "b", "Month,beta,zeta", "2020-01,4,5")

	res, err := series.MergeRatioLinked([]series.Table{a, b})
	require.NoError(t, err)
	assert.Equal(t, "beta", res.Anchor)

	anchor, err := series.SelectAnchor([][]string{{"b", "a", "c"}, {"c", "a"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", anchor)
}

func TestMergeRatioLinkedNoCommonAnchor(t *testing.T) {
	a := parse(t, "a.csv", "Month,X", "2020-01,1")
	b := parse(t, "b.csv", "Month,Y", "2020-01,1")

	_, err := series.MergeRatioLinked([]series.Table{a, b})
	require.Error(t, err)
	assert.True(t, errors.IsNoCommonAnchor(err))
	assert.Contains(t, err.Error(), "a.csv")

	_, err = series.MergeRatioLinked(nil)
	assert.True(t, errors.IsNoCommonAnchor(err))
}

func TestMergeRatioLinkedWithAnchorMissing(t *testing.T) {
	a := parse(t, "a.csv", "Month,X,Y", "2020-01,1,2")
	b := parse(t, "b.csv", "Month,Y", "2020-01,1")

	res, err := series.MergeRatioLinkedWithAnchor([]series.Table{a, b}, "X")
	require.Error(t, err)
	assert.True(t, errors.IsAnchorMissing(err))
	assert.True(t, res.Table.Empty())

	var missing *errors.AnchorMissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "b.csv", missing.File)
	assert.Equal(t, "X", missing.Anchor)
}

func TestMergeRatioLinkedEmpty(t *testing.T) {
	a := parse(t, "a", "Month,X")
	b := parse(t, "b", "Month,X")

	res, err := series.MergeRatioLinked([]series.Table{a, b})
	require.Error(t, err)
	assert.True(t, errors.IsEmptyResult(err))
	assert.Equal(t, "X", res.Anchor)
}

func TestMergeRatioLinkedFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeExport(t, dir, "multiTimeline.csv", "Month,X: (IN),Y: (IN)", "2020-01,10,1", "2020-02,20,2")
	second := writeExport(t, dir, "multiTimeline (1).csv", "Month,X: (IN)", "2020-02,5", "2020-03,15")

	res, err := series.MergeRatioLinkedFiles([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, "X", res.Anchor)
	assert.Equal(t, []float64{10, 40, 60}, column(t, res.Table, "X"))
	assert.Equal(t, []float64{1, 2, -1}, column(t, res.Table, "Y"))

	third := writeExport(t, dir, "multiTimeline (2).csv", "Month,Q", "2020-01,1")
	_, err = series.MergeRatioLinkedFiles([]string{first, third})
	assert.True(t, errors.IsNoCommonAnchor(err))
}

func TestCommonColumns(t *testing.T) {
	assert.Nil(t, series.CommonColumns(nil))
	assert.Equal(t, []string{"a", "b"}, series.CommonColumns([][]string{{"b", "a", "a"}, {"a", "b", "c"}}))
	assert.Empty(t, series.CommonColumns([][]string{{"a"}, {"b"}}))
}
