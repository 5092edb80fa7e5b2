package reconcile

import (
	"github.com/agentstation/trendkit/pkg/errors"
	"github.com/agentstation/trendkit/pkg/series"
)

// Merged holds both merges of one topic.
type Merged struct {
	Raw        series.Table
	RawOutcome Outcome
	Adjusted   series.RatioResult
	AdjOutcome Outcome
}

// Merge runs both merges over a topic's parsed exports. It touches no
// files, so a topic can be reconciled from tables alone. A failure of one
// merge does not prevent the other.
func Merge(tables []series.Table, raw, adjusted bool) Merged {
	var m Merged
	if len(tables) == 0 {
		skipped := Outcome{Status: StatusSkipped, Reason: "no input files for topic"}
		m.RawOutcome, m.AdjOutcome = skipped, skipped
		return m
	}

	m.RawOutcome = Outcome{Status: StatusDisabled}
	if raw {
		table, err := series.MergeRaw(tables)
		m.Raw = table
		m.RawOutcome = outcome(err)
	}

	m.AdjOutcome = Outcome{Status: StatusDisabled}
	if adjusted {
		res, err := series.MergeRatioLinked(tables)
		m.Adjusted = res
		m.AdjOutcome = outcome(err)
	}
	return m
}

// outcome maps a merge error to the status it stands for.
func outcome(err error) Outcome {
	switch {
	case err == nil:
		return Outcome{Status: StatusComputed}
	case errors.IsEmptyResult(err):
		return Outcome{Status: StatusEmpty, Reason: err.Error()}
	case errors.IsNoCommonAnchor(err):
		return Outcome{Status: StatusNoAnchor, Reason: err.Error()}
	case errors.IsAnchorMissing(err):
		return Outcome{Status: StatusAborted, Reason: err.Error()}
	default:
		return Outcome{Status: StatusFailed, Reason: err.Error()}
	}
}
