package reconcile

import (
	"fmt"
	"time"
)

// Status is the outcome of one output of a topic.
type Status string

const (
	// StatusWritten means the output was produced and written.
	StatusWritten Status = "written"
	// StatusComputed means the output was produced but not written (dry run).
	StatusComputed Status = "computed"
	// StatusSkipped means the topic had no exports.
	StatusSkipped Status = "skipped"
	// StatusDisabled means the output was not requested.
	StatusDisabled Status = "disabled"
	// StatusEmpty means the merge produced no rows; nothing is written.
	StatusEmpty Status = "empty"
	// StatusNoAnchor means no series is shared by every export.
	StatusNoAnchor Status = "no_anchor"
	// StatusAborted means the anchor was missing from an export mid merge.
	StatusAborted Status = "aborted"
	// StatusFailed means reading or writing the topic failed.
	StatusFailed Status = "failed"
)

// OK reports whether the status is a successful one.
func (s Status) OK() bool {
	return s == StatusWritten || s == StatusComputed
}

// Outcome describes what happened to one output.
type Outcome struct {
	Status Status
	Reason string
}

// Result is the outcome of reconciling one topic.
type Result struct {
	Dir   string
	Topic string
	Files []string

	Raw      Outcome
	Adjusted Outcome

	// Anchor and Scales are set when the ratio-linked merge ran.
	Anchor string
	Scales []float64

	RawPath      string
	AdjustedPath string

	Rows     int
	Duration time.Duration
	Err      error
}

// Failed reports whether either output failed outright.
func (r Result) Failed() bool {
	return r.Raw.Status == StatusFailed || r.Adjusted.Status == StatusFailed
}

// Report collects the results of a run.
type Report struct {
	RunID     string
	DryRun    bool
	StartTime time.Time
	EndTime   time.Time
	Results   []Result
}

// Duration returns how long the run took.
func (r *Report) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Failures returns the number of topics that failed.
func (r *Report) Failures() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed() {
			n++
		}
	}
	return n
}

// HasFailures reports whether any topic failed.
func (r *Report) HasFailures() bool {
	return r.Failures() > 0
}

// Counts tallies the statuses of raw and adjusted outputs.
func (r *Report) Counts() (raw, adjusted map[Status]int) {
	raw = make(map[Status]int)
	adjusted = make(map[Status]int)
	for _, res := range r.Results {
		raw[res.Raw.Status]++
		adjusted[res.Adjusted.Status]++
	}
	return raw, adjusted
}

// Summary returns a human-readable summary of the report.
func (r *Report) Summary() string {
	verb := "Reconciled"
	if r.DryRun {
		verb = "Dry run reconciled"
	}
	if f := r.Failures(); f > 0 {
		return fmt.Sprintf("%s %d topic(s), %d failed", verb, len(r.Results), f)
	}
	return fmt.Sprintf("%s %d topic(s)", verb, len(r.Results))
}
