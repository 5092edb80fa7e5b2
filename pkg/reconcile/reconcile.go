// Package reconcile drives the series merges over a data tree. Each
// <region>_<language>/<topic>/ directory holding exports is one job; the
// raw and ratio-linked merges of a job are written next to the topic
// directories as <topic>_<dir>_raw.csv and <topic>_<dir>_adjusted.csv.
//
// A job that cannot be merged is reported with a Status and never stops the
// batch.
package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/trendkit/pkg/errors"
	"github.com/agentstation/trendkit/pkg/logging"
	"github.com/agentstation/trendkit/pkg/series"
)

// Recorder persists topic results, e.g. a run ledger.
type Recorder interface {
	Record(ctx context.Context, runID string, result Result) error
}

// Reconciler merges and writes topic jobs.
type Reconciler struct {
	dryRun   bool
	raw      bool
	adjusted bool
	logger   *zerolog.Logger
	recorder Recorder
	runID    string
}

// New creates a Reconciler with options.
func New(opts ...Option) (*Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	runID := options.runID
	if runID == "" {
		runID = uuid.NewString()
	}

	return &Reconciler{
		dryRun:   options.dryRun,
		raw:      options.raw,
		adjusted: options.adjusted,
		logger:   options.logger,
		recorder: options.recorder,
		runID:    runID,
	}, nil
}

// RunID returns the identifier attached to logs and ledger rows of this reconciler.
func (r *Reconciler) RunID() string {
	return r.runID
}

// Run reconciles jobs one after another. Per-topic problems are reported in
// the Report; the returned error is only set when ctx is canceled, in which
// case the report holds the topics finished so far.
func (r *Reconciler) Run(ctx context.Context, jobs []Job) (*Report, error) {
	ctx = logging.WithLogger(ctx, r.logger)
	ctx = logging.WithRunID(ctx, r.runID)

	report := &Report{
		RunID:     r.runID,
		DryRun:    r.dryRun,
		StartTime: time.Now(),
		Results:   make([]Result, 0, len(jobs)),
	}

	logging.FromContext(ctx).Info().
		Int("topics", len(jobs)).
		Bool("dry_run", r.dryRun).
		Msg("Starting reconciliation")

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			report.EndTime = time.Now()
			return report, errors.Join(errors.ErrCanceled, err)
		}

		topicCtx := logging.WithTopic(ctx, job.Dir, job.Topic)
		result := r.reconcile(topicCtx, job)
		report.Results = append(report.Results, result)

		if r.recorder != nil {
			if err := r.recorder.Record(topicCtx, r.runID, result); err != nil {
				logging.FromContext(topicCtx).Warn().Err(err).Msg("Failed to record result")
			}
		}
	}

	report.EndTime = time.Now()
	logging.FromContext(ctx).Info().
		Int("topics", len(report.Results)).
		Int("failed", report.Failures()).
		Dur("duration", report.Duration()).
		Msg("Reconciliation finished")
	return report, nil
}

// reconcile merges and writes a single job.
func (r *Reconciler) reconcile(ctx context.Context, job Job) Result {
	logger := logging.FromContext(ctx)
	start := time.Now()

	result := Result{
		Dir:          job.Dir,
		Topic:        job.Topic,
		Files:        job.Files,
		RawPath:      job.RawPath(),
		AdjustedPath: job.AdjustedPath(),
	}

	tables := make([]series.Table, 0, len(job.Files))
	for _, f := range job.Files {
		t, err := series.ReadExport(f)
		if err != nil {
			failed := Outcome{Status: StatusFailed, Reason: err.Error()}
			result.Raw, result.Adjusted, result.Err = failed, failed, err
			logger.Error().Err(err).Str("file", f).Msg("Failed to read export")
			result.Duration = time.Since(start)
			return result
		}
		tables = append(tables, t)
	}

	m := Merge(tables, r.raw, r.adjusted)
	result.Raw, result.Adjusted = m.RawOutcome, m.AdjOutcome
	result.Anchor, result.Scales = m.Adjusted.Anchor, m.Adjusted.Scales
	result.Rows = max(m.Raw.Len(), m.Adjusted.Table.Len())

	if m.RawOutcome.Status == StatusSkipped {
		logger.Warn().Msg("No input files for topic")
		result.Duration = time.Since(start)
		return result
	}

	if m.RawOutcome.Status == StatusComputed {
		result.Raw = r.write(ctx, job.RawPath(), m.Raw, &result)
	} else if m.RawOutcome.Status != StatusDisabled {
		logger.Warn().Str("status", string(m.RawOutcome.Status)).Msg(m.RawOutcome.Reason)
	}

	if m.AdjOutcome.Status == StatusComputed {
		result.Adjusted = r.write(ctx, job.AdjustedPath(), m.Adjusted.Table, &result)
		logger.Debug().
			Str("anchor", m.Adjusted.Anchor).
			Floats64("scales", m.Adjusted.Scales).
			Msg("Ratio-linked merge")
	} else if m.AdjOutcome.Status != StatusDisabled {
		logger.Warn().Str("status", string(m.AdjOutcome.Status)).Msg("Skipping adjusted output: " + m.AdjOutcome.Reason)
	}

	result.Duration = time.Since(start)
	return result
}

// write stores a computed table unless running dry.
func (r *Reconciler) write(ctx context.Context, path string, t series.Table, result *Result) Outcome {
	logger := logging.FromContext(ctx)
	if r.dryRun {
		logger.Info().Str("path", path).Int("rows", t.Len()).Msg("Dry run, not writing")
		return Outcome{Status: StatusComputed}
	}
	if err := series.WriteFile(path, t); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to write output")
		result.Err = errors.Join(result.Err, err)
		return Outcome{Status: StatusFailed, Reason: err.Error()}
	}
	logger.Info().Str("path", path).Int("rows", t.Len()).Msg("Wrote output")
	return Outcome{Status: StatusWritten}
}
