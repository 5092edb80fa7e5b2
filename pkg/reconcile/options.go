package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/trendkit/pkg/errors"
	"github.com/agentstation/trendkit/pkg/logging"
)

// options configures a Reconciler.
type options struct {
	dryRun   bool
	raw      bool
	adjusted bool
	logger   *zerolog.Logger
	recorder Recorder
	runID    string
}

func defaultOptions() *options {
	return &options{
		raw:      true,
		adjusted: true,
		logger:   logging.Default(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if !o.raw && !o.adjusted {
		return nil, &errors.ValidationError{
			Field:   "outputs",
			Message: "raw-only and adjusted-only are mutually exclusive",
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithDryRun computes both merges without writing any output.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}

// WithLogger sets the logger used for per-topic messages.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}

// WithLedger records every topic result with r.
func WithLedger(r Recorder) Option {
	return func(o *options) error {
		o.recorder = r
		return nil
	}
}

// WithRawOnly produces only the raw merge.
func WithRawOnly() Option {
	return func(o *options) error {
		o.adjusted = false
		return nil
	}
}

// WithAdjustedOnly produces only the ratio-linked merge.
func WithAdjustedOnly() Option {
	return func(o *options) error {
		o.raw = false
		return nil
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(o *options) error {
		if id == "" {
			return &errors.ValidationError{
				Field:   "run_id",
				Message: "cannot be empty",
			}
		}
		o.runID = id
		return nil
	}
}
