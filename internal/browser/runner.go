// Package browser opens generated query links in batches so their exports
// can be downloaded by hand.
package browser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/trendkit/pkg/constants"
	"github.com/agentstation/trendkit/pkg/errors"
	"github.com/agentstation/trendkit/pkg/logging"
)

// Opener opens links somewhere a person can see them.
type Opener interface {
	// Open opens one link.
	Open(ctx context.Context, link string) error
	// CloseBatch closes everything opened since the previous call.
	CloseBatch() error
}

// Session is an Opener holding a browser that must be closed.
type Session interface {
	Opener
	Close() error
}

// Confirm blocks until the user is ready to continue.
type Confirm func(ctx context.Context, prompt string) error

// LineConfirm prints prompt to out and waits for a line on in.
func LineConfirm(in io.Reader, out io.Writer) Confirm {
	reader := bufio.NewReader(in)
	return func(ctx context.Context, prompt string) error {
		fmt.Fprint(out, prompt) //nolint:errcheck // best-effort prompt

		done := make(chan error, 1)
		go func() {
			_, err := reader.ReadString('\n')
			if err == io.EOF {
				err = nil
			}
			done <- err
		}()

		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return errors.Join(errors.ErrCanceled, ctx.Err())
		}
	}
}

// Runner opens links batch by batch.
type Runner struct {
	opener    Opener
	confirm   Confirm
	batchSize int
	delay     time.Duration
	jitter    time.Duration
	logger    *zerolog.Logger
	sleep     func(ctx context.Context, d time.Duration) error
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithBatchSize sets how many links are opened before waiting for confirmation.
func WithBatchSize(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithDelay sets the pause after each link: base plus a random amount below jitter.
func WithDelay(base, jitter time.Duration) RunnerOption {
	return func(r *Runner) {
		r.delay, r.jitter = base, jitter
	}
}

// WithRunnerLogger sets the logger.
func WithRunnerLogger(logger *zerolog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a Runner that opens links with opener and waits on
// confirm after each batch.
func NewRunner(opener Opener, confirm Confirm, opts ...RunnerOption) *Runner {
	r := &Runner{
		opener:    opener,
		confirm:   confirm,
		batchSize: constants.DefaultBatchSize,
		delay:     constants.LinkOpenDelay,
		jitter:    constants.LinkOpenJitter,
		logger:    logging.Default(),
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run opens links in batches. After each batch it waits for confirmation,
// then closes the batch. It returns the number of links opened.
func (r *Runner) Run(ctx context.Context, links []string) (int, error) {
	batches := Batch(links, r.batchSize)
	r.logger.Info().
		Int("links", len(links)).
		Int("batches", len(batches)).
		Int("batch_size", r.batchSize).
		Msg("Opening links in batches")

	opened := 0
	for i, batch := range batches {
		r.logger.Info().Int("batch", i+1).Int("links", len(batch)).Msg("Opening batch")

		for _, link := range batch {
			if err := r.opener.Open(ctx, link); err != nil {
				return opened, err
			}
			opened++
			if err := r.sleep(ctx, r.pause()); err != nil {
				return opened, err
			}
		}

		prompt := fmt.Sprintf("Batch %d/%d open. Press Enter to close it and continue...", i+1, len(batches))
		if err := r.confirm(ctx, prompt); err != nil {
			return opened, err
		}
		if err := r.opener.CloseBatch(); err != nil {
			r.logger.Warn().Err(err).Int("batch", i+1).Msg("Failed to close batch")
		}
	}
	return opened, nil
}

func (r *Runner) pause() time.Duration {
	if r.jitter <= 0 {
		return r.delay
	}
	return r.delay + rand.N(r.jitter)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.ErrCanceled, ctx.Err())
	}
}
