// Package app wires configuration, logging and commands for the trendkit CLI.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/trendkit/internal/browser"
	"github.com/agentstation/trendkit/internal/cmd/application"
	"github.com/agentstation/trendkit/internal/queries"
	"github.com/agentstation/trendkit/pkg/errors"
)

var _ application.Application = (*App)(nil)

// App holds the trendkit CLI dependencies.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	mu         sync.Mutex
	sessions   []browser.Session
	newBrowser func(ctx context.Context, controlURL string) (browser.Session, error)
}

// New creates an App with configuration loaded from files and the environment.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		newBrowser: func(ctx context.Context, controlURL string) (browser.Session, error) {
			opener, err := browser.NewRodOpener(ctx, controlURL)
			if err != nil {
				return nil, err
			}
			return opener, nil
		},
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the --format value, empty for auto-detection.
func (a *App) OutputFormat() string { return a.config.Format }

// DataDir returns the export tree root.
func (a *App) DataDir() string { return a.config.DataDir }

// LedgerPath returns the ledger database path.
func (a *App) LedgerPath() string { return a.config.LedgerPath }

// QueryOptions returns the query URL settings.
func (a *App) QueryOptions() queries.Options {
	return queries.Options{
		Timeframe:    a.config.Timeframe,
		Anchor:       a.config.Anchor,
		HostLanguage: a.config.HostLanguage,
		ChunkSize:    a.config.ChunkSize,
	}
}

// BatchSize returns the number of links opened per batch.
func (a *App) BatchSize() int { return a.config.BatchSize }

// Browser launches or connects to a browser. Sessions still open at
// Shutdown are closed there.
func (a *App) Browser(ctx context.Context) (browser.Session, error) {
	s, err := a.newBrowser(ctx, a.config.BrowserURL)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.sessions = append(a.sessions, s)
	a.mu.Unlock()
	return s, nil
}

// Shutdown closes browser sessions left open by an interrupted command.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	sessions := a.sessions
	a.sessions = nil
	a.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if err := s.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close browser during shutdown")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "config cannot be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithBrowserFactory replaces how browser sessions are started.
func WithBrowserFactory(fn func(ctx context.Context, controlURL string) (browser.Session, error)) Option {
	return func(a *App) error {
		a.newBrowser = fn
		return nil
	}
}
