// Package application defines what trendkit commands need from the
// application: configuration, a logger and a browser.
//
// Commands accept the Application interface so they can be tested with Mock:
//
//	mock := &application.Mock{
//	    DataDirFunc: func() string { return t.TempDir() },
//	}
//	cmd := merge.NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/trendkit/internal/browser"
	"github.com/agentstation/trendkit/internal/queries"
)

// Application provides the dependencies commands use.
type Application interface {
	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format, empty for auto-detection.
	OutputFormat() string

	// DataDir returns the root of the <region>_<language>/<topic>/ tree.
	DataDir() string

	// LedgerPath returns the run ledger database, empty when disabled.
	LedgerPath() string

	// QueryOptions returns the configured query URL defaults.
	QueryOptions() queries.Options

	// BatchSize returns how many links the open command opens at a time.
	BatchSize() int

	// Browser starts a browser session for opening links.
	Browser(ctx context.Context) (browser.Session, error)

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
