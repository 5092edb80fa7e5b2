package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/trendkit/internal/browser"
	"github.com/agentstation/trendkit/internal/queries"
	"github.com/agentstation/trendkit/pkg/constants"
	"github.com/agentstation/trendkit/pkg/errors"
)

// Mock is an Application for tests. Each method calls the matching function
// field when set and returns a default otherwise.
type Mock struct {
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	DataDirFunc      func() string
	LedgerPathFunc   func() string
	QueryOptionsFunc func() queries.Options
	BatchSizeFunc    func() int
	BrowserFunc      func(ctx context.Context) (browser.Session, error)
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ Application = (*Mock)(nil)

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the output format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// DataDir returns the data root using the mock function or the default.
func (m *Mock) DataDir() string {
	if m.DataDirFunc != nil {
		return m.DataDirFunc()
	}
	return constants.DefaultDataDir
}

// LedgerPath returns the ledger path using the mock function or "".
func (m *Mock) LedgerPath() string {
	if m.LedgerPathFunc != nil {
		return m.LedgerPathFunc()
	}
	return ""
}

// QueryOptions returns query options using the mock function or the defaults.
func (m *Mock) QueryOptions() queries.Options {
	if m.QueryOptionsFunc != nil {
		return m.QueryOptionsFunc()
	}
	return queries.DefaultOptions()
}

// BatchSize returns the batch size using the mock function or the default.
func (m *Mock) BatchSize() int {
	if m.BatchSizeFunc != nil {
		return m.BatchSizeFunc()
	}
	return constants.DefaultBatchSize
}

// Browser returns a session using the mock function or an error.
func (m *Mock) Browser(ctx context.Context) (browser.Session, error) {
	if m.BrowserFunc != nil {
		return m.BrowserFunc(ctx)
	}
	return nil, errors.New("no browser configured")
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
