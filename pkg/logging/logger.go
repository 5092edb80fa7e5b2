// Package logging provides structured logging for trendkit using zerolog.
// Terminals get human-readable console output; pipes and files get JSON.
//
// A batch run tags its context once and every component below it logs
// through FromContext:
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithTopic(ctx, "bangladesh_bengali", "email")
//	logging.FromContext(ctx).Warn().Msg("No common anchor")
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger = NewLoggerFromConfig(configFromEnv())

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, including zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a JSON logger writing to w at the global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.GlobalLevel()).With().Timestamp().Logger()
}

// configFromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT; DEBUG=1 is
// shorthand for LOG_LEVEL=debug.
func configFromEnv() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	return cfg
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
