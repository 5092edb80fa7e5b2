package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{name: "default", config: &Config{}, expected: "info"},
		{name: "verbose", config: &Config{Verbose: true}, expected: "debug"},
		{name: "quiet", config: &Config{Quiet: true}, expected: "warn"},
		{name: "verbose and quiet", config: &Config{Verbose: true, Quiet: true}, expected: "warn"},
		{name: "explicit overrides verbose", config: &Config{LogLevel: "error", Verbose: true}, expected: "error"},
		{name: "explicit overrides quiet", config: &Config{LogLevel: "trace", Quiet: true}, expected: "trace"},
		{name: "invalid explicit", config: &Config{LogLevel: "loud"}, expected: "info"},
		{name: "environment", config: &Config{EnvLogLevel: "error"}, expected: "error"},
		{name: "verbose overrides environment", config: &Config{EnvLogLevel: "error", Verbose: true}, expected: "debug"},
		{name: "explicit overrides environment", config: &Config{EnvLogLevel: "error", LogLevel: "warn"}, expected: "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineLogLevel(tt.config))
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{LogLevel: "warn", LogOutput: "discard"})
	assert.Equal(t, "warn", logger.GetLevel().String())
}
