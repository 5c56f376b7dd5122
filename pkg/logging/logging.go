// Package logging configures the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel selects the log level (debug, info, warn, error).
const EnvLogLevel = "LOG_LEVEL"

// SetDefaultStructuredLogger installs a JSON slog logger on stderr tagged
// with the service name and version. The level is taken from the LOG_LEVEL
// environment variable (debug, info, warn, error; default info).
//
// Long-running entry points (the API server) call this once at startup;
// CLI commands keep the default text handler for human-readable output.
func SetDefaultStructuredLogger(name, version string) {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(os.Getenv(EnvLogLevel)),
	})

	slog.SetDefault(slog.New(handler).With(
		slog.String("service", name),
		slog.String("version", version),
	))
}

// SetDefaultTextLogger installs a text slog logger on stderr at the given
// level string. Used by the CLI for operator-facing diagnostics.
func SetDefaultTextLogger(level string) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string log level to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
