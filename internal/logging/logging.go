// Package logging builds the operator loggers. Report output and operator
// logs can share a terminal, so handler choice follows the report
// destination.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds a logger on w. JSON encoding keeps operator logs separable
// from a report stream on the same terminal; text is for direct reading.
func New(w io.Writer, jsonFormat bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if jsonFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Init builds the process logger on stderr, installs it as the slog
// default, and returns it. JSON when the report goes to stdout.
func Init(reportOnStdout bool, level slog.Level) *slog.Logger {
	logger := New(os.Stderr, reportOnStdout, level)
	slog.SetDefault(logger)
	return logger
}

// ForSource scopes a logger to one input file, mirroring the source field
// stamped on reports.
func ForSource(base *slog.Logger, source string) *slog.Logger {
	return base.With(slog.String("source", source))
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
