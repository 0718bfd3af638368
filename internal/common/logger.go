// Package common provides shared utilities used across the analysis pipeline.
package common

import (
	"log/slog"
	"os"
)

// SetupLogger configures the default slog logger. Format is "json" or
// "console"; anything else falls back to console.
func SetupLogger(level slog.Level, format string) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// DiscardLogger returns a logger that drops everything, for components that
// accept an injected logger but run inside tests.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nullWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }
