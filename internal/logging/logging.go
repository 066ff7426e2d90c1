// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Init creates a logger writing to w, installs it as the slog default and
// returns it. JSON output pairs with --format json so machine consumers get
// one format; text is for humans. Callers pass stderr so that stdout stays
// reserved for PASS/FAIL lines and reports.
func Init(w io.Writer, json bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
