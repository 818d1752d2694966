// Package logger provides structured logging setup for the application.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Format selects the slog handler.
type Format int

const (
	// FormatText writes key=value lines; used by CLI commands.
	FormatText Format = iota
	// FormatJSON writes one JSON object per line; used by the HTTP server.
	FormatJSON
)

// ParseLevel maps a level name to a slog.Level (case-insensitive).
// Unknown names report ok=false and yield slog.LevelInfo.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New builds a logger writing to w at the named level.
// An invalid level falls back to info and the fallback is logged.
func New(w io.Writer, level string, format Format) *slog.Logger {
	lvl, ok := ParseLevel(level)

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	l := slog.New(handler)

	if !ok {
		l.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
	}
	return l
}

// Setup builds a logger like New and installs it as the slog default so
// packages can log through slog.Default().
func Setup(w io.Writer, level string, format Format) *slog.Logger {
	l := New(w, level, format)
	slog.SetDefault(l)
	return l
}
