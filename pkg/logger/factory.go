package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a JSON logger on stdout at the given level with optional context extractors.
func New(level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	return NewWithWriter(os.Stdout, level, extractors...)
}

// NewWithWriter is New with a custom destination.
func NewWithWriter(w io.Writer, level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to a slog level.
// Anything else yields info.
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

// NewNope returns a logger that drops everything. Components use it when no logger is set.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
