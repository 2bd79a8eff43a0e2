package host

import (
	"io"
	"log/slog"
)

// NewLogger builds a logger from config values. It does not touch the
// global slog default, so several hosts can coexist in tests.
func NewLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	if outW == nil {
		outW = io.Discard
	}

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}
