package app

import (
	"io"
	"log/slog"
)

// newLogger builds the bridge's process logger from the runtime
// configuration. The global slog default is left untouched so an embedding
// host keeps its own logging.
func newLogger(level, format string, outW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}

// parseLevel maps a config string to its slog level, defaulting to info for
// anything unrecognized. Config validation upstream rejects unknown levels;
// this default only matters for programmatic AppConfig values.
func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
