package main

import (
	"io"
	"log/slog"

	"github.com/syssam/modbench/compiler/gen"
)

// newLogger creates a logger writing to w. Unknown levels and formats are
// configuration errors.
func newLogger(levelStr, formatStr string, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, gen.NewConfigError("LogLevel", levelStr, "log level must be one of debug, info, warn, error")
	}

	opts := &slog.HandlerOptions{Level: level}
	switch formatStr {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, gen.NewConfigError("LogFormat", formatStr, "log format must be text or json")
	}
}
