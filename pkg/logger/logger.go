package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Init builds the process-wide logger. Production gets JSON at info, anything
// else gets text at debug, unless level overrides it.
func Init(env string, level string) {
	InitWithWriter(os.Stderr, env, level)
}

func InitWithWriter(w io.Writer, env string, level string) {
	var handler slog.Handler

	if env == "production" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level, slog.LevelInfo)})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level, slog.LevelDebug)})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func L() *slog.Logger {
	return LoggerWrapper()
}

func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		Init("development", "")
	}
	return defaultLogger
}

// Discard returns a logger that drops everything, handy for tests and quiet CLI runs.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
