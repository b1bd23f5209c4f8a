// Package logger configures the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Init installs a text handler on stderr at the given level.
// Level is one of debug, info, warn, error (case-insensitive);
// anything else falls back to info.
func Init(level string) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	slog.SetDefault(slog.New(h))
}

// ParseLevel maps a level name to its slog level.
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

// Debug logs at debug level with key-value attrs.
func Debug(msg string, args ...any) { slog.Debug(msg, args...) }

// Info logs at info level with key-value attrs.
func Info(msg string, args ...any) { slog.Info(msg, args...) }

// Warn logs at warn level with key-value attrs.
func Warn(msg string, args ...any) { slog.Warn(msg, args...) }

// Error logs at error level with key-value attrs.
func Error(msg string, args ...any) { slog.Error(msg, args...) }
