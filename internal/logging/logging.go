// Package logging defines the logging capability consumed by the dispatcher
// and the process-wide logger setup used by the CLI.
package logging

import (
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/vietddude/stylelog"
)

// Logger is the logging capability used by library packages.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var nop = slog.New(slog.DiscardHandler)

// Nop returns a logger that drops every record.
func Nop() Logger {
	return nop
}

// ParseLevel maps a config level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// Setup installs the styled default logger and returns it.
func Setup(level slog.Level) *slog.Logger {
	stylelog.InitDefault(&tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	})
	return slog.Default()
}
