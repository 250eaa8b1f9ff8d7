// Package logging defines the structured-logging interface used across the
// store and its adapters, with slog and zerolog implementations.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "document stored", "user_id", id, "version", v)
type Logger interface {
	// Debug logs diagnostic detail such as individual dataset writes.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Options selects and configures a Logger implementation.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Format is json or text (slog), or console (zerolog, human readable).
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New builds the Logger described by opts.
func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(opts.Format) {
	case "console":
		return NewZerologLogger(zerolog.New(zerolog.ConsoleWriter{Out: out}).
			Level(zerologLevel(opts.Level)).
			With().
			Timestamp().
			Logger())
	case "text":
		return NewSlogLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slogLevel(opts.Level)})))
	default:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slogLevel(opts.Level)})))
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewZerologLogger(zerolog.Nop())
}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func zerologLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
