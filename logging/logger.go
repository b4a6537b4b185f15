// Package logging builds the structured logger used across simtopo.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/simtopo/config"
)

// New creates a logger from the logging configuration.
//
// Output is "stderr" (default), "stdout", or a file path that is appended to.
// Format is "text" (default) or "json". Level is one of debug, info (default),
// warn or error.
func New(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	out, closer, err := openOutput(cfg.Output)
	if err != nil {
		return nil, nil, err
	}

	return NewWithWriter(cfg, out), closer, nil
}

// NewWithWriter is New with a fixed destination.
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler

	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a level name to a slog.Level. Unknown names are info.
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openOutput(output string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, nopCloser{}, nil
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log output %s: %w", output, err)
	}

	return f, f, nil
}

// LogWarnings writes resolver warnings at warn level.
func LogWarnings(l *slog.Logger, warnings []config.Warning) {
	for _, w := range warnings {
		l.Warn("config value replaced by default",
			slog.String("field", w.Field),
			slog.String("raw", w.Raw),
			slog.String("fallback", w.Fallback),
			slog.String("reason", w.Reason),
		)
	}
}
