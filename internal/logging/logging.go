// Package logging builds the process logger and carries it through
// request contexts.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Formats accepted by Options.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configure New.
type Options struct {
	Level  string
	Format string
	// File, when set, is where the TUI sends its logs.
	File   string
	Output io.Writer
}

// DefaultOptions logs at info level in text to stderr.
func DefaultOptions() Options {
	return Options{Level: "info", Format: FormatText}
}

// New builds a logger from opts. An unknown level falls back to info.
func New(opts Options) *logrus.Logger {
	log := logrus.New()

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	if strings.EqualFold(opts.Format, FormatJSON) {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// RedirectToFile points log at path, creating parent directories. If the
// file cannot be opened, output is discarded so nothing reaches the
// terminal. The returned closer must be called on exit.
func RedirectToFile(log *logrus.Logger, path string) io.Closer {
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil)
	}
	log.SetOutput(f)
	return f
}

// DefaultLogFile returns FLASHY_LOG_FILE, or flashy.log under the XDG
// state directory.
func DefaultLogFile() string {
	if p := os.Getenv("FLASHY_LOG_FILE"); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "flashy", "flashy.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "flashy", "flashy.log")
}

type ctxKey struct{}

// NewContext stores log in ctx.
func NewContext(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// WithContext returns the logger stored in ctx, tagged with the chi
// request ID when there is one. Without a stored logger it uses the
// logrus standard logger.
func WithContext(ctx context.Context) logrus.FieldLogger {
	log, ok := ctx.Value(ctxKey{}).(logrus.FieldLogger)
	if !ok {
		log = logrus.StandardLogger()
	}
	if id := middleware.GetReqID(ctx); id != "" {
		return log.WithField("request_id", id)
	}
	return log
}
