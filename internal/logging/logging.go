// Package logging configures process-wide structured logging from command
// line flags and adapts it to the printf-style logger used by the input
// controllers.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"

	"github.com/rtledit/rtl-decimal/internal/field"
)

// Config holds the logging flag values.
type Config struct {
	// Format is one of console, json or logfmt.
	Format string
	// Level is one of debug, info, warn or error.
	Level string
	// Color enables ANSI colors for the console format.
	Color bool
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{Format: "console", Level: "warn"}
}

// RegisterFlags adds --log-fmt and --log-level to fs.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Format, "log-fmt", c.Format, "log format: console, json or logfmt")
	fs.StringVar(&c.Level, "log-level", c.Level, "minimum log level: debug, info, warn or error")
}

// New builds a logger writing to w.
func New(c Config, w io.Writer) (*slog.Logger, error) {
	level, err := slogLevel(c.Level)
	if err != nil {
		return nil, err
	}
	handler, err := slogHandler(c.Format, w, level, c.Color)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

// slogLevel maps the log-level flag value to a slog.Level.
func slogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log-level %q: expected debug, info, warn, or error", level)
	}
}

// slogHandler returns a [slog.Handler] for the given format.
func slogHandler(format string, w io.Writer, level slog.Level, color bool) (slog.Handler, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console", "":
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !color,
		}), nil
	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	case "logfmt":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}), nil
	default:
		return nil, fmt.Errorf("invalid log-fmt %q: expected console, json or logfmt", format)
	}
}

type fieldLogger struct {
	l *slog.Logger
}

// FieldLogger adapts l to field.Logger. A nil l yields a no-op logger.
func FieldLogger(l *slog.Logger) field.Logger {
	if l == nil {
		return field.NopLogger{}
	}
	return fieldLogger{l: l}
}

func (f fieldLogger) Debugf(format string, args ...any) { f.l.Debug(fmt.Sprintf(format, args...)) }
func (f fieldLogger) Infof(format string, args ...any)  { f.l.Info(fmt.Sprintf(format, args...)) }
func (f fieldLogger) Warnf(format string, args ...any)  { f.l.Warn(fmt.Sprintf(format, args...)) }
func (f fieldLogger) Errorf(format string, args ...any) { f.l.Error(fmt.Sprintf(format, args...)) }
