// Package logging builds the zerolog logger used across the app.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// TimeFormat is the console timestamp layout.
const TimeFormat = "15:04:05"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps a config level name to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return level, nil
}

// New returns a console logger writing to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: TimeFormat,
		NoColor:    true,
	}).Level(level).With().Timestamp().Logger()
}

// Open returns a logger appending to path. The terminal belongs to the UI, so with an
// empty path logging is disabled.
func Open(path, level string) (zerolog.Logger, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}
	return New(f, lvl), f, nil
}

// RetryLogger adapts a zerolog logger to the retryablehttp LeveledLogger interface.
type RetryLogger struct {
	Log zerolog.Logger
}

func (l RetryLogger) Error(msg string, keysAndValues ...any) {
	l.Log.Error().Fields(keysAndValues).Msg(msg)
}

func (l RetryLogger) Info(msg string, keysAndValues ...any) {
	l.Log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l RetryLogger) Debug(msg string, keysAndValues ...any) {
	l.Log.Trace().Fields(keysAndValues).Msg(msg)
}

func (l RetryLogger) Warn(msg string, keysAndValues ...any) {
	l.Log.Warn().Fields(keysAndValues).Msg(msg)
}
