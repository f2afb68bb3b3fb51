// Package logging wraps zerolog with the key/value call style used across
// hyprgrid.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Logger is a leveled structured logger. A nil *Logger discards everything.
type Logger struct {
	zlog    zerolog.Logger
	level   zerolog.Level
	file    *os.File
	writers []io.Writer
}

type Option func(*Logger) error

// WithConsole logs human-readable lines to w. Colour is enabled only when w
// is a terminal.
func WithConsole(w io.Writer) Option {
	return func(l *Logger) error {
		noColor := true
		if f, ok := w.(*os.File); ok {
			noColor = !term.IsTerminal(int(f.Fd()))
		}
		l.writers = append(l.writers, zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.TimeOnly,
			NoColor:    noColor,
		})
		return nil
	}
}

// WithJSON logs raw zerolog JSON lines to w.
func WithJSON(w io.Writer) Option {
	return func(l *Logger) error {
		l.writers = append(l.writers, w)
		return nil
	}
}

// WithLevel sets the minimum level.
func WithLevel(level zerolog.Level) Option {
	return func(l *Logger) error {
		l.level = level
		return nil
	}
}

// WithFile appends plain-text log lines to path, creating parent directories.
func WithFile(path string) Option {
	return func(l *Logger) error {
		if path == "" {
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = f
		l.writers = append(l.writers, zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
		return nil
	}
}

// New builds a logger. Without any writer option it logs to stderr.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{level: zerolog.InfoLevel}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Close()
			return nil, fmt.Errorf("failed to apply logger option: %w", err)
		}
	}

	var out io.Writer
	switch len(l.writers) {
	case 0:
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly, NoColor: true}
	case 1:
		out = l.writers[0]
	default:
		out = zerolog.MultiLevelWriter(l.writers...)
	}

	l.zlog = zerolog.New(out).Level(l.level).With().Timestamp().Logger()
	return l, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop(), level: zerolog.Disabled}
}

// ParseLevel maps a config level name to a zerolog level. Unknown names
// yield info and an error.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "trace":
		return zerolog.TraceLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "off", "disabled", "none":
		return zerolog.Disabled, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a child logger that adds the given key/value pairs to every line.
func (l *Logger) With(fields ...any) *Logger {
	if l == nil {
		return nil
	}
	ctx := l.zlog.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &Logger{zlog: ctx.Logger(), level: l.level}
}

func (l *Logger) Debug(msg string, fields ...any) {
	if l == nil {
		return
	}
	logFields(l.zlog.Debug(), fields...).Msg(msg)
}

func (l *Logger) Info(msg string, fields ...any) {
	if l == nil {
		return
	}
	logFields(l.zlog.Info(), fields...).Msg(msg)
}

func (l *Logger) Warn(msg string, fields ...any) {
	if l == nil {
		return
	}
	logFields(l.zlog.Warn(), fields...).Msg(msg)
}

// Error logs msg at error level with err attached.
func (l *Logger) Error(msg string, err error, fields ...any) {
	if l == nil {
		return
	}
	event := l.zlog.Error()
	if err != nil {
		event = event.Err(err)
	}
	logFields(event, fields...).Msg(msg)
}

// logFields adds key/value pairs; a trailing key without a value is dropped.
func logFields(event *zerolog.Event, fields ...any) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case error:
			event = event.AnErr(key, v)
		case time.Duration:
			event = event.Dur(key, v)
		case fmt.Stringer:
			event = event.Stringer(key, v)
		default:
			event = event.Interface(key, v)
		}
	}
	return event
}
