package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var defaultLogger *slog.Logger

// sink is shared by every handler this package creates, so Redirect also
// reaches loggers derived earlier with With.
var sink = &switchWriter{w: os.Stderr}

type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *switchWriter) swap(w io.Writer) io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.w
	s.w = w
	return old
}

func Init(level slog.Level) {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(sink, opts)
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func InitJSON(level slog.Level) {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(sink, opts)
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Setup initializes the default logger from config values.
func Setup(level, format string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		Init(lvl)
	case "json":
		InitJSON(lvl)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

// SetOutput points all log output at w. Defaults to stderr.
func SetOutput(w io.Writer) {
	sink.swap(w)
}

// Redirect sends log output to w until the returned func is called. The
// TUI uses it to keep stderr writes off the alternate screen.
func Redirect(w io.Writer) (restore func()) {
	old := sink.swap(w)
	return func() { sink.swap(old) }
}

// ParseLevel maps a config value (debug, info, warn, error) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
}

func Get() *slog.Logger {
	if defaultLogger == nil {
		Init(slog.LevelWarn)
	}
	return defaultLogger
}

func With(args ...any) *slog.Logger {
	return Get().With(args...)
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}
