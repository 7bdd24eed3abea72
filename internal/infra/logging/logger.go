// Package logging provides file-based logging for tasklist.
// Entries go to a single log file (<data_dir>/logs/tasklist.log).
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/tasklist/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger appends formatted entries to the log file.
// Fields are ordered to minimize memory padding.
type Logger struct {
	clock  domain.Clock
	file   *os.File
	mirror *slog.Logger
	path   string
	mu     sync.Mutex
	level  slog.Level
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock overrides the clock used for timestamps.
func WithClock(c domain.Clock) Option {
	return func(l *Logger) { l.clock = c }
}

// WithMirror forwards warnings and errors to the given slog logger as well.
func WithMirror(m *slog.Logger) Option {
	return func(l *Logger) { l.mirror = m }
}

// New creates a Logger that writes to the log file under dataDir.
// If dataDir is empty, logging is disabled (returns a no-op logger).
func New(dataDir string, level slog.Level, opts ...Option) *Logger {
	l := &Logger{
		clock: domain.RealClock{},
		level: level,
	}
	if dataDir != "" {
		l.path = domain.LogPath(dataDir)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Path returns the log file path ("" when disabled).
func (l *Logger) Path() string {
	return l.path
}

// ensureFile opens or returns the log file. The caller holds l.mu.
func (l *Logger) ensureFile() (*os.File, error) {
	if l.file != nil {
		return l.file, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return f, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [task-1704164645000] [category] message
func formatLog(t time.Time, level slog.Level, taskID int64, category, msg string) string {
	taskStr := "global"
	if taskID > 0 {
		taskStr = fmt.Sprintf("task-%d", taskID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		taskStr,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, taskID int64, category, msg string) {
	if level < l.level {
		return
	}

	if l.mirror != nil && level >= slog.LevelWarn {
		attrs := []slog.Attr{slog.String("category", category)}
		if taskID > 0 {
			attrs = append(attrs, slog.Int64("task", taskID))
		}
		l.mirror.LogAttrs(context.Background(), level, msg, attrs...)
	}

	if l.path == "" {
		return // File logging disabled
	}

	entry := formatLog(l.clock.Now(), level, taskID, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	if f, err := l.ensureFile(); err == nil {
		_, _ = io.WriteString(f, entry)
	}
}

// Info logs an info message.
func (l *Logger) Info(taskID int64, category, msg string) {
	l.log(slog.LevelInfo, taskID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(taskID int64, category, msg string) {
	l.log(slog.LevelDebug, taskID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(taskID int64, category, msg string) {
	l.log(slog.LevelWarn, taskID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(taskID int64, category, msg string) {
	l.log(slog.LevelError, taskID, category, msg)
}
