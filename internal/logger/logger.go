// Package logger provides the optional debug log for hookline runs. It
// writes leveled, timestamped lines to a size- and age-rotated file so a
// misbehaving hook can be diagnosed after the fact without cluttering
// the console report.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log level constants for filtering.
const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// RotationConfig bounds the size and age of the debug log.
type RotationConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger writes leveled messages to a single destination. All methods
// are safe on a nil receiver, which disables logging entirely.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	level  int
}

// New creates a Logger writing to w at the given minimum level.
// Valid levels: debug, info, warn, error; anything else means info.
func New(w io.Writer, level string) *Logger {
	return &Logger{out: w, level: parseLevel(level)}
}

// NewRotating creates a Logger appending to path, rotated per cfg.
func NewRotating(path, level string, cfg RotationConfig) *Logger {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		LocalTime:  true,
	}
	return &Logger{out: lj, closer: lj, level: parseLevel(level)}
}

// Close flushes and closes the underlying file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (l *Logger) logf(level int, tag, format string, args ...any) {
	if l == nil || l.out == nil || level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	timestamp := time.Now().Format("15:04:05")
	fmt.Fprintf(l.out, "[%s] [%s] %s\n", timestamp, tag, fmt.Sprintf(format, args...))
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) { l.logf(levelDebug, "DEBUG", format, args...) }

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) { l.logf(levelInfo, "INFO", format, args...) }

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...any) { l.logf(levelWarn, "WARN", format, args...) }

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) { l.logf(levelError, "ERROR", format, args...) }
