// Package logging writes levelled lines to a daily file under the textframe
// home directory. Every call is a no-op until Initialize succeeds.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelOff suppresses every message.
	LevelOff
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name from config or flags to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "off", "none":
		return LevelOff, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// KeepDays is how many daily files Initialize leaves in the log directory.
const KeepDays = 7

const (
	filePrefix = "textframe-"
	fileSuffix = ".log"
	dayLayout  = "2006-01-02"
)

type logger struct {
	mu    sync.Mutex
	out   io.WriteCloser
	level Level
	path  string
}

var (
	currentMu sync.Mutex
	current   *logger
)

// FileName returns the log file name for the given day.
func FileName(day time.Time) string {
	return filePrefix + day.Format(dayLayout) + fileSuffix
}

// Initialize opens today's file in logDir, appending to it, and removes
// files older than KeepDays.
func Initialize(logDir string, level Level) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	now := time.Now()
	path := filepath.Join(logDir, FileName(now))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	currentMu.Lock()
	prev := current
	current = &logger{out: file, level: level, path: path}
	currentMu.Unlock()
	if prev != nil {
		_ = prev.close()
	}

	if err := prune(logDir, now); err != nil {
		Warn("prune %s: %v", logDir, err)
	}
	return nil
}

// prune deletes daily files dated more than KeepDays before now. Files whose
// names do not parse as a day are left alone.
func prune(logDir string, now time.Time) error {
	matches, err := filepath.Glob(filepath.Join(logDir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return err
	}
	y, m, d := now.Date()
	cutoff := time.Date(y, m, d-KeepDays, 0, 0, 0, 0, now.Location())
	for _, name := range matches {
		stamp := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(name), filePrefix), fileSuffix)
		day, err := time.ParseInLocation(dayLayout, stamp, now.Location())
		if err != nil || !day.Before(cutoff) {
			continue
		}
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func active() *logger {
	currentMu.Lock()
	defer currentMu.Unlock()
	return current
}

func (l *logger) write(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil || level < l.level {
		return
	}
	_, _ = fmt.Fprintf(l.out, "[%s] %s: %s\n", time.Now().Format("2006-01-02 15:04:05.000"), level, msg)
}

func (l *logger) close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil {
		return nil
	}
	err := l.out.Close()
	l.out = nil
	return err
}

func log(level Level, format string, args ...any) {
	if l := active(); l != nil {
		l.write(level, fmt.Sprintf(format, args...))
	}
}

// Debug logs a debug message
func Debug(format string, args ...any) {
	log(LevelDebug, format, args...)
}

// Info logs an info message
func Info(format string, args ...any) {
	log(LevelInfo, format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	log(LevelWarn, format, args...)
}

// Error logs an error message
func Error(format string, args ...any) {
	log(LevelError, format, args...)
}

// WithError logs err prefixed with what was being done.
func WithError(err error, context string) {
	if err != nil {
		log(LevelError, "%s: %v", context, err)
	}
}

// Close closes the log file. Later calls are dropped until the next
// Initialize; Path keeps reporting the closed file.
func Close() error {
	if l := active(); l != nil {
		return l.close()
	}
	return nil
}

// Path returns the file being written, or "" before Initialize.
func Path() string {
	if l := active(); l != nil {
		return l.path
	}
	return ""
}
