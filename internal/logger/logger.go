// Package logger is the leveled file logger used by every ccline command.
// Nothing is written unless a log file is configured, so log calls are safe
// while the intro TUI owns the terminal.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Environment variables read by FromEnv.
const (
	EnvLevel = "CCLINE_LOG_LEVEL"
	EnvFile  = "CCLINE_LOG_FILE"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
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
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name. Unknown names yield LevelInfo and an error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// Logger writes "[LEVEL] message" lines at or above its level.
type Logger struct {
	mu     sync.Mutex
	level  Level
	out    *log.Logger
	file   *os.File
	closed bool
}

// Default is used by the package-level helpers.
var Default = FromEnv()

// New returns a logger that discards output until Configure or SetOutput.
func New() *Logger {
	return &Logger{
		level: LevelInfo,
		out:   log.New(io.Discard, "", log.LstdFlags),
	}
}

// FromEnv builds a logger from CCLINE_LOG_LEVEL and CCLINE_LOG_FILE.
// Invalid values are ignored.
func FromEnv() *Logger {
	l := New()
	if lvl, err := ParseLevel(os.Getenv(EnvLevel)); err == nil {
		l.level = lvl
	}
	if path := os.Getenv(EnvFile); path != "" {
		_ = l.openFile(path)
	}
	return l
}

// Configure applies a level name and log file path loaded from the tool
// config. An empty path leaves the current output untouched.
func (l *Logger) Configure(level, path string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	l.SetLevel(lvl)
	if path == "" {
		return nil
	}
	return l.openFile(path)
}

func (l *Logger) openFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = f
	l.closed = false
	l.out.SetOutput(f)
	return nil
}

// Close releases the log file, if any. Further writes are discarded.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil || l.closed {
		return nil
	}
	l.closed = true
	l.out.SetOutput(io.Discard)
	return l.file.Close()
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.SetOutput(w)
}

func (l *Logger) Debug(format string, v ...any) { l.log(LevelDebug, format, v...) }
func (l *Logger) Info(format string, v ...any)  { l.log(LevelInfo, format, v...) }
func (l *Logger) Warn(format string, v ...any)  { l.log(LevelWarn, format, v...) }
func (l *Logger) Error(format string, v ...any) { l.log(LevelError, format, v...) }

func (l *Logger) log(level Level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}
	l.out.Printf("[%s] %s", level, fmt.Sprintf(format, v...))
}

// Debug logs through Default.
func Debug(format string, v ...any) { Default.Debug(format, v...) }

// Info logs through Default.
func Info(format string, v ...any) { Default.Info(format, v...) }

// Warn logs through Default.
func Warn(format string, v ...any) { Default.Warn(format, v...) }

// Error logs through Default.
func Error(format string, v ...any) { Default.Error(format, v...) }

// Close closes Default.
func Close() error { return Default.Close() }
