// Package logger provides the leveled component logger used throughout
// the risk service. Output goes to an injectable writer so tests can
// capture or silence it.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarning
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes leveled, component-prefixed log entries.
type Logger struct {
	component string
	minLevel  Level
	mu        sync.Mutex
	out       *log.Logger
}

// New creates a Logger for the given component writing to stderr.
func New(component string, minLevel Level) *Logger {
	return NewWithWriter(component, minLevel, os.Stderr)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(component string, minLevel Level, w io.Writer) *Logger {
	return &Logger{
		component: component,
		minLevel:  minLevel,
		out:       log.New(w, "", 0),
	}
}

// WithComponent returns a logger sharing output and level but tagged
// with a different component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component: component,
		minLevel:  l.minLevel,
		out:       l.out,
	}
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if level < l.minLevel {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)
	l.out.Printf("[%s] [%s] [%s] %s", timestamp, level, l.component, message)
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Warning logs a warning message.
func (l *Logger) Warning(format string, args ...interface{}) {
	l.logf(LevelWarning, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}
