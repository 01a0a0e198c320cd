// Package logger is a small leveled logger that writes one line per record into a line
// sink such as hal.Logger.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Level represents logging severity.
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

// ParseLevel accepts debug, info, warn or error in any case.
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
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Sink receives finished log lines without a trailing newline.
type Sink interface {
	WriteLineString(s string)
}

// WriterSink adapts an io.Writer to a Sink.
type WriterSink struct {
	mu sync.Mutex
	W  io.Writer
}

func (s *WriterSink) WriteLineString(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.W, line+"\n")
}

// Logger formats records as "15:04:05.000 LEVEL [prefix] message".
type Logger struct {
	sink     Sink
	minLevel Level
	prefix   string
	now      func() time.Time
}

// New creates a logger. A nil sink discards everything.
func New(sink Sink, minLevel Level, prefix string) *Logger {
	return &Logger{
		sink:     sink,
		minLevel: minLevel,
		prefix:   prefix,
		now:      time.Now,
	}
}

// Discard returns a logger that drops all records.
func Discard() *Logger {
	return New(nil, LevelError+1, "")
}

// WithPrefix creates a sub-logger with an additional prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	newPrefix := prefix
	if l.prefix != "" {
		newPrefix = l.prefix + "/" + prefix
	}
	return &Logger{
		sink:     l.sink,
		minLevel: l.minLevel,
		prefix:   newPrefix,
		now:      l.now,
	}
}

// Enabled reports whether records at level are written.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && l.sink != nil && level >= l.minLevel
}

func (l *Logger) log(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}

	prefix := ""
	if l.prefix != "" {
		prefix = "[" + l.prefix + "] "
	}
	msg := fmt.Sprintf(format, args...)
	l.sink.WriteLineString(l.now().Format("15:04:05.000") + " " + level.String() + " " + prefix + msg)
}

func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

// Step logs the start of a named step and returns a func that logs its completion with
// the elapsed time.
func (l *Logger) Step(name string) func() {
	start := l.now()
	l.Debug("start: %s", name)
	return func() {
		l.Debug("done: %s (took %v)", name, l.now().Sub(start).Round(time.Microsecond))
	}
}
