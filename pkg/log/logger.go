// Package log provides structured leveled logging for Weave.
package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"
)

// Level represents the severity level of a log message.
type Level int

// Log levels
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level, defaulting to InfoLevel.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}

// Fields is a map of field names to values.
type Fields map[string]interface{}

// Logger defines the logging interface for Weave components.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	// WithField returns a logger that includes the given field on every entry.
	WithField(key string, value interface{}) Logger
	// WithFields returns a logger that includes the given fields on every entry.
	WithFields(fields Fields) Logger
	// WithError tags entries with an error field.
	WithError(err error) Logger
	// WithComponent tags entries with a component name.
	WithComponent(component string) Logger

	// SetLevel sets the minimum log level.
	SetLevel(level Level)
	// GetLevel returns the current minimum log level.
	GetLevel() Level
}

// Entry represents a single log entry handed to a Formatter.
type Entry struct {
	Level     Level
	Message   string
	Fields    Fields
	Timestamp time.Time
}

// Formatter renders a log entry to bytes.
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// BaseLogger implements the Logger interface.
type BaseLogger struct {
	mu        sync.Mutex
	level     Level
	fields    Fields
	formatter Formatter
	out       io.Writer
}

// Option configures a BaseLogger.
type Option func(*BaseLogger)

// WithLevel sets the minimum level at construction.
func WithLevel(level Level) Option {
	return func(l *BaseLogger) { l.level = level }
}

// WithOutput sets the destination writer.
func WithOutput(out io.Writer) Option {
	return func(l *BaseLogger) { l.out = out }
}

// WithFormatter sets the entry formatter.
func WithFormatter(f Formatter) Option {
	return func(l *BaseLogger) { l.formatter = f }
}

// NewLogger creates a logger writing colored text to stderr at InfoLevel,
// unless overridden by options.
func NewLogger(opts ...Option) *BaseLogger {
	l := &BaseLogger{
		level:     InfoLevel,
		fields:    Fields{},
		formatter: NewTextFormatter(),
		out:       os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *BaseLogger) log(level Level, msg string) {
	if level < l.GetLevel() {
		return
	}
	entry := &Entry{
		Level:     level,
		Message:   msg,
		Fields:    l.fields,
		Timestamp: time.Now(),
	}
	formatted, err := l.formatter.Format(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log format error: %v\n", err)
		return
	}
	l.mu.Lock()
	l.out.Write(formatted)
	l.mu.Unlock()
}

func (l *BaseLogger) Debug(msg string) { l.log(DebugLevel, msg) }
func (l *BaseLogger) Info(msg string)  { l.log(InfoLevel, msg) }
func (l *BaseLogger) Warn(msg string)  { l.log(WarnLevel, msg) }
func (l *BaseLogger) Error(msg string) { l.log(ErrorLevel, msg) }

// Fatal logs the message and exits with a non-zero status.
func (l *BaseLogger) Fatal(msg string) {
	l.log(FatalLevel, msg)
	os.Exit(1)
}

func (l *BaseLogger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...))
}
func (l *BaseLogger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...))
}
func (l *BaseLogger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...))
}
func (l *BaseLogger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...))
}

// WithField returns a derived logger carrying one extra field.
func (l *BaseLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(Fields{key: value})
}

// WithFields returns a derived logger carrying extra fields. The receiver is
// not modified.
func (l *BaseLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &BaseLogger{
		level:     l.level,
		fields:    merged,
		formatter: l.formatter,
		out:       l.out,
	}
}

// WithError tags entries with an error field.
func (l *BaseLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

// WithComponent tags entries with a component name.
func (l *BaseLogger) WithComponent(component string) Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum log level.
func (l *BaseLogger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// GetLevel returns the current minimum log level.
func (l *BaseLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// GetFormatter returns the formatter rendering this logger's entries.
func (l *BaseLogger) GetFormatter() Formatter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.formatter
}

// sortedFieldKeys returns field keys in stable order for formatting.
func sortedFieldKeys(fields Fields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var defaultLogger Logger = NewLogger()

// GetDefaultLogger returns the process-wide default logger.
func GetDefaultLogger() Logger {
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide default logger.
func SetDefaultLogger(logger Logger) {
	defaultLogger = logger
}
