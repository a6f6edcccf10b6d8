// Package log provides a small leveled logger with optional structured
// fields and JSON output. A package-level logger backs the convenience
// functions; components that need isolated output construct their own.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"rulesync/internal/errors"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured logging key/value pair
type Field struct {
	Key   string
	Value interface{}
}

// F creates a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes timestamped, leveled log lines
type Logger struct {
	out  io.Writer
	file *os.File
	json bool
}

// Option configures a Logger
type Option func(*Logger)

// WithOutput directs log output to the given writer
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.out = w
	}
}

// WithJSON switches the logger to JSON-formatted output
func WithJSON() Option {
	return func(l *Logger) {
		l.json = true
	}
}

// WithFile mirrors log output to the named file in addition to stdout.
// A file that cannot be opened is ignored rather than failing startup.
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return
		}
		l.file = f
		l.out = io.MultiWriter(os.Stdout, f)
	}
}

// NewLogger creates a Logger writing to stdout unless configured otherwise
func NewLogger(opts ...Option) *Logger {
	l := &Logger{out: os.Stdout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package-level logger
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetDebug toggles debug-level output
func SetDebug(debug bool) {
	isDebug = debug
}

// Entry is a pending log line carrying accumulated fields
type Entry struct {
	logger *Logger
	fields []Field
}

// With returns an Entry carrying the given fields
func (l *Logger) With(fields ...Field) *Entry {
	return &Entry{logger: l, fields: fields}
}

// With adds further fields to the entry
func (e *Entry) With(fields ...Field) *Entry {
	return &Entry{logger: e.logger, fields: append(e.fields, fields...)}
}

// WithContext exists for future context-aware logging; it currently adds
// nothing.
func (l *Logger) WithContext(_ interface{}) *Entry {
	return &Entry{logger: l}
}

// Info logs the entry at INFO level
func (e *Entry) Info(format string, args ...interface{}) {
	e.logger.log("INFO", e.fields, format, args...)
}

// Warn logs the entry at WARN level
func (e *Entry) Warn(format string, args ...interface{}) {
	e.logger.log("WARN", e.fields, format, args...)
}

// Error logs the entry at ERROR level
func (e *Entry) Error(format string, args ...interface{}) {
	e.logger.log("ERROR", e.fields, format, args...)
}

// Debug logs the entry at DEBUG level when debug output is enabled
func (e *Entry) Debug(format string, args ...interface{}) {
	if isDebug {
		e.logger.log("DEBUG", e.fields, format, args...)
	}
}

// Info logs a formatted message at INFO level
func (l *Logger) Info(format string, args ...interface{}) {
	l.log("INFO", nil, format, args...)
}

// Infof is an alias for Info
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log("INFO", nil, format, args...)
}

// Warn logs a formatted message at WARN level
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log("WARN", nil, format, args...)
}

// Error logs a formatted message at ERROR level
func (l *Logger) Error(format string, args ...interface{}) {
	l.log("ERROR", nil, format, args...)
}

// Debug logs a formatted message at DEBUG level when debug output is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	if isDebug {
		l.log("DEBUG", nil, format, args...)
	}
}

// Debugf is an alias for Debug
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(format, args...)
}

func (l *Logger) log(level string, fields []Field, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	caller := callerInfo()

	if l.json {
		entry := map[string]interface{}{
			"timestamp": timestamp,
			"level":     level,
			"message":   msg,
			"caller":    caller,
		}
		for _, f := range fields {
			entry[f.Key] = f.Value
		}
		data, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.out, "[%s] %s %s: %s\n", timestamp, level, caller, msg)
			return
		}
		fmt.Fprintln(l.out, string(data))
		return
	}

	line := fmt.Sprintf("[%s] %s %s: %s", timestamp, level, caller, msg)
	for _, f := range fields {
		line += fmt.Sprintf(" %s=%v", f.Key, f.Value)
	}
	fmt.Fprintln(l.out, line)
}

// callerInfo reports the file:line of the logging call site, skipping
// frames inside this package.
func callerInfo() string {
	for skip := 3; skip < 8; skip++ {
		_, file, line, ok := runtime.Caller(skip)
		if !ok {
			break
		}
		base := filepath.Base(file)
		if base == "logger.go" {
			continue
		}
		return fmt.Sprintf("%s:%d", base, line)
	}
	return "unknown:0"
}

// Package-level convenience functions using the shared logger

// Info logs a formatted message at INFO level
func Info(format string, args ...interface{}) {
	logger.log("INFO", nil, format, args...)
}

// Warn logs a formatted message at WARN level
func Warn(format string, args ...interface{}) {
	logger.log("WARN", nil, format, args...)
}

// Error logs a formatted message at ERROR level
func Error(format string, args ...interface{}) {
	logger.log("ERROR", nil, format, args...)
}

// Debug logs a formatted message at DEBUG level when debug output is enabled
func Debug(format string, args ...interface{}) {
	if isDebug {
		logger.log("DEBUG", nil, format, args...)
	}
}

// LogWithFields returns an entry on the shared logger carrying fields
func LogWithFields(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithError returns an entry on the shared logger annotated with the
// error's message, kind, and any path or parameter it carries
func LogWithError(err error) *Entry {
	fields := []Field{F("error", fmt.Sprintf("%v", err))}

	var cfgErr *errors.ConfigError
	var opErr *errors.OperationError
	switch {
	case errors.As(err, &cfgErr):
		fields = append(fields, F("error_kind", int(cfgErr.Kind())), F("param", cfgErr.Param()))
	case errors.As(err, &opErr):
		fields = append(fields, F("error_kind", int(opErr.Kind())), F("path", opErr.Path()))
	default:
		var baseErr *errors.ApplicationError
		if errors.As(err, &baseErr) {
			fields = append(fields, F("error_kind", int(baseErr.Kind())))
		}
	}
	return logger.With(fields...)
}

// LogError logs an error with a message using the shared logger
func LogError(err error, msg string) {
	LogWithError(err).Error("%s", msg)
}
