package logger

import (
	"sync"

	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/observer"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	// Initialize default logger writing text lines to stdout
	defaultLogger = NewBuilder().
		WithObserver(observer.NewWriterObserver(observer.WriterConfig{})).
		WithLevel(core.InfoLevel).
		Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Debug emits a debug event using the default logger
func Debug(format string, fields ...core.Field) error {
	return Default().Debug(format, fields...)
}

// Info emits an info event using the default logger
func Info(format string, fields ...core.Field) error {
	return Default().Info(format, fields...)
}

// Warn emits a warning event using the default logger
func Warn(format string, fields ...core.Field) error {
	return Default().Warn(format, fields...)
}

// Error emits an error event using the default logger
func Error(format string, fields ...core.Field) error {
	return Default().Error(format, fields...)
}

// Critical emits a critical event using the default logger
func Critical(format string, fields ...core.Field) error {
	return Default().Critical(format, fields...)
}

// Failure emits a critical event carrying err using the default logger
func Failure(format string, err error, fields ...core.Field) error {
	return Default().Failure(format, err, fields...)
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}
