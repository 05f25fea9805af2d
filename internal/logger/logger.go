// Package logger provides a structured logging wrapper using zap.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base *zap.Logger
	once sync.Once
)

// Init initializes the global logger.
// If debug is true, uses development config with DEBUG level.
// Otherwise uses production config with INFO level.
func Init(debug bool) {
	once.Do(func() {
		var err error
		if debug {
			config := zap.NewDevelopmentConfig()
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			base, err = config.Build()
		} else {
			config := zap.NewProductionConfig()
			config.EncoderConfig.TimeKey = "timestamp"
			config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			base, err = config.Build()
		}
		if err != nil {
			// Fallback to nop logger if initialization fails
			base = zap.NewNop()
		}
	})
}

// Sync flushes any buffered log entries.
// Should be called before the application exits.
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

// Default initializes a default logger if not already initialized.
func Default() *zap.Logger {
	if base == nil {
		Init(os.Getenv("RHYTHM_DEBUG") == "true")
	}
	return base
}

// Named creates a child logger for one component.
func Named(component string) *zap.Logger {
	return Default().Named(component)
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Default().Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Default().Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Default().Warn(msg, fields...)
}
