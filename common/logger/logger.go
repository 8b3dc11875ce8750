// Package logger provides the shared logging interface for the engine.
// All packages log through the package-level functions so the backend can be
// tuned in one place.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar = newLogger().Sugar()
)

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.DisableStacktrace = true
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// SetLevel sets the minimum log level.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

// Debugf logs a debug message.
func Debugf(format string, args ...any) {
	sugar.Debugf(format, args...)
}

// Infof logs an info message.
func Infof(format string, args ...any) {
	sugar.Infof(format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...any) {
	sugar.Warnf(format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...any) {
	sugar.Errorf(format, args...)
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	_ = sugar.Sync()
}
