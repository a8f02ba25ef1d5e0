// Package logging exposes a process-wide printf-style logger backed by zap.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
var sugar = newLogger()

func newLogger() *zap.SugaredLogger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), level)
	return zap.New(core).Sugar()
}

// SetLogLevel sets the log level for filtering logs: debug, info, warn or error.
func SetLogLevel(logLevel string) {
	if parsed, err := zapcore.ParseLevel(logLevel); err == nil {
		level.SetLevel(parsed)
	}
}

// Debug logs a message at DEBUG level
func Debug(message string, a ...any) {
	sugar.Debugf(message, a...)
}

// Info logs a message at INFO level
func Info(message string, a ...any) {
	sugar.Infof(message, a...)
}

// Warn logs a message at WARN level
func Warn(message string, a ...any) {
	sugar.Warnf(message, a...)
}

// Error logs a message at ERROR level
func Error(message string, a ...any) {
	sugar.Errorf(message, a...)
}
