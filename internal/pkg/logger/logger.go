// Package logger provides the shared structured logger for cdcat components.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once
)

// Options controls logger initialization.
type Options struct {
	// Level is the minimum level to emit. Defaults to Info.
	Level slog.Level
	// File, when non-empty, sends output to a rotating log file instead of
	// stderr. Rotation keeps 3 backups of 10MB each.
	File string
}

// Initialize sets up the structured logger. Subsequent calls are no-ops.
func Initialize() {
	InitializeWithOptions(Options{Level: slog.LevelInfo})
}

// InitializeWithOptions sets up the structured logger with explicit options.
// Subsequent calls are no-ops.
func InitializeWithOptions(opts Options) {
	once.Do(func() {
		var out io.Writer = os.Stderr
		if opts.File != "" {
			out = &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
			}
		}
		handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level: opts.Level,
		})
		defaultLogger = slog.New(handler)
	})
}

// Get returns the default structured logger.
func Get() *slog.Logger {
	Initialize() // sync.Once ensures this only runs once
	return defaultLogger
}

// Info logs an info level message
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning level message
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error level message
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// Debug logs a debug level message
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}
