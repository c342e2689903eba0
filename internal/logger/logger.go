package logger

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

// Init sets up the global slog logger. DEBUG=true enables debug level.
func Init() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	Logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(Logger)
}

// get keeps the helpers usable before Init, e.g. in tests.
func get() *slog.Logger {
	if Logger == nil {
		return slog.Default()
	}
	return Logger
}

func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

// With returns a child logger with preset attributes (e.g. component name).
func With(args ...any) *slog.Logger {
	return get().With(args...)
}
