// Package logging configures the process-wide slog logger. The TUI
// owns the terminal, so logs go to stderr and default to errors only;
// LOG_LEVEL turns on more when debugging a session.
package logging

import (
	"log/slog"
	"os"
)

func Init() {
	logger := slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: levelFromEnv(),
		}),
	)
	slog.SetDefault(logger)
}

func levelFromEnv() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "dev", "development", "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
