package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	loggerInstance *slog.Logger
	once           sync.Once
)

// GetLogger returns the process logger. It reads ENV_MODE directly because
// the config package itself logs while loading.
func GetLogger() *slog.Logger {
	once.Do(func() {
		var handler slog.Handler
		if os.Getenv("ENV_MODE") == "production" {
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
		} else {
			handler = NewConsoleHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
		}

		loggerInstance = slog.New(handler)
	})

	return loggerInstance
}
