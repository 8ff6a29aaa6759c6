package logger

import (
	"log/slog"
	"os"
)

// Setup installs a JSON slog handler as the process default logger
func Setup(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
