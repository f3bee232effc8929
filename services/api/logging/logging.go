// Package logging builds the service logger.
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a tinted handler for interactive use and a JSON handler
// otherwise, selected by APP_ENV.
func New(appName string) *slog.Logger {
	env := os.Getenv("APP_ENV")
	if env == "" || env == "dev" {
		h := tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		})
		return slog.New(h).With("app", appName)
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(h).With("app", appName, "env", env)
}
