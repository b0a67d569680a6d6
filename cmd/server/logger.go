package main

import (
	"log/slog"

	"github.com/phrazzld/tutor-api/internal/config"
	"github.com/phrazzld/tutor-api/internal/platform/logger"
)

// setupAppLogger configures and initializes the application logger based on config settings.
func setupAppLogger(cfg *config.Config) *slog.Logger {
	return logger.Setup(logger.LoggerConfig{
		Level: cfg.Server.LogLevel,
	}).With("stage", cfg.Stage)
}
