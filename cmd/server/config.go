package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/tutor-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfig records the effective settings without secrets.
func logConfig(logger *slog.Logger, cfg *config.Config) {
	logger.Info("Server configuration loaded",
		"stage", cfg.Stage,
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"request_timeout_seconds", cfg.Server.RequestTimeoutSeconds)

	logger.Debug("LLM configuration",
		"model", cfg.LLM.ModelName,
		"api_key_present", cfg.LLM.GeminiAPIKey != "",
		"chat_mode", cfg.LLM.ChatMode,
		"chat_fallback_to_delimited", cfg.LLM.ChatFallbackToDelimited,
		"prompt_dir", cfg.LLM.PromptDir)
}
