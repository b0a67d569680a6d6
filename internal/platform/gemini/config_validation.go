package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tutor-api/internal/config"
	"github.com/phrazzld/tutor-api/internal/generation"
)

// validateConfig checks the settings the generator cannot work without.
// A missing API key is not an error here: it is reported per call so that
// the service can still start and answer validation errors.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.ModelName == "" {
		logger.ErrorContext(ctx, "Missing model name in LLM configuration")
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.GeminiAPIKey == "" {
		logger.WarnContext(ctx, "Gemini API key is not configured; model calls will fail",
			"error_code", "MISSING_CREDENTIAL")
	}

	return nil
}
