package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/tutor-api/internal/config"
	"github.com/phrazzld/tutor-api/internal/generation"
	"github.com/phrazzld/tutor-api/internal/platform/logger"
	"github.com/phrazzld/tutor-api/internal/redact"
	"google.golang.org/genai"
)

// contentAPI is the subset of the genai Models service used by the generator.
type contentAPI interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// api is nil when no API key is configured
	api contentAPI

	// model is the name of the Gemini model to use
	model string
}

var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key and model name
//
// Returns:
//   - A properly initialized GeminiGenerator or an error if initialization fails
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	g := &GeminiGenerator{
		logger: logger,
		model:  cfg.ModelName,
	}

	if cfg.GeminiAPIKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, redact.Error(err))
	}
	g.api = client.Models

	logger.InfoContext(ctx, "Gemini generator initialized", "model", cfg.ModelName)
	return g, nil
}

// newGeminiGeneratorWithAPI builds a generator around an existing content API.
func newGeminiGeneratorWithAPI(logger *slog.Logger, model string, api contentAPI) *GeminiGenerator {
	return &GeminiGenerator{logger: logger, api: api, model: model}
}

// Generate sends a single GenerateContent request and returns the concatenated
// text of the first candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, req generation.Request) (string, error) {
	if g.api == nil {
		return "", generation.ErrMissingCredential
	}

	log := logger.FromContext(ctx, g.logger)

	log.InfoContext(ctx, "Making Gemini API call",
		"model", g.model,
		"response_format", req.ResponseFormat.String(),
		"max_output_tokens", req.MaxOutputTokens)
	log.DebugContext(ctx, "Gemini prompt sizes",
		"system_length", len(req.SystemInstruction),
		"user_length", len(req.UserInstruction))

	resp, err := g.api.GenerateContent(ctx, g.model, genai.Text(req.UserInstruction), buildContentConfig(req))
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, redact.Error(err))
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	log.InfoContext(ctx, "Gemini API call successful", "response_length", len(text))
	return text, nil
}

func buildContentConfig(req generation.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: req.ResponseFormat.MIMEType(),
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxOutputTokens)
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	return cfg
}

// responseText extracts the text of the first candidate, skipping thought parts.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}

	return sb.String(), nil
}
