package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/phrazzld/tutor-api/internal/config"
	"github.com/phrazzld/tutor-api/internal/generation"
	"github.com/phrazzld/tutor-api/internal/platform/gemini"
	"github.com/phrazzld/tutor-api/internal/tutor"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	generator generation.Generator
	service   tutor.Service
}

// newApplication creates a new application instance with all dependencies initialized,
// talking to Gemini with the configured credentials.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	generator, err := gemini.NewGeminiGenerator(ctx, logger.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized", "model", cfg.LLM.ModelName)

	return newApplicationWithGenerator(cfg, logger, generator)
}

// newApplicationWithGenerator wires the pipelines around an existing generator.
func newApplicationWithGenerator(
	cfg *config.Config,
	logger *slog.Logger,
	generator generation.Generator,
) (*application, error) {
	logConfig(logger, cfg)

	prompts, err := tutor.NewPrompts(cfg.LLM.PromptDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	service, err := tutor.NewService(generator, prompts, logger, tutor.OptionsFromConfig(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("failed to create tutor service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return &application{
		config:    cfg,
		logger:    logger,
		generator: generator,
		service:   service,
	}, nil
}

// Run listens on the configured port and serves until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", app.config.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", app.config.Server.Port, err)
	}

	if err := app.serve(ctx, ln, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
