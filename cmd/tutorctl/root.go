package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/tutor-api/internal/api"
	"github.com/phrazzld/tutor-api/internal/config"
	"github.com/phrazzld/tutor-api/internal/platform/gemini"
	"github.com/phrazzld/tutor-api/internal/platform/logger"
	"github.com/phrazzld/tutor-api/internal/tutor"
	"github.com/spf13/cobra"
)

// serviceFactory builds the pipelines from loaded configuration.
type serviceFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (tutor.Service, error)

// errReported marks a failure whose JSON error body has already been printed.
var errReported = errors.New("request failed")

type rootOptions struct {
	logLevel string
	chatMode string
}

func newRootCmd(factory serviceFactory) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "tutorctl",
		Short: "Run the tutor pipelines from a terminal",
		Long: `tutorctl builds course plan specs and answers lesson questions using
the same prompts, model settings and response handling as the API server.

Configuration is read like the server's: TUTOR_* environment variables,
the legacy GOOGLE_API_KEY and GEMINI_MODEL_ID names, and ./config.yaml.

Examples:
  tutorctl plan "Python para principiantes"
  tutorctl chat --lesson lesson.json --question "¿Qué es una closure?"
  tutorctl chat --lesson lesson.json --question "..." --chat-mode structured`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.chatMode, "chat-mode", "", "override the configured lesson chat mode (delimited, structured)")

	root.AddCommand(newPlanCmd(factory, opts), newChatCmd(factory, opts))

	return root
}

// setupService loads configuration, applies flag overrides and builds the pipelines.
// Logs go to stderr so stdout carries only the JSON result.
func setupService(cmd *cobra.Command, factory serviceFactory, opts *rootOptions) (tutor.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Server.LogLevel = opts.logLevel
	}
	if opts.chatMode != "" {
		cfg.LLM.ChatMode = opts.chatMode
	}

	l := logger.Setup(logger.LoggerConfig{
		Level:  cfg.Server.LogLevel,
		Output: cmd.ErrOrStderr(),
	})

	return factory(cmd.Context(), cfg, l)
}

// newGeminiService is the production serviceFactory.
func newGeminiService(ctx context.Context, cfg *config.Config, l *slog.Logger) (tutor.Service, error) {
	generator, err := gemini.NewGeminiGenerator(ctx, l.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}

	prompts, err := tutor.NewPrompts(cfg.LLM.PromptDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	return tutor.NewService(generator, prompts, l, tutor.OptionsFromConfig(cfg.LLM))
}

// writeResult prints v, or the error body the API would send, as indented JSON.
func writeResult(w io.Writer, v any, err error) error {
	out := v
	if err != nil {
		out = map[string]any{
			"status": api.MapErrorToStatusCode(err),
			"error":  api.GetSafeErrorMessage(err),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(out); encErr != nil {
		return fmt.Errorf("failed to write result: %w", encErr)
	}

	if err != nil {
		return errReported
	}
	return nil
}
