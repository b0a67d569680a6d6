package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tutor-api/internal/config"
	"github.com/phrazzld/tutor-api/internal/domain"
	"github.com/phrazzld/tutor-api/internal/generation"
	"github.com/phrazzld/tutor-api/internal/platform/logger"
	"github.com/phrazzld/tutor-api/internal/redact"
)

// Pipeline names used in logs.
const (
	PipelineBuildPlanSpec = "BUILD_PLAN_SPEC"
	PipelineLessonChat    = "LESSON_CHAT"
)

// ChatMode selects how the lesson chat asks for and reads model output.
type ChatMode string

// Supported chat modes.
const (
	ChatModeDelimited  ChatMode = "delimited"
	ChatModeStructured ChatMode = "structured"
)

// Options tunes the pipelines.
type Options struct {
	PlanMaxOutputTokens int
	ChatMaxOutputTokens int
	// ChatMode defaults to ChatModeDelimited when empty.
	ChatMode ChatMode
	// FallbackToDelimited re-reads a structured chat response that does not
	// parse as delimited text instead of failing the request.
	FallbackToDelimited bool
}

// OptionsFromConfig maps the LLM settings onto pipeline options.
func OptionsFromConfig(cfg config.LLMConfig) Options {
	return Options{
		PlanMaxOutputTokens: cfg.PlanMaxOutputTokens,
		ChatMaxOutputTokens: cfg.ChatMaxOutputTokens,
		ChatMode:            ChatMode(cfg.ChatMode),
		FallbackToDelimited: cfg.ChatFallbackToDelimited,
	}
}

// CoursePlan is the successful outcome of the course plan pipeline:
// the primary spec flattened next to the requested topic and alternatives.
type CoursePlan struct {
	domain.CourseSpec
	Topic       string              `json:"topic"`
	Suggestions []domain.CourseSpec `json:"suggestions"`
}

// Service runs the course plan and lesson chat pipelines.
type Service interface {
	// BuildCoursePlanSpec validates the topic, asks the model to classify it
	// and returns the resulting spec. A disallowed topic fails with a
	// *TopicNotAllowedError.
	BuildCoursePlanSpec(ctx context.Context, body TopicRequestBody) (*CoursePlan, error)

	// LessonChat answers a question about a lesson and returns the lesson as
	// it should look afterwards.
	LessonChat(ctx context.Context, body LessonChatRequestBody) (*domain.LessonChatResult, error)
}

// PipelineError wraps a provider or interpretation failure with the
// pipeline it happened in.
type PipelineError struct {
	Pipeline string
	Err      error
}

// Error implements the error interface for PipelineError.
func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Pipeline, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

type tutorService struct {
	generator generation.Generator
	prompts   *Prompts
	logger    *slog.Logger
	opts      Options
}

// NewService creates a new Service.
// It returns an error if a required dependency is nil or the options are invalid.
func NewService(
	generator generation.Generator,
	prompts *Prompts,
	logger *slog.Logger,
	opts Options,
) (Service, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if prompts == nil {
		return nil, errors.New("prompts cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	switch opts.ChatMode {
	case "":
		opts.ChatMode = ChatModeDelimited
	case ChatModeDelimited, ChatModeStructured:
	default:
		return nil, fmt.Errorf("unknown chat mode %q", opts.ChatMode)
	}

	return &tutorService{
		generator: generator,
		prompts:   prompts,
		logger:    logger.With("component", "tutor_service"),
		opts:      opts,
	}, nil
}

// BuildCoursePlanSpec implements Service.
func (s *tutorService) BuildCoursePlanSpec(ctx context.Context, body TopicRequestBody) (*CoursePlan, error) {
	log := s.log(ctx).With("pipeline", PipelineBuildPlanSpec)

	req, err := ValidateTopicRequest(body)
	if err != nil {
		log.DebugContext(ctx, "rejected course plan request", "error_code", Code(err))
		return nil, err
	}

	genReq, err := s.prompts.BuildCoursePlanPrompt(req, s.opts.PlanMaxOutputTokens)
	if err != nil {
		return nil, s.fail(ctx, log, PipelineBuildPlanSpec, err)
	}

	raw, err := s.generator.Generate(ctx, genReq)
	if err != nil {
		return nil, s.fail(ctx, log, PipelineBuildPlanSpec, err)
	}

	result, err := InterpretCoursePlan(raw)
	if err != nil {
		var notAllowed *TopicNotAllowedError
		if errors.As(err, &notAllowed) {
			log.InfoContext(ctx, "topic not allowed",
				"topic", req.Topic,
				"reason", notAllowed.Reason)
			return nil, err
		}
		return nil, s.fail(ctx, log, PipelineBuildPlanSpec, err)
	}

	if err := CheckSpec(*result.Spec); err != nil {
		log.WarnContext(ctx, "course spec violates prompt constraints",
			"topic", req.Topic,
			"error", err.Error())
	}

	log.InfoContext(ctx, "course plan built",
		"topic", req.Topic,
		"level", result.Spec.Level,
		"suggestions", len(result.Suggestions))

	return &CoursePlan{
		CourseSpec:  *result.Spec,
		Topic:       req.Topic,
		Suggestions: result.Suggestions,
	}, nil
}

// LessonChat implements Service.
func (s *tutorService) LessonChat(ctx context.Context, body LessonChatRequestBody) (*domain.LessonChatResult, error) {
	log := s.log(ctx).With("pipeline", PipelineLessonChat)

	input, err := ValidateLessonChatRequest(body)
	if err != nil {
		log.DebugContext(ctx, "rejected lesson chat request", "error_code", Code(err))
		return nil, err
	}

	genReq, err := s.prompts.BuildLessonChatPrompt(input.Lesson, input.Question, s.opts.ChatMode, s.opts.ChatMaxOutputTokens)
	if err != nil {
		return nil, s.fail(ctx, log, PipelineLessonChat, err)
	}

	raw, err := s.generator.Generate(ctx, genReq)
	if err != nil {
		return nil, s.fail(ctx, log, PipelineLessonChat, err)
	}

	if s.opts.ChatMode == ChatModeDelimited {
		result := InterpretLessonChatDelimited(raw, input.Lesson)
		return &result, nil
	}

	result, err := InterpretLessonChatStructured(raw, input.Lesson)
	if err != nil {
		if !s.opts.FallbackToDelimited {
			return nil, s.fail(ctx, log, PipelineLessonChat, err)
		}
		log.WarnContext(ctx, "structured chat response did not parse, reading it as delimited text",
			"error", redact.Error(err))
		result = InterpretLessonChatDelimited(raw, input.Lesson)
	}

	return &result, nil
}

func (s *tutorService) log(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx, s.logger)
}

// fail writes the single diagnostic record for a failed request and wraps err.
func (s *tutorService) fail(ctx context.Context, log *slog.Logger, pipeline string, err error) error {
	log.ErrorContext(ctx, "pipeline failed",
		"error_code", Code(err),
		"error", redact.Error(err))
	return &PipelineError{Pipeline: pipeline, Err: err}
}
