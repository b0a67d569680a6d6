package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	// Stage names the deployment stage (dev, staging, prod). Informational only.
	Stage  string       `mapstructure:"stage"  validate:"required"`
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// RequestTimeoutSeconds bounds a whole request, model call included. Zero disables it.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gte=0"`
}

// Lesson chat response modes.
const (
	ChatModeDelimited  = "delimited"
	ChatModeStructured = "structured"
)

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey is deliberately optional: without it every model call
	// fails with a missing-credential error instead of the process refusing to start.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`

	PlanMaxOutputTokens int `mapstructure:"plan_max_output_tokens" validate:"gt=0"`
	ChatMaxOutputTokens int `mapstructure:"chat_max_output_tokens" validate:"gt=0"`

	// ChatMode selects how lesson chat answers are requested and parsed.
	ChatMode string `mapstructure:"chat_mode" validate:"required,oneof=delimited structured"`

	// ChatFallbackToDelimited re-reads an unparseable structured chat
	// response as delimited text instead of failing the request.
	ChatFallbackToDelimited bool `mapstructure:"chat_fallback_to_delimited"`

	// PromptDir optionally overrides the embedded prompt templates.
	PromptDir string `mapstructure:"prompt_dir" validate:"omitempty,dir"`
}
