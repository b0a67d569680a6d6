package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "TUTOR"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by the previous deployment, kept so existing environments keep working.
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LLM.GeminiAPIKey = strings.TrimSpace(cfg.LLM.GeminiAPIKey)
	cfg.LLM.ModelName = strings.TrimSpace(cfg.LLM.ModelName)
	cfg.LLM.ChatMode = strings.ToLower(strings.TrimSpace(cfg.LLM.ChatMode))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("stage", "dev")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.request_timeout_seconds", 60)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "gemini-2.5-flash-lite")
	v.SetDefault("llm.plan_max_output_tokens", 550)
	v.SetDefault("llm.chat_max_output_tokens", 700)
	v.SetDefault("llm.chat_mode", ChatModeDelimited)
	v.SetDefault("llm.chat_fallback_to_delimited", false)
	v.SetDefault("llm.prompt_dir", "")
}

func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"stage":              {EnvPrefix + "_STAGE", "STAGE", "NODE_ENV"},
		"llm.gemini_api_key": {EnvPrefix + "_LLM_GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"llm.model_name":     {EnvPrefix + "_LLM_MODEL_NAME", "GEMINI_MODEL_ID"},
	}
	for key, names := range bindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}
