package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Task   TaskConfig   `mapstructure:"task"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
// ShutdownTimeoutSeconds bounds the grace period for in-flight responses
// when the server stops.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// LLMConfig contains all model provider related settings. FastModel and
// CapableModel are the provider model ids backing the two caller-visible
// tiers.
type LLMConfig struct {
	AnthropicAPIKey string `mapstructure:"anthropic_api_key" validate:"required"`
	FastModel       string `mapstructure:"fast_model"        validate:"required"`
	CapableModel    string `mapstructure:"capable_model"     validate:"required"`
	MaxTokens       int    `mapstructure:"max_tokens"        validate:"required,gt=0"`
}

// TaskConfig contains the background worker pool settings.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0"`
}
