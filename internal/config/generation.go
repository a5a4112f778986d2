package config

import (
	"fmt"
	"os"
	"time"
)

const (
	ProviderGroq             = "groq"
	ProviderOpenAI           = "openai"
	ProviderOpenAICompatible = "openai-compatible"

	DefaultGroqModel   = "llama-3.3-70b-versatile"
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// GenerationConfig configures the text-generation provider.
type GenerationConfig struct {
	Provider    string        `mapstructure:"provider"`    // "groq", "openai", "openai-compatible"
	Model       string        `mapstructure:"model"`       // Model name/ID
	APIKey      string        `mapstructure:"api_key"`     // API key (can be set directly or via env var)
	BaseURL     string        `mapstructure:"base_url"`    // Base URL for OpenAI-compatible APIs
	Temperature float64       `mapstructure:"temperature"` // Sampling temperature
	MaxTokens   int           `mapstructure:"max_tokens"`  // Response length cap
	Timeout     time.Duration `mapstructure:"timeout"`     // HTTP client timeout
}

// ResolveEnvVars fills APIKey and BaseURL from the provider's conventional
// environment variables. Values set directly take precedence.
func (c *GenerationConfig) ResolveEnvVars() {
	if c.APIKey == "" {
		if val := os.Getenv(c.APIKeyEnv()); val != "" {
			c.APIKey = val
		}
	}
	if c.BaseURL == "" && c.Provider == ProviderGroq {
		c.BaseURL = DefaultGroqBaseURL
	}
	if c.Provider == ProviderOpenAI && c.Model == DefaultGroqModel {
		c.Model = DefaultOpenAIModel
	}
}

// APIKeyEnv returns the environment variable conventionally holding the key.
func (c *GenerationConfig) APIKeyEnv() string {
	switch c.Provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGroq:
		return "GROQ_API_KEY"
	default:
		return "GENERATION_API_KEY"
	}
}

// Validate returns an error describing the first missing or invalid setting.
func (c *GenerationConfig) Validate() error {
	switch c.Provider {
	case ProviderGroq, ProviderOpenAI:
	case ProviderOpenAICompatible:
		if c.BaseURL == "" {
			return fmt.Errorf("generation %q: base_url is required", c.Provider)
		}
	default:
		return fmt.Errorf("generation: unknown provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("generation %q: model is required", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("generation %q: api_key is required (set directly or via %s)", c.Provider, c.APIKeyEnv())
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("generation %q: max_tokens must be positive", c.Provider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("generation %q: temperature must be within [0, 2]", c.Provider)
	}
	return nil
}
