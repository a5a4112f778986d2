package service

import (
	"context"
	"fmt"
	"time"
)

// Generator turns a topic into a poem body.
// Implementations report every failure as *domain.GenerationError.
type Generator interface {
	Generate(ctx context.Context, topic string) (string, error)
	Provider() string
}

// GenerationConfig holds configuration for a text-generation provider.
type GenerationConfig struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 100
	defaultTimeout     = 60 * time.Second
)

func (c *GenerationConfig) withDefaults() GenerationConfig {
	out := *c
	if out.Temperature == 0 {
		out.Temperature = defaultTemperature
	}
	if out.MaxTokens <= 0 {
		out.MaxTokens = defaultMaxTokens
	}
	if out.Timeout <= 0 {
		out.Timeout = defaultTimeout
	}
	return out
}

// NewGenerator creates the generator for the configured provider.
// Parameters:
//   - cfg: provider settings; Provider selects the implementation.
//
// Returns:
//   - Generator: chat-completion client for groq/openai-compatible, SDK client for openai.
//   - error: non-nil for an unknown provider or missing credentials.
func NewGenerator(cfg *GenerationConfig) (Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("generation config is nil")
	}
	switch cfg.Provider {
	case "groq", "openai-compatible":
		return NewChatCompletionService(cfg), nil
	case "openai":
		return NewOpenAIGenerator(cfg)
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}
