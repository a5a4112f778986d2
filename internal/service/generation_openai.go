package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/timmy/haikuforge/internal/domain"
	"github.com/timmy/haikuforge/internal/prompts"
)

// OpenAIGenerator generates haiku with the official OpenAI SDK.
type OpenAIGenerator struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAIGenerator builds an SDK-backed generator. SDK retries are
// disabled: a failed call surfaces to the user immediately.
func NewOpenAIGenerator(cfg *GenerationConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide generation.api_key")
	}
	if cfg.Model == "" {
		return nil, errors.New("openai model is required")
	}
	c := cfg.withDefaults()

	opts := []option.RequestOption{
		option.WithAPIKey(c.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: c.Timeout}),
	}
	if c.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.BaseURL))
	}

	return &OpenAIGenerator{
		client:      openai.NewClient(opts...),
		model:       c.Model,
		temperature: c.Temperature,
		maxTokens:   c.MaxTokens,
	}, nil
}

// Provider returns "openai".
func (g *OpenAIGenerator) Provider() string {
	return "openai"
}

// Generate asks the model for a haiku about topic.
func (g *OpenAIGenerator) Generate(ctx context.Context, topic string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompts.HaikuSystemPrompt),
			openai.UserMessage(prompts.HaikuUserPrompt(topic)),
		},
		Temperature: openai.Float(g.temperature),
		MaxTokens:   openai.Int(int64(g.maxTokens)),
	})
	if err != nil {
		return "", g.fail(fmt.Errorf("failed to call OpenAI API: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", g.fail(errors.New("openai: empty choices"))
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", g.fail(errors.New("openai: empty completion"))
	}
	return text, nil
}

func (g *OpenAIGenerator) fail(err error) error {
	return &domain.GenerationError{Provider: g.Provider(), Err: err}
}
