package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/haikuforge/internal/domain"
	"github.com/timmy/haikuforge/internal/prompts"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// ChatCompletionService generates haiku through an OpenAI-compatible
// chat completions endpoint (Groq by default).
type ChatCompletionService struct {
	client      *resty.Client
	provider    string
	model       string
	endpoint    string
	temperature float64
	maxTokens   int
}

// NewChatCompletionService creates a chat-completion backed generator.
// Parameters:
//   - cfg: provider, model, API key and base URL.
//
// Returns:
//   - *ChatCompletionService: initialized client wrapper.
func NewChatCompletionService(cfg *GenerationConfig) *ChatCompletionService {
	c := cfg.withDefaults()

	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+c.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(c.Timeout)

	baseURL := strings.TrimSuffix(c.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	provider := c.Provider
	if provider == "" {
		provider = "groq"
	}

	return &ChatCompletionService{
		client:      client,
		provider:    provider,
		model:       c.Model,
		endpoint:    baseURL + "/chat/completions",
		temperature: c.Temperature,
		maxTokens:   c.MaxTokens,
	}
}

// Provider returns the provider name used in logs and errors.
func (s *ChatCompletionService) Provider() string {
	return s.provider
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate asks the model for a haiku about topic.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - topic: non-empty topic; the caller enforces this.
//
// Returns:
//   - string: trimmed text of the first choice, never empty.
//   - error: *domain.GenerationError on any failure.
func (s *ChatCompletionService) Generate(ctx context.Context, topic string) (string, error) {
	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompts.HaikuSystemPrompt},
			{Role: "user", Content: prompts.HaikuUserPrompt(topic)},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}

	var resp chatResponse
	var apiErr chatErrorResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		SetError(&apiErr).
		Post(s.endpoint)

	if err != nil {
		return "", s.fail(fmt.Errorf("failed to call chat completions API: %w", err))
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if apiErr.Error != nil && apiErr.Error.Message != "" {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), apiErr.Error.Message)
		} else if body := strings.TrimSpace(string(httpResp.Body())); body != "" {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), truncate(body, 512))
		}
		return "", s.fail(fmt.Errorf("chat completions API returned error: %s", errorMsg))
	}

	if len(resp.Choices) == 0 {
		return "", s.fail(errors.New("no choices in response"))
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", s.fail(errors.New("model returned an empty completion"))
	}
	return text, nil
}

func (s *ChatCompletionService) fail(err error) error {
	return &domain.GenerationError{Provider: s.provider, Err: err}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
