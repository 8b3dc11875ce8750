package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"docqa/config"
)

// openAIProvider calls an OpenAI-compatible chat completions endpoint. Groq
// and other compatible backends work through BaseURL.
type openAIProvider struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

func newOpenAIProvider(cfg *config.LLMConfig) (*openAIProvider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm model is required")
	}
	// The engine does not retry; transient failures are reported, not masked.
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	apiKey := cfg.APIKey
	if apiKey == "" && cfg.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.APIKeyEnv)
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openAIProvider{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (p *openAIProvider) Complete(ctx context.Context, systemInstruction, userMessage string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
			openai.UserMessage(userMessage),
		},
		Temperature: openai.Float(p.temperature),
	}
	if p.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(p.maxTokens))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &APIError{Kind: KindUnknown, Message: "completion response contained no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyError maps transport failures to typed kinds. Status codes decide
// first; message sniffing is a fallback for proxies that mangle them.
func classifyError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return &APIError{Kind: KindRateLimited, Message: err.Error()}
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return &APIError{Kind: KindAuth, Message: err.Error()}
		case apiErr.StatusCode >= 500:
			return &APIError{Kind: KindUnavailable, Message: err.Error()}
		}
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "rate_limit") || strings.Contains(msg, "429"):
		return &APIError{Kind: KindRateLimited, Message: err.Error()}
	case strings.Contains(msg, "api key") || strings.Contains(msg, "invalid_api_key") ||
		strings.Contains(msg, "unauthorized") || strings.Contains(msg, "401"):
		return &APIError{Kind: KindAuth, Message: err.Error()}
	}
	return &APIError{Kind: KindUnknown, Message: err.Error()}
}
