// Package llm wraps chat completion providers behind a small interface and
// translates transport failures into typed errors. Classification happens
// here, at the boundary where the provider's status codes and error strings
// are still available. Callers branch on APIError.Kind, never on message text.
package llm

import (
	"context"
	"fmt"

	"docqa/config"
)

// Kind classifies a provider failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindRateLimited
	KindAuth
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindAuth:
		return "auth_error"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// APIError is the typed failure returned by every provider.
type APIError struct {
	Kind    Kind
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Provider generates a completion from a system instruction and a user
// message. No retries: a transient failure surfaces to the caller once.
type Provider interface {
	Complete(ctx context.Context, systemInstruction, userMessage string) (string, error)
}

// NewLLMProvider builds the provider selected by configuration.
func NewLLMProvider(cfg *config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "openai":
		return newOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
