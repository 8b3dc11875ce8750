// Package embedding wraps the embedding model collaborators behind one
// provider interface.
package embedding

import (
	"context"
	"fmt"

	"docqa/config"
)

// Provider generates vector embeddings for text.
type Provider interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
}

// NewEmbeddingProvider builds the provider selected by configuration.
func NewEmbeddingProvider(cfg config.EmbeddingConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
