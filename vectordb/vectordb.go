// Package vectordb abstracts the vector store backend. Providers are safe for
// concurrent use: reads may run in parallel, mutation is serialized against
// in-flight reads by each implementation.
package vectordb

import (
	"context"
	"fmt"
	"time"

	"docqa/config"
	"docqa/schema"
)

// A fresh knowledge base is seeded with one placeholder entry so the index is
// never physically empty. The placeholder must stay invisible to every
// consumer above the store.
const (
	BootstrapSource  = "system_init"
	BootstrapContent = "System initialized. Upload a document to get started."
	BootstrapID      = "system-init-0"
)

// Provider is the vector store abstraction consumed by the engine.
type Provider interface {
	AddDocs(ctx context.Context, docs []schema.Document) error
	SearchDocs(ctx context.Context, vector []float32, opts *schema.SearchOptions) ([]schema.SearchResult, error)
	ListDocs(ctx context.Context, limit int) ([]schema.Document, error)
	DeleteDocs(ctx context.Context, ids []string) error
	// Clear resets the store to its initial state: empty except for the
	// bootstrap placeholder.
	Clear(ctx context.Context) error
	Close() error
}

// NewVectorDBProvider builds the provider selected by configuration.
func NewVectorDBProvider(cfg *config.VectorDBConfig, dim int) (Provider, error) {
	switch cfg.Provider {
	case "", "memory":
		return NewMemoryStore(dim), nil
	case "milvus":
		return newMilvusStore(cfg, dim)
	default:
		return nil, fmt.Errorf("unsupported vectordb provider: %s", cfg.Provider)
	}
}

// BootstrapDoc returns the placeholder entry seeded into an empty store.
func BootstrapDoc(dim int) schema.Document {
	return schema.Document{
		ID:      BootstrapID,
		Content: BootstrapContent,
		Metadata: map[string]any{
			schema.MetaSource: BootstrapSource,
		},
		Vector:    make([]float32, dim),
		CreatedAt: time.Now(),
	}
}

// IsBootstrap reports whether a document is the placeholder entry. The
// metadata tag is authoritative; the exact-content check only covers entries
// written before the tag existed.
func IsBootstrap(doc schema.Document) bool {
	if doc.Source() == BootstrapSource {
		return true
	}
	return doc.Content == BootstrapContent
}
