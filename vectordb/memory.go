package vectordb

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"docqa/schema"
)

// MemoryStore is an in-process vector store backed by a slice and brute-force
// cosine scoring. It exists for tests and single-node deployments where
// running Milvus is not worth the operational cost.
type MemoryStore struct {
	mu   sync.RWMutex
	dim  int
	docs []schema.Document
}

// NewMemoryStore returns a store pre-seeded with the bootstrap placeholder.
func NewMemoryStore(dim int) *MemoryStore {
	s := &MemoryStore{dim: dim}
	s.docs = append(s.docs, BootstrapDoc(dim))
	return s
}

func (s *MemoryStore) AddDocs(ctx context.Context, docs []schema.Document) error {
	if len(docs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		if s.dim > 0 && len(doc.Vector) != s.dim {
			return fmt.Errorf("vector dimension mismatch: got %d, want %d", len(doc.Vector), s.dim)
		}
		s.docs = append(s.docs, doc.Clone())
	}
	return nil
}

func (s *MemoryStore) SearchDocs(ctx context.Context, vector []float32, opts *schema.SearchOptions) ([]schema.SearchResult, error) {
	topK := 4
	threshold := 0.0
	if opts != nil {
		if opts.TopK > 0 {
			topK = opts.TopK
		}
		threshold = opts.Threshold
	}

	s.mu.RLock()
	results := make([]schema.SearchResult, 0, len(s.docs))
	for _, doc := range s.docs {
		score := cosineSimilarity(vector, doc.Vector)
		if score < threshold {
			continue
		}
		results = append(results, schema.SearchResult{Document: doc.Clone(), Score: score})
	}
	s.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// ListDocs returns documents in insertion order, oldest first.
func (s *MemoryStore) ListDocs(ctx context.Context, limit int) ([]schema.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.docs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]schema.Document, 0, n)
	for _, doc := range s.docs[:n] {
		out = append(out, doc.Clone())
	}
	return out, nil
}

func (s *MemoryStore) DeleteDocs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.docs[:0]
	for _, doc := range s.docs {
		if !drop[doc.ID] {
			kept = append(kept, doc)
		}
	}
	s.docs = kept
	return nil
}

// Clear drops everything and re-seeds the placeholder in one critical
// section, so a concurrent search never observes a fully empty store.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = s.docs[:0]
	s.docs = append(s.docs, BootstrapDoc(s.dim))
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
