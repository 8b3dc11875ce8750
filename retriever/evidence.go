// Package retriever turns a question into the evidence set the prompt is
// built from: embed the query, search the vector store, drop the bootstrap
// placeholder, and hand back the surviving documents in ranking order.
package retriever

import (
	"context"
	"fmt"

	"docqa/embedding"
	"docqa/schema"
	"docqa/vectordb"
)

// EvidenceRetriever performs top-K vector retrieval over the knowledge base.
type EvidenceRetriever struct {
	Embed     embedding.Provider
	Store     vectordb.Provider
	TopK      int
	Threshold float64
}

// Retrieve returns the evidence for a question. Placeholder entries are
// filtered after the search, so a freshly initialized store yields an empty
// evidence set rather than the placeholder text.
func (r *EvidenceRetriever) Retrieve(ctx context.Context, question string) ([]schema.Document, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 4
	}

	vec, err := r.Embed.GetEmbedding(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := r.Store.SearchDocs(ctx, vec, &schema.SearchOptions{TopK: topK, Threshold: r.Threshold})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	docs := make([]schema.Document, 0, len(results))
	for _, res := range results {
		if vectordb.IsBootstrap(res.Document) {
			continue
		}
		docs = append(docs, res.Document)
	}
	return docs, nil
}
