// Package ingest loads documents, chunks them, and writes the embedded
// chunks into the vector store.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docqa/common/logger"
	"docqa/embedding"
	"docqa/metrics"
	"docqa/schema"
	"docqa/textsplitter"
	"docqa/vectordb"
)

// Extractor pulls plain text out of one file format.
type Extractor interface {
	// Extensions lists the lowercase file extensions this extractor
	// handles, dot included.
	Extensions() []string
	Extract(path string) (string, error)
}

// TextExtractor reads plain-text formats verbatim.
type TextExtractor struct{}

func (TextExtractor) Extensions() []string { return []string{".txt", ".md"} }

func (TextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Ingestor chunks and embeds documents into the knowledge base.
type Ingestor struct {
	Splitter   textsplitter.TextSplitter
	Embed      embedding.Provider
	Store      vectordb.Provider
	extractors map[string]Extractor
}

// NewIngestor registers the built-in plain-text extractor. Additional
// formats register through RegisterExtractor.
func NewIngestor(splitter textsplitter.TextSplitter, embed embedding.Provider, store vectordb.Provider) *Ingestor {
	ing := &Ingestor{
		Splitter:   splitter,
		Embed:      embed,
		Store:      store,
		extractors: make(map[string]Extractor),
	}
	ing.RegisterExtractor(TextExtractor{})
	return ing
}

// RegisterExtractor adds or replaces the handler for its extensions.
func (ing *Ingestor) RegisterExtractor(ex Extractor) {
	for _, ext := range ex.Extensions() {
		ing.extractors[strings.ToLower(ext)] = ex
	}
}

// SupportedExtensions returns the registered extensions, for upload
// validation at the API layer.
func (ing *Ingestor) SupportedExtensions() []string {
	exts := make([]string, 0, len(ing.extractors))
	for ext := range ing.extractors {
		exts = append(exts, ext)
	}
	return exts
}

// IngestFile extracts, chunks, embeds, and stores one file. The returned
// count is the number of chunks written.
func (ing *Ingestor) IngestFile(ctx context.Context, path string) (int, error) {
	ext := strings.ToLower(filepath.Ext(path))
	ex, ok := ing.extractors[ext]
	if !ok {
		return 0, fmt.Errorf("unsupported format %q", ext)
	}
	text, err := ex.Extract(path)
	if err != nil {
		return 0, err
	}
	return ing.IngestText(ctx, text, filepath.Base(path))
}

// IngestText chunks and stores raw text under the given source name.
func (ing *Ingestor) IngestText(ctx context.Context, text, source string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("document %q is empty", source)
	}

	start := time.Now()
	chunks, err := ing.Splitter.SplitText(text)
	if err != nil {
		return 0, fmt.Errorf("split %q: %w", source, err)
	}

	docs := make([]schema.Document, 0, len(chunks))
	for i, chunk := range chunks {
		vec, err := ing.Embed.GetEmbedding(ctx, chunk)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d of %q: %w", i, source, err)
		}
		docs = append(docs, schema.Document{
			ID:      uuid.NewString(),
			Content: chunk,
			Metadata: map[string]any{
				schema.MetaSource:      source,
				schema.MetaChunkIndex:  i,
				schema.MetaTotalChunks: len(chunks),
				schema.MetaChunkSize:   len(chunk),
			},
			Vector:    vec,
			CreatedAt: time.Now(),
		})
	}

	if err := ing.Store.AddDocs(ctx, docs); err != nil {
		return 0, fmt.Errorf("store chunks of %q: %w", source, err)
	}
	metrics.ObserveIngest(len(docs), start)
	logger.Infof("ingested %q: %d chunks", source, len(docs))
	return len(docs), nil
}
