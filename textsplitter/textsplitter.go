// Package textsplitter turns extracted document text into bounded, overlapping
// chunks ready for embedding.
package textsplitter

import (
	"fmt"

	"docqa/config"
	"docqa/schema"
)

// TextSplitter splits text into ordered chunks.
type TextSplitter interface {
	SplitText(text string) ([]string, error)
}

// NewTextSplitter builds the splitter selected by configuration.
func NewTextSplitter(cfg *config.SplitterConfig) (TextSplitter, error) {
	switch cfg.Provider {
	case "", "recursive":
		return &RecursiveCharacter{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
		}, nil
	case "token":
		return &Token{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported splitter provider: %s", cfg.Provider)
	}
}

// CreateDocuments splits each text and wraps the chunks as documents carrying
// the corresponding metadata. Chunk ordering follows the input text.
func CreateDocuments(s TextSplitter, texts []string, metadatas []map[string]any) ([]schema.Document, error) {
	docs := make([]schema.Document, 0, len(texts))
	for i, text := range texts {
		chunks, err := s.SplitText(text)
		if err != nil {
			return nil, err
		}
		for _, chunk := range chunks {
			metadata := make(map[string]any)
			if i < len(metadatas) {
				for k, v := range metadatas[i] {
					metadata[k] = v
				}
			}
			docs = append(docs, schema.Document{
				Content:  chunk,
				Metadata: metadata,
			})
		}
	}
	return docs, nil
}
