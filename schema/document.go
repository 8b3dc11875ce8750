package schema

import "time"

// Metadata keys attached to every stored chunk.
const (
	MetaSource      = "source"
	MetaChunkIndex  = "chunk_index"
	MetaTotalChunks = "total_chunks"
	MetaChunkSize   = "chunk_size"
)

// Document is the unit of storage and retrieval: one chunk of a source file,
// tagged with its origin and position.
type Document struct {
	ID        string
	Content   string
	Metadata  map[string]any
	Vector    []float32
	CreatedAt time.Time
}

// Source returns the originating file name, or "unknown" when untagged.
func (d Document) Source() string {
	if s, ok := d.Metadata[MetaSource].(string); ok && s != "" {
		return s
	}
	return "unknown"
}

// ChunkIndex returns the zero-based position of this chunk within its source.
func (d Document) ChunkIndex() int {
	return metaInt(d.Metadata, MetaChunkIndex)
}

// TotalChunks returns the number of chunks the source was split into.
func (d Document) TotalChunks() int {
	return metaInt(d.Metadata, MetaTotalChunks)
}

// Clone returns a deep copy so callers can mutate results safely.
func (d Document) Clone() Document {
	cloned := d
	if d.Metadata != nil {
		cloned.Metadata = make(map[string]any, len(d.Metadata))
		for k, v := range d.Metadata {
			cloned.Metadata[k] = v
		}
	}
	if d.Vector != nil {
		cloned.Vector = make([]float32, len(d.Vector))
		copy(cloned.Vector, d.Vector)
	}
	return cloned
}

func metaInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// SearchResult pairs a document with its similarity score.
type SearchResult struct {
	Document Document
	Score    float64
}

// SearchOptions controls a vector similarity search.
type SearchOptions struct {
	TopK      int
	Threshold float64
}
