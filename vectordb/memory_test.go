package vectordb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/schema"
)

func TestMemoryStoreSeedsBootstrap(t *testing.T) {
	s := NewMemoryStore(4)
	docs, err := s.ListDocs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.True(t, IsBootstrap(docs[0]))
	assert.Equal(t, BootstrapSource, docs[0].Source())
}

func TestMemoryStoreSearchRanking(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)
	err := s.AddDocs(ctx, []schema.Document{
		{ID: "a", Content: "alpha", Vector: []float32{1, 0}},
		{ID: "b", Content: "beta", Vector: []float32{0, 1}},
		{ID: "c", Content: "gamma", Vector: []float32{0.9, 0.1}},
	})
	require.NoError(t, err)

	results, err := s.SearchDocs(ctx, []float32{1, 0}, &schema.SearchOptions{TopK: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Document.ID)
	assert.Equal(t, "c", results[1].Document.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestMemoryStoreSearchThreshold(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)
	err := s.AddDocs(ctx, []schema.Document{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "b", Vector: []float32{0, 1}},
	})
	require.NoError(t, err)

	results, err := s.SearchDocs(ctx, []float32{1, 0}, &schema.SearchOptions{TopK: 10, Threshold: 0.5})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Document.ID)
}

func TestMemoryStoreDimensionMismatch(t *testing.T) {
	s := NewMemoryStore(4)
	err := s.AddDocs(context.Background(), []schema.Document{{ID: "a", Vector: []float32{1, 0}}})
	assert.Error(t, err)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)
	require.NoError(t, s.AddDocs(ctx, []schema.Document{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "b", Vector: []float32{0, 1}},
	}))
	require.NoError(t, s.DeleteDocs(ctx, []string{"a"}))

	docs, err := s.ListDocs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, BootstrapID, docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
}

func TestMemoryStoreClearReseeds(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)
	require.NoError(t, s.AddDocs(ctx, []schema.Document{{ID: "a", Vector: []float32{1, 0}}}))
	require.NoError(t, s.Clear(ctx))

	docs, err := s.ListDocs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.True(t, IsBootstrap(docs[0]))
}

func TestMemoryStoreListLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)
	require.NoError(t, s.AddDocs(ctx, []schema.Document{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "b", Vector: []float32{0, 1}},
	}))
	docs, err := s.ListDocs(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestIsBootstrapByContent(t *testing.T) {
	doc := schema.Document{ID: "legacy", Content: BootstrapContent}
	assert.True(t, IsBootstrap(doc))

	doc = schema.Document{ID: "real", Content: "System initialized. Upload a document to get started. More text."}
	assert.False(t, IsBootstrap(doc))
}
