package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"docqa/config"
)

func TestOpenAIProvider_GetEmbedding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
			Input string `json:"input"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Input == "" {
			t.Errorf("missing input in request")
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": []float64{0.1, 0.2, 0.3}},
			},
			"model": req.Model,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p, err := NewEmbeddingProvider(config.EmbeddingConfig{
		Provider: "openai",
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		Model:    "text-embedding-3-small",
	})
	if err != nil {
		t.Fatalf("provider init: %v", err)
	}

	vec, err := p.GetEmbedding(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("embedding error: %v", err)
	}
	if len(vec) != 3 || vec[1] != float32(0.2) {
		t.Fatalf("unexpected vector: %v", vec)
	}
}

func TestNewEmbeddingProvider_Unsupported(t *testing.T) {
	if _, err := NewEmbeddingProvider(config.EmbeddingConfig{Provider: "huggingface"}); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}
