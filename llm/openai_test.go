package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/config"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewLLMProvider(&config.LLMConfig{
		Provider: "openai",
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		Model:    "test-model",
	})
	require.NoError(t, err)
	return p
}

func TestCompleteSuccess(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"The capital is Paris."}}]}`))
	})

	out, err := p.Complete(context.Background(), "You are helpful.", "What is the capital of France?")
	require.NoError(t, err)
	assert.Equal(t, "The capital is Paris.", out)
}

func TestCompleteRateLimited(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded","type":"requests"}}`))
	})

	_, err := p.Complete(context.Background(), "sys", "user")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindRateLimited, apiErr.Kind)
}

func TestCompleteAuthError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	})

	_, err := p.Complete(context.Background(), "sys", "user")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindAuth, apiErr.Kind)
}

func TestCompleteServerError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := p.Complete(context.Background(), "sys", "user")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnavailable, apiErr.Kind)
}

func TestClassifyErrorFallback(t *testing.T) {
	cases := []struct {
		msg  string
		want Kind
	}{
		{"upstream said: Rate limit reached for model", KindRateLimited},
		{"rate_limit_exceeded", KindRateLimited},
		{"status 429 from proxy", KindRateLimited},
		{"invalid_api_key", KindAuth},
		{"Invalid API key provided", KindAuth},
		{"unauthorized", KindAuth},
		{"something exploded", KindUnknown},
	}
	for _, tc := range cases {
		var apiErr *APIError
		err := classifyError(errors.New(tc.msg))
		require.ErrorAs(t, err, &apiErr, tc.msg)
		assert.Equal(t, tc.want, apiErr.Kind, tc.msg)
	}
}

func TestUnsupportedProvider(t *testing.T) {
	_, err := NewLLMProvider(&config.LLMConfig{Provider: "bedrock", Model: "m"})
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "rate_limited", KindRateLimited.String())
	assert.Equal(t, "auth_error", KindAuth.String())
	assert.Equal(t, "unavailable", KindUnavailable.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
