package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"docqa/llm"
	"docqa/prompt"
)

type stubLLM struct {
	text string
	err  error
}

func (s *stubLLM) Complete(ctx context.Context, systemInstruction, userMessage string) (string, error) {
	return s.text, s.err
}

func TestGenerateSuccess(t *testing.T) {
	g := &Generator{LLM: &stubLLM{text: "The document covers the Alpha project. [Source: report.pdf]"}}
	res := g.Generate(context.Background(), prompt.AssembledPrompt{SystemInstruction: "sys", UserMessage: "q"})
	assert.Equal(t, Success, res.Kind)
	assert.Contains(t, res.Text, "report.pdf")
}

func TestGenerateRateLimited(t *testing.T) {
	g := &Generator{LLM: &stubLLM{err: &llm.APIError{Kind: llm.KindRateLimited, Message: "429 too many requests"}}}
	res := g.Generate(context.Background(), prompt.AssembledPrompt{})
	assert.Equal(t, RateLimited, res.Kind)
	assert.Contains(t, res.Text, "Rate limit")
}

func TestGenerateAuthError(t *testing.T) {
	g := &Generator{LLM: &stubLLM{err: &llm.APIError{Kind: llm.KindAuth, Message: "401 invalid_api_key"}}}
	res := g.Generate(context.Background(), prompt.AssembledPrompt{})
	assert.Equal(t, AuthError, res.Kind)
	assert.Contains(t, res.Text, "Invalid API key")
}

func TestGenerateUnknownKeepsDiagnostic(t *testing.T) {
	g := &Generator{LLM: &stubLLM{err: errors.New("boom")}}
	res := g.Generate(context.Background(), prompt.AssembledPrompt{})
	assert.Equal(t, Unknown, res.Kind)
	assert.Contains(t, res.Text, "boom")
}

func TestFromErrorUnavailable(t *testing.T) {
	res := FromError(&llm.APIError{Kind: llm.KindUnavailable, Message: "503 service unavailable"})
	assert.Equal(t, Unknown, res.Kind)
	assert.Contains(t, res.Text, "503")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "blocked", Blocked.String())
	assert.Equal(t, "rate_limited", RateLimited.String())
	assert.Equal(t, "auth_error", AuthError.String())
	assert.Equal(t, "unknown", Unknown.String())
}
