package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"docqa/llm"
)

type stubLLM struct {
	gotUser string
	text    string
	err     error
}

func (s *stubLLM) Complete(ctx context.Context, systemInstruction, userMessage string) (string, error) {
	s.gotUser = userMessage
	return s.text, s.err
}

func TestSummarizeText(t *testing.T) {
	stub := &stubLLM{text: "**Overview** The report covers the Alpha project."}
	s := &Summarizer{LLM: stub}

	out := s.SummarizeText(context.Background(), "Alpha project status report. All milestones met.")
	assert.Contains(t, out, "Overview")
	assert.Contains(t, stub.gotUser, "Alpha project status report.")
	assert.Contains(t, stub.gotUser, "Key Points")
}

func TestSummarizeEmptyText(t *testing.T) {
	s := &Summarizer{LLM: &stubLLM{}}
	out := s.SummarizeText(context.Background(), "  \n ")
	assert.Equal(t, "Document is empty or contains no extractable text.", out)
}

func TestSummarizeTruncation(t *testing.T) {
	stub := &stubLLM{text: "summary"}
	s := &Summarizer{LLM: stub}

	s.SummarizeText(context.Background(), strings.Repeat("a", MaxChars+500))
	assert.LessOrEqual(t, len(stub.gotUser), MaxChars+len(summaryTemplate))
	assert.NotContains(t, stub.gotUser, strings.Repeat("a", MaxChars+1))
}

func TestSummarizeRateLimited(t *testing.T) {
	s := &Summarizer{LLM: &stubLLM{err: &llm.APIError{Kind: llm.KindRateLimited, Message: "429"}}}
	out := s.SummarizeText(context.Background(), "text")
	assert.Contains(t, out, "Rate limit")
}

func TestSummarizeUnknownFailure(t *testing.T) {
	s := &Summarizer{LLM: &stubLLM{err: errors.New("boom")}}
	out := s.SummarizeText(context.Background(), "text")
	assert.Contains(t, out, "Error during summarization: boom")
}
