package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"docqa/guardrails"
	"docqa/schema"
)

type stubRetriever struct {
	docs []schema.Document
}

func (s *stubRetriever) Retrieve(ctx context.Context, question string) ([]schema.Document, error) {
	return s.docs, nil
}

type stubAnswerer struct {
	answer string
}

func (s *stubAnswerer) AnswerQuery(ctx context.Context, question, history string) string {
	return s.answer
}

func TestEvaluateGuardrailsDefaults(t *testing.T) {
	report := EvaluateGuardrails(guardrails.New(nil, nil), nil)
	assert.Equal(t, len(DefaultGuardrailCases), report.Total)
	assert.Equal(t, report.Total, report.Passed)
	assert.Equal(t, 100.0, report.Accuracy)
}

func TestEvaluateGuardrailsMiss(t *testing.T) {
	cases := []GuardrailCase{
		{Query: "a perfectly normal question", ShouldBlock: true},
	}
	report := EvaluateGuardrails(guardrails.New(nil, nil), cases)
	assert.Equal(t, 0, report.Passed)
	assert.False(t, report.Details[0].Correct)
}

func TestEvaluateRetrieval(t *testing.T) {
	r := &stubRetriever{docs: []schema.Document{
		{Content: "a", Metadata: map[string]any{schema.MetaSource: "x.txt"}},
		{Content: "b", Metadata: map[string]any{schema.MetaSource: "x.txt"}},
		{Content: "c", Metadata: map[string]any{schema.MetaSource: "y.txt"}},
	}}
	report := EvaluateRetrieval(context.Background(), r, []string{"q1", "q2"})
	assert.Equal(t, 2, report.TotalQuestions)
	assert.Equal(t, 3.0, report.AvgChunks)
	assert.Equal(t, []string{"x.txt", "y.txt"}, report.Details[0].Sources)
}

func TestEvaluateAnswers(t *testing.T) {
	a := &stubAnswerer{answer: "The document covers Alpha. [Source: report.pdf]"}
	report := EvaluateAnswers(context.Background(), a, []string{"q1", "q2"})
	assert.Equal(t, 100.0, report.CitationRate)
	assert.Equal(t, 0.0, report.ErrorRate)
}

func TestEvaluateAnswersErrorRate(t *testing.T) {
	cases := []string{
		"Error: boom",
		"Rate limit reached. Please wait a few minutes and try again.",
		"Invalid API key. Please check your API key configuration.",
	}
	for _, answer := range cases {
		report := EvaluateAnswers(context.Background(), &stubAnswerer{answer: answer}, []string{"q"})
		assert.Equal(t, 100.0, report.ErrorRate, answer)
		assert.Equal(t, 0.0, report.CitationRate, answer)
	}
}

func TestRenderReport(t *testing.T) {
	g := EvaluateGuardrails(guardrails.New(nil, nil), nil)
	r := EvaluateRetrieval(context.Background(), &stubRetriever{}, []string{"q"})
	a := EvaluateAnswers(context.Background(), &stubAnswerer{answer: "ok"}, []string{"q"})

	out := RenderReport(g, r, a)
	assert.Contains(t, out, "# Evaluation Report")
	assert.Contains(t, out, "Guard-Rail Effectiveness")
	assert.Contains(t, out, "Retrieval Quality")
	assert.Contains(t, out, "Answer Quality")
	assert.Contains(t, out, "Known Limitations")
}
