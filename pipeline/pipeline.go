// Package pipeline orchestrates a single question through the guard-rail
// filter, evidence retrieval, prompt assembly, and answer generation. The
// boundary contract is total: AnswerQuery always returns presentable text,
// never an error.
package pipeline

import (
	"context"
	"time"

	"docqa/common/logger"
	"docqa/generator"
	"docqa/guardrails"
	"docqa/metrics"
	"docqa/prompt"
	"docqa/schema"
)

// SafetyFilter rejects unsafe or out-of-scope questions before any
// collaborator is called.
type SafetyFilter interface {
	Check(query string) guardrails.SafetyCheck
}

// Retriever produces the evidence set for a question.
type Retriever interface {
	Retrieve(ctx context.Context, question string) ([]schema.Document, error)
}

// Generator turns an assembled prompt into a tagged result.
type Generator interface {
	Generate(ctx context.Context, p prompt.AssembledPrompt) generator.Result
}

// Pipeline is the question-answering orchestrator. Construct it once and
// share it; the collaborators handle their own synchronization.
type Pipeline struct {
	Safety    SafetyFilter
	Retriever Retriever
	Generator Generator
}

// AnswerQuery answers a question against the knowledge base. An unsafe
// question short-circuits with the filter's reason and touches neither the
// retriever nor the model. Retrieval failures surface as diagnostic text,
// not as errors.
func (p *Pipeline) AnswerQuery(ctx context.Context, question, history string) string {
	return p.Answer(ctx, question, history).Text
}

// Answer is AnswerQuery with the result tag kept, for callers that need to
// distinguish outcomes without re-parsing text.
func (p *Pipeline) Answer(ctx context.Context, question, history string) generator.Result {
	rec := metrics.NewQueryMetrics(question)
	start := time.Now()
	defer func() {
		rec.TotalLatencyMs = time.Since(start).Milliseconds()
		rec.LogJSON()
	}()

	check := p.Safety.Check(question)
	rec.GuardrailPassed = check.IsSafe
	rec.GuardrailRule = check.MatchedRule
	if !check.IsSafe {
		metrics.IncGuardrailBlocked(check.MatchedRule)
		rec.ResultKind = generator.Blocked.String()
		logger.Infof("query blocked by guard-rail rule %q", check.MatchedRule)
		return generator.Result{Text: check.Reason, Kind: generator.Blocked}
	}

	retrieveStart := time.Now()
	evidence, err := p.Retriever.Retrieve(ctx, question)
	rec.RetrievalLatencyMs = time.Since(retrieveStart).Milliseconds()
	if err != nil {
		rec.ResultKind = generator.Unknown.String()
		rec.ErrorMsg = err.Error()
		logger.Errorf("retrieval failed: %v", err)
		return generator.Result{Text: "Error: " + err.Error(), Kind: generator.Unknown}
	}
	rec.EvidenceCount = len(evidence)

	assembled := prompt.Assemble(question, evidence, history)

	generateStart := time.Now()
	res := p.Generator.Generate(ctx, assembled)
	rec.GenerateLatencyMs = time.Since(generateStart).Milliseconds()
	rec.ResultKind = res.Kind.String()
	rec.Success = res.Kind == generator.Success
	if !rec.Success {
		rec.ErrorMsg = res.Text
	}
	return res
}
