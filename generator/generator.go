// Package generator produces the final answer for an assembled prompt and
// folds every failure into a tagged result. Callers receive a Result, never
// an error: the orchestrator branches on the tag, not on message text.
package generator

import (
	"context"
	"errors"

	"docqa/llm"
	"docqa/prompt"
)

// Kind tags the outcome of an answer attempt.
type Kind int

const (
	Success Kind = iota
	Blocked
	RateLimited
	AuthError
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Blocked:
		return "blocked"
	case RateLimited:
		return "rate_limited"
	case AuthError:
		return "auth_error"
	default:
		return "unknown"
	}
}

// User-facing notices for provider failures. The summarizer reuses them so a
// rate-limited summary and a rate-limited answer read the same.
const (
	RateLimitNotice = "Rate limit reached. Please wait a few minutes and try again."
	AuthNotice      = "Invalid API key. Please check your API key configuration."
)

// Result is an answer or a translated failure. Text is always presentable.
type Result struct {
	Text string
	Kind Kind
}

// Generator turns an assembled prompt into an answer via the model provider.
type Generator struct {
	LLM llm.Provider
}

// Generate runs the completion and translates failures. It never returns an
// error; the Kind tag carries the outcome.
func (g *Generator) Generate(ctx context.Context, p prompt.AssembledPrompt) Result {
	text, err := g.LLM.Complete(ctx, p.SystemInstruction, p.UserMessage)
	if err != nil {
		return FromError(err)
	}
	return Result{Text: text, Kind: Success}
}

// FromError maps a collaborator failure to a presentable result. The raw
// diagnostic is kept for unknown failures so the caller can still debug.
func FromError(err error) Result {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case llm.KindRateLimited:
			return Result{Text: RateLimitNotice, Kind: RateLimited}
		case llm.KindAuth:
			return Result{Text: AuthNotice, Kind: AuthError}
		}
	}
	return Result{Text: "Error: " + err.Error(), Kind: Unknown}
}
