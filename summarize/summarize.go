// Package summarize generates structured document summaries through the
// model provider. Like the answer path, it returns presentable text for
// every outcome.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"docqa/generator"
	"docqa/llm"
)

const summaryTemplate = `You are a document summarization expert.
Provide a clear, concise summary of the following document.
Structure your summary with:
1. **Overview** — What the document is about
2. **Key Points** — The most important information
3. **Conclusions** — Main takeaways

Document content:
%s`

const summarySystemInstruction = "Summarize the following document concisely."

// MaxChars bounds how much document text is sent to the model.
const MaxChars = 20000

// Summarizer produces document summaries.
type Summarizer struct {
	LLM llm.Provider
}

// SummarizeText summarizes raw text. Input beyond MaxChars is truncated
// before the prompt is built. The returned string is always presentable.
func (s *Summarizer) SummarizeText(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return "Document is empty or contains no extractable text."
	}
	truncated := text
	if len(truncated) > MaxChars {
		truncated = truncated[:MaxChars]
	}

	out, err := s.LLM.Complete(ctx, summarySystemInstruction, fmt.Sprintf(summaryTemplate, truncated))
	if err != nil {
		res := generator.FromError(err)
		if res.Kind == generator.Unknown {
			return "Error during summarization: " + err.Error()
		}
		return res.Text
	}
	return out
}
