package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"docqa/schema"
)

func TestAssembleWithEvidence(t *testing.T) {
	evidence := []schema.Document{
		{
			Content:  "Alpha project overview.",
			Metadata: map[string]any{schema.MetaSource: "report.pdf", schema.MetaChunkIndex: 0},
		},
		{
			Content:  "Budget details for Q3.",
			Metadata: map[string]any{schema.MetaSource: "report.pdf", schema.MetaChunkIndex: 3},
		},
	}

	p := Assemble("What is the Alpha project?", evidence, "")

	assert.Contains(t, p.SystemInstruction, "Relevant Document Excerpts:")
	assert.Contains(t, p.SystemInstruction, "[Source: report.pdf, Chunk 0]:\nAlpha project overview.")
	assert.Contains(t, p.SystemInstruction, "[Source: report.pdf, Chunk 3]:\nBudget details for Q3.")
	assert.Contains(t, p.SystemInstruction, "(New conversation)")
	assert.Equal(t, "What is the Alpha project?", p.UserMessage)

	// Excerpt order matches evidence order.
	first := strings.Index(p.SystemInstruction, "Chunk 0")
	second := strings.Index(p.SystemInstruction, "Chunk 3")
	assert.Less(t, first, second)
}

func TestAssembleNoEvidence(t *testing.T) {
	p := Assemble("Hello", nil, "")
	assert.Contains(t, p.SystemInstruction, "(No documents uploaded yet. Please upload a PDF or DOCX file first.)")
	assert.NotContains(t, p.SystemInstruction, "Relevant Document Excerpts:")
}

func TestAssembleWithHistory(t *testing.T) {
	p := Assemble("And the budget?", nil, "User: What is Alpha?\nAssistant: A project.")
	assert.Contains(t, p.SystemInstruction, "User: What is Alpha?")
	assert.NotContains(t, p.SystemInstruction, "(New conversation)")
}

func TestAssembleUnknownSource(t *testing.T) {
	p := Assemble("q", []schema.Document{{Content: "text"}}, "")
	assert.Contains(t, p.SystemInstruction, "[Source: unknown, Chunk 0]:")
}
