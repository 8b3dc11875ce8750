// Package prompt assembles the system instruction and user message sent to
// the completion provider. The citation contract lives entirely in the
// excerpt block format: the model is told to cite, and each excerpt carries
// the source and chunk index it should cite.
package prompt

import (
	"fmt"
	"strings"

	"docqa/schema"
)

const systemTemplate = `You are a Document Q&A Assistant. You help users understand
and answer questions about their uploaded documents.

Rules:
1. Base your answers ONLY on the provided document context below.
2. Always cite the source document for each piece of information using [Source: filename].
3. If the context does not contain enough information, say so honestly.
4. If no documents have been uploaded yet, tell the user to upload a document first.
5. You may engage in brief, friendly conversation (greetings, etc).
6. For questions unrelated to the documents, politely redirect:
   "I can only help with questions about your uploaded documents."

%s

Conversation History:
%s`

const noDocsNotice = "(No documents uploaded yet. Please upload a PDF or DOCX file first.)"

const emptyHistory = "(New conversation)"

// AssembledPrompt holds the two messages of a completion request.
type AssembledPrompt struct {
	SystemInstruction string
	UserMessage       string
}

// Assemble renders the prompt for a question over the retrieved evidence.
// Evidence order is preserved; an empty evidence set produces the upload
// notice instead of an excerpt block.
func Assemble(question string, evidence []schema.Document, history string) AssembledPrompt {
	contextSection := noDocsNotice
	if len(evidence) > 0 {
		parts := make([]string, 0, len(evidence))
		for _, doc := range evidence {
			parts = append(parts, fmt.Sprintf("[Source: %s, Chunk %d]:\n%s", doc.Source(), doc.ChunkIndex(), doc.Content))
		}
		contextSection = "Relevant Document Excerpts:\n" + strings.Join(parts, "\n\n")
	}

	if strings.TrimSpace(history) == "" {
		history = emptyHistory
	}

	return AssembledPrompt{
		SystemInstruction: fmt.Sprintf(systemTemplate, contextSection, history),
		UserMessage:       question,
	}
}
