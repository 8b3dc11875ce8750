// Package docqa is a retrieval-augmented question answering engine for
// uploaded documents. A Client owns the full pipeline: guard-rails, chunking,
// embedding, vector search, prompt assembly, and answer generation.
package docqa

import (
	"context"
	"fmt"

	"docqa/common/logger"
	"docqa/config"
	"docqa/embedding"
	"docqa/generator"
	"docqa/guardrails"
	"docqa/ingest"
	"docqa/llm"
	"docqa/memory"
	"docqa/pipeline"
	"docqa/retriever"
	"docqa/schema"
	"docqa/summarize"
	"docqa/textsplitter"
	"docqa/vectordb"
)

// historyRounds bounds how much conversation history reaches the prompt.
const historyRounds = 10

// Client is the document Q&A engine. Construct one per process and share it;
// the underlying providers handle their own synchronization.
type Client struct {
	config     *config.Config
	store      vectordb.Provider
	embed      embedding.Provider
	splitter   textsplitter.TextSplitter
	llm        llm.Provider
	filter     *guardrails.Filter
	pipe       *pipeline.Pipeline
	ingestor   *ingest.Ingestor
	summarizer *summarize.Summarizer
	sessions   memory.ConversationStore
}

// NewClient wires the engine from configuration. Providers are constructed
// eagerly so misconfiguration fails at startup, not mid-request.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{config: cfg}

	splitter, err := textsplitter.NewTextSplitter(&cfg.RAG.Splitter)
	if err != nil {
		return nil, fmt.Errorf("create text splitter failed, err: %w", err)
	}
	c.splitter = splitter

	embedProvider, err := embedding.NewEmbeddingProvider(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("create embedding provider failed, err: %w", err)
	}
	c.embed = embedProvider

	llmProvider, err := llm.NewLLMProvider(&cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create llm provider failed, err: %w", err)
	}
	c.llm = llmProvider

	store, err := vectordb.NewVectorDBProvider(&cfg.VectorDB, cfg.Embedding.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("create vector store provider failed, err: %w", err)
	}
	c.store = store

	c.filter = guardrails.New(cfg.Guardrails.ExtraInjectionPatterns, cfg.Guardrails.ExtraOffTopicPatterns)
	c.pipe = &pipeline.Pipeline{
		Safety: c.filter,
		Retriever: &retriever.EvidenceRetriever{
			Embed:     c.embed,
			Store:     c.store,
			TopK:      cfg.RAG.TopK,
			Threshold: cfg.RAG.Threshold,
		},
		Generator: &generator.Generator{LLM: c.llm},
	}
	c.ingestor = ingest.NewIngestor(c.splitter, c.embed, c.store)
	c.summarizer = &summarize.Summarizer{LLM: c.llm}
	c.sessions = memory.NewInMemoryConversationStore(historyRounds)

	logger.Infof("engine ready: splitter=%s vectordb=%s llm=%s",
		cfg.RAG.Splitter.Provider, cfg.VectorDB.Provider, cfg.LLM.Model)
	return c, nil
}

// AnswerQuery answers a question against the knowledge base. It always
// returns presentable text. A non-empty sessionID threads conversation
// history into the prompt and records the new round.
func (c *Client) AnswerQuery(ctx context.Context, question, sessionID string) string {
	history := ""
	if sessionID != "" {
		rounds, err := c.sessions.GetLastNRounds(ctx, sessionID, historyRounds)
		if err != nil {
			logger.Warnf("load history for session %s: %v", sessionID, err)
		} else {
			history = memory.FormatHistory(rounds)
		}
	}

	res := c.pipe.Answer(ctx, question, history)

	if sessionID != "" && res.Kind == generator.Success {
		if err := c.sessions.SaveRound(ctx, sessionID, memory.ConversationRound{
			Question: question,
			Answer:   res.Text,
		}); err != nil {
			logger.Warnf("save round for session %s: %v", sessionID, err)
		}
	}
	return res.Text
}

// Answer exposes the tagged result for callers that branch on outcome.
func (c *Client) Answer(ctx context.Context, question, history string) generator.Result {
	return c.pipe.Answer(ctx, question, history)
}

// IngestFile chunks, embeds, and indexes one document file.
func (c *Client) IngestFile(ctx context.Context, path string) (int, error) {
	return c.ingestor.IngestFile(ctx, path)
}

// IngestText indexes raw text under the given source name.
func (c *Client) IngestText(ctx context.Context, text, source string) (int, error) {
	return c.ingestor.IngestText(ctx, text, source)
}

// RegisterExtractor adds a file format handler, e.g. a PDF extractor.
func (c *Client) RegisterExtractor(ex ingest.Extractor) {
	c.ingestor.RegisterExtractor(ex)
}

// SupportedExtensions lists ingestable file extensions.
func (c *Client) SupportedExtensions() []string {
	return c.ingestor.SupportedExtensions()
}

// SummarizeText returns a structured summary of raw text.
func (c *Client) SummarizeText(ctx context.Context, text string) string {
	return c.summarizer.SummarizeText(ctx, text)
}

// SearchChunks runs a raw vector search, placeholder entries excluded.
func (c *Client) SearchChunks(ctx context.Context, query string, topK int, threshold float64) ([]schema.SearchResult, error) {
	vec, err := c.embed.GetEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := c.store.SearchDocs(ctx, vec, &schema.SearchOptions{TopK: topK, Threshold: threshold})
	if err != nil {
		return nil, err
	}
	out := make([]schema.SearchResult, 0, len(results))
	for _, res := range results {
		if vectordb.IsBootstrap(res.Document) {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

// ListChunks returns indexed chunks, placeholder entries excluded.
func (c *Client) ListChunks(ctx context.Context, limit int) ([]schema.Document, error) {
	docs, err := c.store.ListDocs(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]schema.Document, 0, len(docs))
	for _, doc := range docs {
		if vectordb.IsBootstrap(doc) {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

// DeleteChunk removes one chunk by id.
func (c *Client) DeleteChunk(ctx context.Context, id string) error {
	return c.store.DeleteDocs(ctx, []string{id})
}

// Clear resets the knowledge base to its bootstrap state and drops the
// session's history.
func (c *Client) Clear(ctx context.Context, sessionID string) error {
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear knowledge base: %w", err)
	}
	if sessionID != "" {
		if err := c.sessions.Clear(ctx, sessionID); err != nil {
			logger.Warnf("clear session %s: %v", sessionID, err)
		}
	}
	return nil
}

// Retriever exposes the evidence retriever for evaluation runs.
func (c *Client) Retriever() *retriever.EvidenceRetriever {
	return c.pipe.Retriever.(*retriever.EvidenceRetriever)
}

// Filter exposes the guard-rail filter for evaluation runs.
func (c *Client) Filter() *guardrails.Filter {
	return c.filter
}

// Close releases provider resources.
func (c *Client) Close() error {
	return c.store.Close()
}
