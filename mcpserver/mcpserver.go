// Package mcpserver exposes the engine as MCP tools over stdio, so agent
// hosts can query and manage the knowledge base.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docqa/schema"
)

const version = "1.0.0"

// Engine is the surface the MCP layer needs from the Q&A client.
type Engine interface {
	AnswerQuery(ctx context.Context, question, sessionID string) string
	IngestText(ctx context.Context, text, source string) (int, error)
	SearchChunks(ctx context.Context, query string, topK int, threshold float64) ([]schema.SearchResult, error)
	ListChunks(ctx context.Context, limit int) ([]schema.Document, error)
	DeleteChunk(ctx context.Context, id string) error
	Clear(ctx context.Context, sessionID string) error
}

// New builds the MCP server with all tools registered.
func New(engine Engine) *server.MCPServer {
	s := server.NewMCPServer("docqa", version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("chat",
		mcp.WithDescription("Answer a question about the uploaded documents, with source citations"),
		mcp.WithString("question", mcp.Required(), mcp.Description("The question to answer")),
		mcp.WithString("session_id", mcp.Description("Optional session for conversation history")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sessionID := req.GetString("session_id", "")
		return mcp.NewToolResultText(engine.AnswerQuery(ctx, question, sessionID)), nil
	})

	s.AddTool(mcp.NewTool("ingest_text",
		mcp.WithDescription("Chunk and index raw text into the knowledge base"),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to index")),
		mcp.WithString("source", mcp.Required(), mcp.Description("Source name the chunks are attributed to")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		source, err := req.RequireString("source")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		count, err := engine.IngestText(ctx, text, source)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("ingested %q: %d chunks", source, count)), nil
	})

	s.AddTool(mcp.NewTool("search_chunks",
		mcp.WithDescription("Semantic search over indexed chunks"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural language search query")),
		mcp.WithNumber("top_k", mcp.Description("Maximum results to return, default 4")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		topK := req.GetInt("top_k", 4)
		results, err := engine.SearchChunks(ctx, query, topK, 0)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatResults(results)), nil
	})

	s.AddTool(mcp.NewTool("list_chunks",
		mcp.WithDescription("List indexed chunks"),
		mcp.WithNumber("limit", mcp.Description("Maximum chunks to return, 0 for all")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docs, err := engine.ListChunks(ctx, req.GetInt("limit", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatDocs(docs)), nil
	})

	s.AddTool(mcp.NewTool("delete_chunk",
		mcp.WithDescription("Remove one chunk by id"),
		mcp.WithString("id", mcp.Required(), mcp.Description("Chunk id")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := engine.DeleteChunk(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("deleted chunk %s", id)), nil
	})

	s.AddTool(mcp.NewTool("clear_knowledge_base",
		mcp.WithDescription("Remove all indexed documents and reset the knowledge base"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := engine.Clear(ctx, ""); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("knowledge base cleared"), nil
	})

	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func ServeStdio(engine Engine) error {
	return server.ServeStdio(New(engine))
}

func formatResults(results []schema.SearchResult) string {
	if len(results) == 0 {
		return "no matching chunks"
	}
	var b strings.Builder
	for i, res := range results {
		fmt.Fprintf(&b, "%d. [%s, chunk %d] score=%.4f\n%s\n\n",
			i+1, res.Document.Source(), res.Document.ChunkIndex(), res.Score, res.Document.Content)
	}
	return strings.TrimSpace(b.String())
}

func formatDocs(docs []schema.Document) string {
	if len(docs) == 0 {
		return "knowledge base is empty"
	}
	var b strings.Builder
	for _, doc := range docs {
		fmt.Fprintf(&b, "%s\t%s\tchunk %d/%d\n", doc.ID, doc.Source(), doc.ChunkIndex(), doc.TotalChunks())
	}
	return strings.TrimSpace(b.String())
}
