// Package main is the entry point for the docqa CLI: a document Q&A engine
// with retrieval-augmented answering, ingestion, summarization, and serving
// over HTTP or MCP stdio.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docqa/common/logger"
	"docqa/config"
)

// version is set at build time via ldflags.
var version = "dev"

var configPath string

// rootCmd is the base command for the docqa CLI.
var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Document Q&A over your uploaded files",
	Long: `docqa answers questions about uploaded documents using retrieval-augmented
generation: documents are chunked and embedded into a vector store, questions
are guarded against prompt injection, and answers cite their sources.

Run "docqa serve" for the HTTP API, "docqa serve --mcp" for an MCP stdio
server, or use ask/ingest/clear/evaluate directly from the shell.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; environment variables still apply.
		_ = godotenv.Load()
	},
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func main() {
	defer logger.Sync()
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "docqa.yaml", "path to config file")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
