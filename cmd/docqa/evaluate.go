package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docqa"
	"docqa/evaluation"
)

var evalOutput string

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [test-file]",
	Short: "Measure guard-rail, retrieval, and answer quality",
	Long: `evaluate runs the built-in probe set against the engine: guard-rail cases,
retrieval probes, and end-to-end sample questions. An optional test file is
ingested first. The markdown report is written to --output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := docqa.NewClient(cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		ctx := cmd.Context()
		if len(args) == 1 {
			count, err := client.IngestFile(ctx, args[0])
			if err != nil {
				return fmt.Errorf("ingest test file: %w", err)
			}
			fmt.Printf("ingested %s: %d chunks\n", args[0], count)
		}

		fmt.Println("[1/3] guard-rails...")
		g := evaluation.EvaluateGuardrails(client.Filter(), nil)
		fmt.Printf("  accuracy: %.1f%%\n", g.Accuracy)

		fmt.Println("[2/3] retrieval...")
		r := evaluation.EvaluateRetrieval(ctx, client.Retriever(), nil)
		fmt.Printf("  avg chunks: %.2f\n", r.AvgChunks)

		fmt.Println("[3/3] answers...")
		a := evaluation.EvaluateAnswers(ctx, clientAnswerer{client}, nil)
		fmt.Printf("  avg response time: %.2fs\n", a.AvgLatencyS)

		report := evaluation.RenderReport(g, r, a)
		if err := os.WriteFile(evalOutput, []byte(report), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("report written to %s\n", evalOutput)
		return nil
	},
}

// clientAnswerer adapts the engine's session-keyed API to the evaluation
// probe, which runs without a session.
type clientAnswerer struct {
	client *docqa.Client
}

func (c clientAnswerer) AnswerQuery(ctx context.Context, question, history string) string {
	return c.client.AnswerQuery(ctx, question, "")
}

func init() {
	evaluateCmd.Flags().StringVarP(&evalOutput, "output", "o", "evaluation_report.md", "report output path")
	rootCmd.AddCommand(evaluateCmd)
}
