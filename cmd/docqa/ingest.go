package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docqa"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Chunk, embed, and index document files",
	Args:  cobra.MinimumNArgs(1),
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

		for _, path := range args {
			count, err := client.IngestFile(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("ingest %s: %w", path, err)
			}
			fmt.Printf("%s: %d chunks\n", path, count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
