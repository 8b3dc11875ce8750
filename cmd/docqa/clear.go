package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docqa"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all indexed documents and reset the knowledge base",
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

		if err := client.Clear(cmd.Context(), ""); err != nil {
			return err
		}
		fmt.Println("knowledge base cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
