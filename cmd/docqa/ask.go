package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docqa"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed documents",
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

		question := strings.Join(args, " ")
		fmt.Println(client.AnswerQuery(cmd.Context(), question, ""))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
