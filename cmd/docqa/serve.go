package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docqa"
	"docqa/mcpserver"
	"docqa/server"
)

var serveMCP bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine over HTTP, or over MCP stdio with --mcp",
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

		if serveMCP {
			return mcpserver.ServeStdio(client)
		}

		srv := server.New(client, cfg.Server.UploadDir)
		return srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "serve the MCP protocol on stdin/stdout instead of HTTP")
	rootCmd.AddCommand(serveCmd)
}
