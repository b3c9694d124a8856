package main

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Run the Model Context Protocol server over stdio.

The server exposes the Semantic Scholar tool surface (paper and author
search, citation graphs, snippet search, PDF download) to a connected
LLM host. Logs go to stderr; stdout carries the protocol.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	toolset, cfg, err := newToolset()
	if err != nil {
		return err
	}

	srv := mcp.NewServer(&mcp.Implementation{Name: "semantic-scholar", Version: Version}, nil)
	toolset.Register(srv)

	slog.Info("starting MCP server",
		"transport", "stdio",
		"authenticated", cfg.APIKey != "",
		"download_dir", cfg.DownloadDir)

	return srv.Run(cmd.Context(), &mcp.StdioTransport{})
}
