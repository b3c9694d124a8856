// Package main provides the scholar CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/scholartools/scholar-mcp/internal/config"
	"github.com/scholartools/scholar-mcp/internal/pdffile"
	"github.com/scholartools/scholar-mcp/internal/s2"
	"github.com/scholartools/scholar-mcp/internal/tools"
)

// Version is set at build time via ldflags
var Version = "dev"

// configPath overrides the default config file location
var configPath string

var rootCmd = &cobra.Command{
	Use:   "scholar",
	Short: "Semantic Scholar MCP server and CLI",
	Long: `scholar exposes the Semantic Scholar Academic Graph API as a set of
tools for LLM hosts speaking the Model Context Protocol, plus direct
subcommands for terminal use.

Run 'scholar serve' to start the MCP server over stdio. Set
SEMANTIC_SCHOLAR_API_KEY for authenticated requests; without a key,
requests share the public rate limit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.config/scholar-mcp/config.yml)")
	rootCmd.Version = Version
}

// newToolset resolves configuration once and wires the shared
// collaborators: API client, PDF downloader, and annotator variant.
func newToolset() (*tools.Toolset, *config.Config, error) {
	path := configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	setupLogging(cfg.LogLevel)

	var clientOpts []s2.ClientOption
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, s2.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, s2.WithBaseURL(cfg.BaseURL))
	}
	client := s2.NewClient(clientOpts...)

	// Annotator selection happens once here; the downloader never
	// branches on capability at call time.
	var annotator pdffile.Annotator = pdffile.NewInfoAnnotator()
	if !cfg.EmbedMetadata() {
		annotator = pdffile.NoopAnnotator{}
	}
	downloader := pdffile.NewDownloader(pdffile.WithAnnotator(annotator))

	return tools.New(client, downloader, cfg.DownloadDir), cfg, nil
}

// setupLogging writes structured logs to stderr; stdout belongs to the
// MCP transport.
func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
