package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholartools/scholar-mcp/internal/tools"
)

var downloadDir string

var downloadCmd = &cobra.Command{
	Use:   "download <paper-id>",
	Short: "Download a paper's open access PDF",
	Long: `Download a paper's open access PDF and embed its metadata.

The filename is derived from the paper title and year; existing files
are never overwritten. Papers without an open access PDF fail before
any download is attempted (see 'scholar paper' for alternative access
routes via external IDs).

Examples:
  scholar download DOI:10.18653/v1/N19-1423
  scholar download ARXIV:1706.03762 --dir ~/papers`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVar(&downloadDir, "dir", "", "Destination directory (default from config)")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	toolset, _, err := newToolset()
	if err != nil {
		return err
	}

	text, err := toolset.DownloadPaperPDF(cmd.Context(), tools.DownloadPaperPDFInput{
		PaperID:     args[0],
		DownloadDir: downloadDir,
	})
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
