package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholartools/scholar-mcp/internal/tools"
)

var (
	paperFields     string
	paperCitations  bool
	paperReferences bool
	paperListLimit  int
)

var paperCmd = &cobra.Command{
	Use:   "paper <paper-id>",
	Short: "Get paper details by ID",
	Long: `Get detailed information about a paper by its identifier.

Supported ID formats:
  DOI:10.1093/sysbio/syy032
  ARXIV:2106.15928
  PMID:19872477
  CorpusId:215416146
  <S2 paper ID>

Examples:
  scholar paper DOI:10.1093/sysbio/syy032
  scholar paper ARXIV:2106.15928 --citations
  scholar paper 649def34f8be52c8b66281af98ae884c09aef38b --fields title,authors`,
	Args: cobra.ExactArgs(1),
	RunE: runPaper,
}

func init() {
	paperCmd.Flags().StringVar(&paperFields, "fields", "", "Comma-separated fields to return")
	paperCmd.Flags().BoolVar(&paperCitations, "citations", false, "List citing papers instead of paper details")
	paperCmd.Flags().BoolVar(&paperReferences, "references", false, "List referenced papers instead of paper details")
	paperCmd.Flags().IntVar(&paperListLimit, "limit", 10, "Maximum results for --citations/--references")
	rootCmd.AddCommand(paperCmd)
}

func runPaper(cmd *cobra.Command, args []string) error {
	toolset, _, err := newToolset()
	if err != nil {
		return err
	}

	var text string
	switch {
	case paperCitations:
		text, err = toolset.GetPaperCitations(cmd.Context(), tools.CitationListInput{
			PaperID: args[0], Limit: paperListLimit,
		})
	case paperReferences:
		text, err = toolset.GetPaperReferences(cmd.Context(), tools.CitationListInput{
			PaperID: args[0], Limit: paperListLimit,
		})
	default:
		text, err = toolset.GetPaper(cmd.Context(), tools.GetPaperInput{
			PaperID: args[0], Fields: paperFields,
		})
	}
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
