package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholartools/scholar-mcp/internal/tools"
)

var (
	searchLimit      int
	searchOffset     int
	searchYear       string
	searchVenue      string
	searchOpenAccess bool
	searchMinCite    int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search papers by keyword",
	Long: `Search for papers by keyword relevance.

Examples:
  scholar search "phylogenetic inference"
  scholar search "machine learning" --limit 5 --year 2023
  scholar search "SARS-CoV-2" --venue "Nature" --open-access`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "Number of results to skip")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Publication year or range (e.g., 2020-2023)")
	searchCmd.Flags().StringVar(&searchVenue, "venue", "", "Filter by venue")
	searchCmd.Flags().BoolVar(&searchOpenAccess, "open-access", false, "Only papers with an open access PDF")
	searchCmd.Flags().IntVar(&searchMinCite, "min-citations", 0, "Minimum citation count")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	toolset, _, err := newToolset()
	if err != nil {
		return err
	}

	in := tools.SearchPapersInput{
		Query:         args[0],
		Limit:         searchLimit,
		Offset:        searchOffset,
		Year:          searchYear,
		Venue:         searchVenue,
		OpenAccessPDF: searchOpenAccess,
	}
	if searchMinCite > 0 {
		in.MinCitationCount = &searchMinCite
	}

	text, err := toolset.SearchPapers(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
