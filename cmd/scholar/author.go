package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholartools/scholar-mcp/internal/tools"
)

var (
	authorSearch bool
	authorLimit  int
)

var authorCmd = &cobra.Command{
	Use:   "author <author-id|name>",
	Short: "Get author details or search authors by name",
	Long: `Get detailed information about an author by ID, or search by
name with --search.

Examples:
  scholar author 1741101
  scholar author "Geoffrey Hinton" --search`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthor,
}

func init() {
	authorCmd.Flags().BoolVar(&authorSearch, "search", false, "Search authors by name instead of looking up by ID")
	authorCmd.Flags().IntVar(&authorLimit, "limit", 10, "Maximum results for --search")
	rootCmd.AddCommand(authorCmd)
}

func runAuthor(cmd *cobra.Command, args []string) error {
	toolset, _, err := newToolset()
	if err != nil {
		return err
	}

	var text string
	if authorSearch {
		text, err = toolset.SearchAuthors(cmd.Context(), tools.SearchAuthorsInput{
			Query: args[0], Limit: authorLimit,
		})
	} else {
		text, err = toolset.GetAuthor(cmd.Context(), tools.GetAuthorInput{AuthorID: args[0]})
	}
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
