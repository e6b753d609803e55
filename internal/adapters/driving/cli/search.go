package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/services"
)

var (
	searchType     string
	searchLimit    int
	searchOffset   int
	searchSnippets int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search library documents",
	Long: `Finds every case-insensitive occurrence of the query in the library.

Documents are ranked by how many times the query appears. Each result shows
snippets of surrounding text with the match highlighted and, for PDFs, the
approximate page it was found on.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchType, "type", "t", domain.TypeAll, "restrict to a type (pdf, docx, txt)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results (0 = no limit)")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of results to skip")
	searchCmd.Flags().IntVar(&searchSnippets, "snippets", 3, "snippets shown per result (0 = all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return fmt.Errorf("search service not configured")
	}

	docType, err := services.ParseTypeFilter(searchType)
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{
		Type:        docType,
		Limit:       searchLimit,
		Offset:      searchOffset,
		MaxSnippets: searchSnippets,
	}
	if !searchJSON {
		opts.Highlight = highlighterFor(cmd)
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		doc := &results[i].Document
		noun := "matches"
		if results[i].MatchCount == 1 {
			noun = "match"
		}
		cmd.Printf("  [%d] %s (%s, %d %s)\n", i+1, doc.Name, domain.TypeLabel(doc.Type), results[i].MatchCount, noun)
		for _, s := range results[i].Snippets {
			if s.Page > 0 && doc.HasPageCount() {
				cmd.Printf("      p.%d  %s\n", s.Page, flatten(s.Text))
			} else {
				cmd.Printf("      %s\n", flatten(s.Text))
			}
		}
		cmd.Println()
	}
	return nil
}
