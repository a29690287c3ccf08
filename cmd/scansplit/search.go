// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scansplit/internal/catalog"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the text of split documents in a catalog",
	Long: `Search runs a full-text query against the catalog.db written by a run
with output.catalog enabled and lists the matching output files, best
match first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("catalog", catalog.FileName, "path to the catalog database")
	searchCmd.Flags().Int("max-results", 20, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("catalog")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	asJSON, _ := cmd.Flags().GetBool("json")

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("catalog %s: %w", path, err)
	}

	store, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	hits, err := store.Search(context.Background(), strings.Join(args, " "), maxResults)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for i, h := range hits {
		fmt.Printf("%d. %s (from %s, part %d, pages %s)\n", i+1, h.FileName, h.Source, h.Part, pageList(h.Pages))
		fmt.Printf("   %s\n", strings.ReplaceAll(h.Snippet, "\n", " "))
	}
	return nil
}

// pageList formats zero-based page indices as a 1-based range or list.
func pageList(pages []int) string {
	if len(pages) == 0 {
		return "-"
	}
	contiguous := true
	for i := 1; i < len(pages); i++ {
		if pages[i] != pages[i-1]+1 {
			contiguous = false
			break
		}
	}
	if contiguous {
		if len(pages) == 1 {
			return fmt.Sprint(pages[0] + 1)
		}
		return fmt.Sprintf("%d-%d", pages[0]+1, pages[len(pages)-1]+1)
	}
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprint(p + 1)
	}
	return strings.Join(parts, ",")
}
