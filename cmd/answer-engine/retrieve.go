// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/retrieve"
	"github.com/pdiddy/answer-engine/pkg/types"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve \"query\"",
	Short: "Fan a query out to the source adapters and print ranked candidates",
	Long: `Retrieve runs only the source-retrieval stage: the query is sent to the
requested source kinds, results are merged, deduplicated by URL, and ranked.
Useful for inspecting what the full pipeline would ground an answer on.`,
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().String("sources", "encyclopedia,web", "comma-separated source kinds")
	retrieveCmd.Flags().Duration("timeout", 0, "per-request HTTP timeout")
	retrieveCmd.Flags().Int("max-results", 0, "maximum merged candidates (default 15)")

	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("provide exactly one query")
	}
	query := args[0]

	sourcesFlag, _ := cmd.Flags().GetString("sources")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	var kinds []types.SourceKind
	for _, s := range strings.Split(sourcesFlag, ",") {
		kind := types.SourceKind(strings.TrimSpace(s))
		if !types.ValidSourceKinds[kind] {
			return fmt.Errorf("unknown source kind %q", kind)
		}
		kinds = append(kinds, kind)
	}

	log := newLogger()
	defer log.Sync()

	r := retrieve.NewRetriever(retrievalConfig(timeout, maxResults), log)
	candidates := r.Retrieve(context.Background(), strings.Fields(query), kinds, query)

	if len(candidates) == 0 {
		fmt.Println("no candidates")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tSOURCE\tTITLE\tURL")
	for _, c := range candidates {
		title := c.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(w, "%.2f\t%s\t%s\t%s\n", c.RelevanceScore, c.Source, title, c.URL)
	}
	return w.Flush()
}
