// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [urls...]",
	Short: "Fetch pages and print their extracted content",
	Long: `Scrape runs only the fetch-and-extract stage on the given URLs. Each page
is downloaded, stripped of boilerplate, and reduced to title, body text,
metadata, and a readability score. Failures are reported per URL with their
classification (blocked, timeout, transport, status, proxy).`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().Duration("timeout", 0, "per-fetch timeout (default 15s)")
	scrapeCmd.Flags().Bool("full", false, "print the full body text instead of a preview")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more URLs")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	full, _ := cmd.Flags().GetBool("full")

	log := newLogger()
	defer log.Sync()

	s := scrape.NewScraper(scrapeConfig(timeout), log)
	results := s.FetchMany(context.Background(), args)

	order := make([]string, 0, len(results))
	for u := range results {
		order = append(order, u)
	}
	sort.Strings(order)

	failures := 0
	for _, u := range order {
		r := results[u]
		if r.Err != nil {
			failures++
			fmt.Printf("failed  %s (%s): %v\n", u, scrape.KindOf(r.Err), r.Err)
			continue
		}
		fmt.Printf("ok      %s\n", u)
		fmt.Printf("  title:       %s\n", r.Article.Title)
		fmt.Printf("  readability: %.2f\n", r.Article.ReadabilityScore)
		if r.Article.Metadata.Author != "" {
			fmt.Printf("  author:      %s\n", r.Article.Metadata.Author)
		}
		if !r.Article.Metadata.PublishedAt.IsZero() {
			fmt.Printf("  published:   %s\n", r.Article.Metadata.PublishedAt.Format("2006-01-02"))
		}
		body := r.Article.Text
		if !full && len(body) > 400 {
			body = body[:400] + "..."
		}
		fmt.Printf("  body: %s\n", body)
	}

	if failures > 0 {
		return fmt.Errorf("%d page(s) failed", failures)
	}
	return nil
}
