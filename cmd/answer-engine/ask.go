// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/ai"
	"github.com/pdiddy/answer-engine/internal/classify"
	"github.com/pdiddy/answer-engine/internal/engine"
	"github.com/pdiddy/answer-engine/internal/knowledge"
	"github.com/pdiddy/answer-engine/internal/retrieve"
	"github.com/pdiddy/answer-engine/internal/scrape"
	"github.com/pdiddy/answer-engine/internal/synthesize"
)

var askCmd = &cobra.Command{
	Use:   "ask \"question\"",
	Short: "Run the full answer pipeline for one question",
	Long: `Ask classifies the question, retrieves candidates from the target sources,
scrapes and extracts their content, and synthesizes a single grounded answer
with citations. When the live path fails or times out, the answer comes from
a direct completion call instead.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("provider", "", "completion provider: anthropic or openai")
	askCmd.Flags().Duration("timeout", 0, "per-request HTTP timeout for retrieval and scraping")
	askCmd.Flags().Int("max-results", 0, "maximum merged candidates (default 15)")
	askCmd.Flags().Bool("use-knowledge", false, "check the knowledge store before live retrieval")
	askCmd.Flags().String("db", "", "knowledge store SQLite path")
	askCmd.Flags().Bool("json", false, "output the full answer envelope as JSON")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("provide exactly one question")
	}
	question := args[0]

	provider, _ := cmd.Flags().GetString("provider")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	useKnowledge, _ := cmd.Flags().GetBool("use-knowledge")
	dbPath, _ := cmd.Flags().GetString("db")
	asJSON, _ := cmd.Flags().GetBool("json")

	log := newLogger()
	defer log.Sync()

	gen, err := ai.NewGenerator(aiConfig(provider))
	if err != nil {
		return err
	}

	stages := engine.Stages{
		Classifier: &classify.Processor{Gen: gen},
		Retriever:  retrieve.NewRetriever(retrievalConfig(timeout, maxResults), log),
		Scraper:    scrape.NewScraper(scrapeConfig(timeout), log),
		Summarizer: synthesize.NewSummarizer(gen, synthesisConfig(provider)),
		Direct:     gen,
	}

	engCfg := engineConfig(useKnowledge)
	if engCfg.UseKnowledgeStore {
		kCfg := knowledgeConfig(dbPath)
		store, err := knowledge.NewStore(kCfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		stages.Knowledge = knowledge.NewAnswerer(store, gen, kCfg, log)
	}

	env := engine.New(stages, engCfg, log).Answer(context.Background(), question)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	}

	fmt.Println(env.Answer)
	fmt.Println()
	if len(env.Sources) > 0 {
		fmt.Println("Sources:")
		for i, c := range env.Sources {
			fmt.Printf("  [%d] %s\n      %s\n", i+1, c.Title, c.URL)
		}
		fmt.Println()
	}
	fmt.Printf("confidence: %.2f", env.Confidence)
	switch {
	case env.CacheHit:
		fmt.Print("  (cached)")
	case env.DatabaseUsed:
		fmt.Print("  (knowledge store)")
	case env.FallbackUsed:
		fmt.Print("  (direct fallback)")
	}
	fmt.Printf("  total: %dms\n", env.Timings.Total)
	return nil
}
