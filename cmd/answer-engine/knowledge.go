// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/ai"
	"github.com/pdiddy/answer-engine/internal/knowledge"
	"github.com/pdiddy/answer-engine/pkg/types"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Manage the private knowledge store",
	Long: `Knowledge manages the trigger/response records the pipeline consults before
any live retrieval. Records are stored in a local SQLite database and can be
imported from and exported to YAML.`,
}

var knowledgeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one trigger/response record",
	RunE:  runKnowledgeAdd,
}

var knowledgeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored records",
	RunE:  runKnowledgeList,
}

var knowledgeImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Append records from a YAML file",
	RunE:  runKnowledgeImport,
}

var knowledgeExportCmd = &cobra.Command{
	Use:   "export <file.yaml>",
	Short: "Write all records to a YAML file",
	RunE:  runKnowledgeExport,
}

var knowledgeAskCmd = &cobra.Command{
	Use:   "ask \"question\"",
	Short: "Answer from the store alone, without live retrieval",
	RunE:  runKnowledgeAsk,
}

func init() {
	knowledgeCmd.PersistentFlags().String("db", "", "knowledge store SQLite path")

	knowledgeAddCmd.Flags().StringSlice("trigger", nil, "trigger phrase (repeatable)")
	knowledgeAddCmd.Flags().String("type", "topic", "trigger type label")
	knowledgeAddCmd.Flags().String("response", "", "stored answer text")

	knowledgeAskCmd.Flags().String("provider", "", "completion provider: anthropic or openai")

	knowledgeCmd.AddCommand(knowledgeAddCmd, knowledgeListCmd, knowledgeImportCmd,
		knowledgeExportCmd, knowledgeAskCmd)
	rootCmd.AddCommand(knowledgeCmd)
}

func openStore(cmd *cobra.Command) (*knowledge.Store, types.KnowledgeConfig, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	cfg := knowledgeConfig(dbPath)
	store, err := knowledge.NewStore(cfg.DBPath)
	return store, cfg, err
}

func runKnowledgeAdd(cmd *cobra.Command, args []string) error {
	triggers, _ := cmd.Flags().GetStringSlice("trigger")
	triggerType, _ := cmd.Flags().GetString("type")
	response, _ := cmd.Flags().GetString("response")

	if len(triggers) == 0 {
		return fmt.Errorf("provide at least one --trigger phrase")
	}
	if strings.TrimSpace(response) == "" {
		return fmt.Errorf("provide a --response")
	}

	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Add(context.Background(), types.KnowledgeRecord{
		TriggerWords: triggers,
		TriggerType:  triggerType,
		Response:     response,
	})
	if err != nil {
		return err
	}
	fmt.Printf("added record %d\n", rec.ID)
	return nil
}

func runKnowledgeList(cmd *cobra.Command, args []string) error {
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no records")
		return nil
	}
	for _, r := range records {
		fmt.Printf("%d\t[%s]\t%s\n\t%s\n", r.ID, r.TriggerType,
			strings.Join(r.TriggerWords, "; "), r.Response)
	}
	return nil
}

func runKnowledgeImport(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one YAML file")
	}
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.ImportYAML(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("imported %d record(s)\n", n)
	return nil
}

func runKnowledgeExport(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one output file")
	}
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ExportYAML(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", args[0])
	return nil
}

func runKnowledgeAsk(cmd *cobra.Command, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("provide exactly one question")
	}

	provider, _ := cmd.Flags().GetString("provider")
	gen, err := ai.NewGenerator(aiConfig(provider))
	if err != nil {
		return err
	}

	store, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	log := newLogger()
	defer log.Sync()

	answerer := knowledge.NewAnswerer(store, gen, cfg, log)
	found, answer, confidence := answerer.TryAnswer(context.Background(), args[0])
	if !found {
		fmt.Println("no stored answer")
		return nil
	}
	fmt.Println(answer)
	fmt.Printf("\nconfidence: %.2f\n", confidence)
	return nil
}
