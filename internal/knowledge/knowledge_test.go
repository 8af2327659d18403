// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/pkg/types"
)

type stubGen struct {
	reply  string
	err    error
	prompt string
}

func (s *stubGen) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "knowledge.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreAddAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec, err := store.Add(ctx, types.KnowledgeRecord{
		TriggerWords: []string{"company holidays", "vacation policy"},
		TriggerType:  "topic",
		Response:     "Employees get 25 vacation days per year.",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rec.ID == 0 {
		t.Error("Add did not assign an ID")
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got := records[0].TriggerWords; len(got) != 2 || got[1] != "vacation policy" {
		t.Errorf("trigger words = %v", got)
	}
	if records[0].Response != "Employees get 25 vacation days per year." {
		t.Errorf("response = %q", records[0].Response)
	}
}

func TestStoreRejectsEmptyTriggers(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Add(context.Background(), types.KnowledgeRecord{Response: "orphan"}); err == nil {
		t.Error("want error for record without trigger phrases")
	}
}

func TestStoreYAMLRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Add(ctx, types.KnowledgeRecord{
			TriggerWords: []string{fmt.Sprintf("topic %d", i)},
			Response:     fmt.Sprintf("answer %d", i),
		})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "export.yaml")
	if err := store.ExportYAML(ctx, path); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export file missing: %v", err)
	}

	second := newTestStore(t)
	n, err := second.ImportYAML(ctx, path)
	if err != nil {
		t.Fatalf("ImportYAML: %v", err)
	}
	if n != 3 {
		t.Errorf("imported %d records, want 3", n)
	}
	records, err := second.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 || records[2].Response != "answer 2" {
		t.Errorf("round-tripped records = %+v", records)
	}
}

func TestMatchScoring(t *testing.T) {
	records := []types.KnowledgeRecord{
		{ID: 1, TriggerWords: []string{"what is the vacation policy"}, Response: "exact"},
		{ID: 2, TriggerWords: []string{"vacation policy"}, Response: "contained"},
		{ID: 3, TriggerWords: []string{"vacation days carryover rules"}, Response: "overlap"},
		{ID: 4, TriggerWords: []string{"parking garage access"}, Response: "unrelated"},
	}

	matches := matchRecords("What is the vacation policy?", records, 0, 0)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(matches), matches)
	}
	if matches[0].Record.ID != 1 || matches[0].Score != 1.0 {
		t.Errorf("top match = record %d score %v, want record 1 score 1.0",
			matches[0].Record.ID, matches[0].Score)
	}
	if matches[1].Record.ID != 2 || matches[1].Score != containmentPoints/exactMatchPoints {
		t.Errorf("second match = record %d score %v", matches[1].Record.ID, matches[1].Score)
	}
}

func TestMatchOverlapBelowThreshold(t *testing.T) {
	records := []types.KnowledgeRecord{
		// Two of four trigger words overlap: 10*(2/4)/25 = 0.2, below 0.3.
		{ID: 1, TriggerWords: []string{"vacation days carryover rules"}, Response: "weak"},
	}
	if matches := matchRecords("carryover vacation", records, 0, 0); len(matches) != 0 {
		t.Errorf("weak overlap matched: %+v", matches)
	}
}

func TestMatchCap(t *testing.T) {
	var records []types.KnowledgeRecord
	for i := 0; i < 15; i++ {
		records = append(records, types.KnowledgeRecord{
			ID:           int64(i + 1),
			TriggerWords: []string{"office wifi password"},
			Response:     "hunter2",
		})
	}
	if matches := matchRecords("office wifi password", records, 0, 0); len(matches) != 10 {
		t.Errorf("got %d matches, want capped at 10", len(matches))
	}
}

func TestTryAnswerHit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, err := store.Add(ctx, types.KnowledgeRecord{
		TriggerWords: []string{"vacation policy"},
		Response:     "Employees get 25 vacation days per year.",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	gen := &stubGen{reply: "You get 25 vacation days per year."}
	a := NewAnswerer(store, gen, types.KnowledgeConfig{}, zap.NewNop())

	found, answer, conf := a.TryAnswer(ctx, "vacation policy")
	if !found {
		t.Fatal("want a hit")
	}
	if answer != "You get 25 vacation days per year." {
		t.Errorf("answer = %q", answer)
	}
	if conf != 1.0 {
		t.Errorf("confidence = %v, want 1.0 for exact trigger match", conf)
	}
	if !strings.Contains(gen.prompt, "25 vacation days") {
		t.Errorf("prompt missing stored note: %q", gen.prompt)
	}
	if !strings.Contains(gen.prompt, noAnswerSentinel) {
		t.Errorf("prompt missing sentinel instruction")
	}
}

func TestTryAnswerSentinelMeansNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if _, err := store.Add(ctx, types.KnowledgeRecord{
		TriggerWords: []string{"vacation policy"},
		Response:     "Employees get 25 vacation days per year.",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	gen := &stubGen{reply: noAnswerSentinel}
	a := NewAnswerer(store, gen, types.KnowledgeConfig{}, zap.NewNop())
	if found, _, _ := a.TryAnswer(ctx, "vacation policy"); found {
		t.Error("sentinel reply treated as a hit")
	}
}

func TestTryAnswerGeneratorFailureMeansNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if _, err := store.Add(ctx, types.KnowledgeRecord{
		TriggerWords: []string{"vacation policy"},
		Response:     "Employees get 25 vacation days per year.",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	gen := &stubGen{err: errors.New("backend down")}
	a := NewAnswerer(store, gen, types.KnowledgeConfig{}, zap.NewNop())
	if found, _, _ := a.TryAnswer(ctx, "vacation policy"); found {
		t.Error("generator failure treated as a hit")
	}
}

func TestTryAnswerNoMatchSkipsGenerator(t *testing.T) {
	store := newTestStore(t)
	gen := &stubGen{reply: "should never be used"}
	a := NewAnswerer(store, gen, types.KnowledgeConfig{}, zap.NewNop())

	if found, _, _ := a.TryAnswer(context.Background(), "completely unrelated"); found {
		t.Error("empty store produced a hit")
	}
	if gen.prompt != "" {
		t.Error("generator invoked with no matching records")
	}
}
