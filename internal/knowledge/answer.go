// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/internal/ai"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// noAnswerSentinel is the token the completion backend must reply with when
// the stored records cannot answer the question.
const noAnswerSentinel = "NO_ANSWER"

var answerPromptTmpl = template.Must(template.New("knowledge-answer").Parse(
	`Answer the question using ONLY the stored notes below. Do not use any outside knowledge.
If the notes are not sufficient to answer the question, reply with exactly ` + noAnswerSentinel + ` and nothing else.

Question: {{.Question}}

Stored notes:
{{range .Notes}}- {{.}}
{{end}}
Answer:`))

type answerPromptData struct {
	Question string
	Notes    []string
}

// Answerer checks the knowledge store for an answer before live retrieval.
type Answerer struct {
	store *Store
	gen   ai.Generator
	cfg   types.KnowledgeConfig
	log   *zap.Logger
}

// NewAnswerer builds the pre-stage over an open store.
func NewAnswerer(store *Store, gen ai.Generator, cfg types.KnowledgeConfig, log *zap.Logger) *Answerer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Answerer{store: store, gen: gen, cfg: cfg, log: log}
}

// TryAnswer looks for stored records relevant to the query and, when any
// qualify, asks the completion backend to answer from those records alone.
// A sentinel reply or any failure along the way means "not found"; the
// caller then proceeds to live retrieval. Confidence is the top match score.
func (a *Answerer) TryAnswer(ctx context.Context, query string) (bool, string, float64) {
	records, err := a.store.List(ctx)
	if err != nil {
		a.log.Warn("knowledge store unavailable", zap.Error(err))
		return false, "", 0
	}

	matches := matchRecords(query, records, a.cfg.MatchThreshold, a.cfg.MaxRecords)
	if len(matches) == 0 {
		return false, "", 0
	}

	notes := make([]string, len(matches))
	for i, m := range matches {
		notes[i] = m.Record.Response
	}

	var b strings.Builder
	if err := answerPromptTmpl.Execute(&b, answerPromptData{Question: query, Notes: notes}); err != nil {
		a.log.Warn("rendering knowledge prompt failed", zap.Error(err))
		return false, "", 0
	}

	reply, err := a.gen.Generate(ctx, b.String())
	if err != nil {
		a.log.Warn("knowledge answer generation failed", zap.Error(err))
		return false, "", 0
	}

	reply = strings.TrimSpace(reply)
	if reply == "" || strings.Contains(reply, noAnswerSentinel) {
		return false, "", 0
	}
	return true, reply, matches[0].Score
}
