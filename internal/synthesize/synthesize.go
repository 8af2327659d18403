// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesize turns ranked candidates and their scraped content into
// a single grounded answer with a confidence score.
package synthesize

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/answer-engine/internal/ai"
	"github.com/pdiddy/answer-engine/pkg/types"
)

const defaultMaxEvidenceChars = 1500

// Summarizer builds the evidence context and asks the completion backend
// for the final answer.
type Summarizer struct {
	Gen ai.Generator
	cfg types.SynthesisConfig
}

// NewSummarizer builds a summarizer. A zero MaxEvidenceChars gets the
// default per-source cap.
func NewSummarizer(gen ai.Generator, cfg types.SynthesisConfig) *Summarizer {
	if cfg.MaxEvidenceChars <= 0 {
		cfg.MaxEvidenceChars = defaultMaxEvidenceChars
	}
	return &Summarizer{Gen: gen, cfg: cfg}
}

// Synthesize answers the query from the candidates and their extracted
// articles. The reply text is used verbatim as the answer; confidence is
// computed from source coverage, not from the model's wording.
func (s *Summarizer) Synthesize(ctx context.Context, query types.Query, candidates []types.Candidate, extracted map[string]*types.ExtractedArticle) (string, float64, error) {
	evidence := s.buildEvidence(candidates, extracted)
	prompt, err := buildPrompt(query, evidence)
	if err != nil {
		return "", 0, fmt.Errorf("building synthesis prompt: %w", err)
	}

	answer, err := s.Gen.Generate(ctx, prompt)
	if err != nil {
		return "", 0, fmt.Errorf("generating answer: %w", err)
	}

	return strings.TrimSpace(answer), Confidence(candidates, extracted), nil
}

// buildEvidence emits one numbered block per candidate in ranking order:
// a source header, then the extracted body when scraping succeeded or the
// raw snippet otherwise. Extracted bodies are truncated per source.
func (s *Summarizer) buildEvidence(candidates []types.Candidate, extracted map[string]*types.ExtractedArticle) string {
	var b strings.Builder
	for i, c := range candidates {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] %s (%s, %s)\n", i+1, c.Title, c.Source, c.URL)

		if article, ok := extracted[c.URL]; ok && article != nil && article.Text != "" {
			b.WriteString(truncateOnRuneBoundary(article.Text, s.cfg.MaxEvidenceChars))
		} else {
			b.WriteString(c.Snippet)
		}
	}
	return b.String()
}

// Confidence scores how well grounded an answer can be, from source count,
// scrape coverage, and source-kind diversity, with fixed bonuses for
// high-trust kinds. The result is clamped to [0, 1].
func Confidence(candidates []types.Candidate, extracted map[string]*types.ExtractedArticle) float64 {
	score := 0.5

	n := float64(len(candidates))
	score += 0.3 * min1(n/8)

	if len(candidates) > 0 {
		scraped := 0
		for _, c := range candidates {
			if a, ok := extracted[c.URL]; ok && a != nil && a.Text != "" {
				scraped++
			}
		}
		score += 0.2 * float64(scraped) / n
	}

	kinds := make(map[types.SourceKind]bool)
	for _, c := range candidates {
		kinds[c.Source] = true
	}
	score += 0.2 * min1(float64(len(kinds))/4)

	if kinds[types.SourceEncyclopedia] {
		score += 0.1
	}
	if kinds[types.SourceNews] {
		score += 0.05
	}
	if kinds[types.SourceAcademic] {
		score += 0.1
	}

	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

// truncateOnRuneBoundary cuts s to at most limit bytes without splitting a
// multi-byte rune.
func truncateOnRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
