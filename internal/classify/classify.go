// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify turns a raw user query into a typed, refined Query.
// Classification asks the completion capability once for a JSON verdict and
// falls back to a deterministic keyword heuristic on any failure.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/pdiddy/answer-engine/internal/ai"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// classifyPromptTmpl instructs the model to classify the query and reply
// with a single JSON object and nothing else.
var classifyPromptTmpl = template.Must(template.New("classify").Parse(`You are a query classification system for a research answer engine. Classify the following user query.

Respond with a single JSON object and no other text, with these fields:
- refinedQuery: the query rewritten as a clean search question
- queryType: one of "factual", "opinion", "news", "technical", "general"
- targetSources: an array drawn from "encyclopedia", "community-qa-1", "community-qa-2", "news", "academic", "forums", "feeds", "web", in preference order
- searchTerms: an array of three to six search keywords
- confidence: a float between 0.0 and 1.0

Query:
{{.Query}}
`))

// classification mirrors the JSON object the model is asked to produce.
type classification struct {
	RefinedQuery  string   `json:"refinedQuery"`
	QueryType     string   `json:"queryType"`
	TargetSources []string `json:"targetSources"`
	SearchTerms   []string `json:"searchTerms"`
	Confidence    *float64 `json:"confidence"`
}

// Processor classifies raw queries. A nil Generator always uses the heuristic.
type Processor struct {
	Gen ai.Generator
}

// Classify builds the classification prompt, invokes the completion
// capability once, and assembles a Query from the JSON reply. Missing or
// malformed fields are defaulted; any generator or parse failure falls back
// to the keyword heuristic. Classify never fails.
func (p *Processor) Classify(ctx context.Context, raw string) types.Query {
	if p.Gen == nil {
		return Heuristic(raw)
	}

	prompt, err := renderClassifyPrompt(raw)
	if err != nil {
		return Heuristic(raw)
	}

	reply, err := p.Gen.Generate(ctx, prompt)
	if err != nil {
		return Heuristic(raw)
	}

	c, ok := parseClassification(reply)
	if !ok {
		return Heuristic(raw)
	}

	return buildQuery(raw, c)
}

// parseClassification extracts the single JSON object from the reply text.
func parseClassification(reply string) (classification, bool) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return classification{}, false
	}

	var c classification
	if err := json.Unmarshal([]byte(reply[start:end+1]), &c); err != nil {
		return classification{}, false
	}
	return c, true
}

// buildQuery applies field defaults to a parsed classification.
func buildQuery(raw string, c classification) types.Query {
	q := types.Query{
		OriginalText: raw,
		RefinedText:  strings.TrimSpace(c.RefinedQuery),
		Type:         types.QueryType(c.QueryType),
		Confidence:   0.7,
	}

	if q.RefinedText == "" {
		q.RefinedText = raw
	}
	if !types.ValidQueryTypes[q.Type] {
		q.Type = types.QueryGeneral
	}

	for _, s := range c.TargetSources {
		kind := types.SourceKind(strings.TrimSpace(strings.ToLower(s)))
		if types.ValidSourceKinds[kind] {
			q.TargetSources = append(q.TargetSources, kind)
		}
	}
	if len(q.TargetSources) == 0 {
		q.TargetSources = []types.SourceKind{types.SourceEncyclopedia, types.SourceNews}
	}

	for _, t := range c.SearchTerms {
		if t = strings.TrimSpace(t); t != "" {
			q.SearchTerms = append(q.SearchTerms, t)
		}
	}
	if len(q.SearchTerms) == 0 {
		q.SearchTerms = Tokenize(raw)
	}

	if c.Confidence != nil && *c.Confidence >= 0 && *c.Confidence <= 1 {
		q.Confidence = *c.Confidence
	}

	return q
}

// renderClassifyPrompt executes the classification prompt template.
func renderClassifyPrompt(raw string) (string, error) {
	var buf bytes.Buffer
	if err := classifyPromptTmpl.Execute(&buf, struct{ Query string }{Query: raw}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
