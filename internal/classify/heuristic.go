// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// heuristicConfidence is the fixed confidence assigned by the keyword
// fallback classifier.
const heuristicConfidence = 0.6

// typeRule maps trigger phrases to a query type and its source list.
// Rules are checked in order; the first phrase hit wins.
type typeRule struct {
	phrases []string
	qtype   types.QueryType
	sources []types.SourceKind
}

// heuristicRules is the fixed rule table for the fallback classifier.
// Order matters: recency cues outrank question-word cues so that
// "what is the latest ..." classifies as news.
var heuristicRules = []typeRule{
	{
		phrases: []string{"latest", "news", "today", "breaking", "this week", "recent", "current events"},
		qtype:   types.QueryNews,
		sources: []types.SourceKind{types.SourceNews, types.SourceFeeds, types.SourceWeb},
	},
	{
		phrases: []string{"code", "error", "how to", "install", "debug", "compile", "api ", "function", "stack trace"},
		qtype:   types.QueryTechnical,
		sources: []types.SourceKind{types.SourceCommunityQA1, types.SourceAcademic, types.SourceWeb},
	},
	{
		phrases: []string{"opinion", "do you think", "best ", "worst ", "should i", "better than", "recommend", "overrated"},
		qtype:   types.QueryOpinion,
		sources: []types.SourceKind{types.SourceCommunityQA2, types.SourceForums, types.SourceCommunityQA1},
	},
	{
		phrases: []string{"what is", "what are", "who is", "who was", "when did", "when was", "where is", "define", "meaning of", "history of"},
		qtype:   types.QueryFactual,
		sources: []types.SourceKind{types.SourceEncyclopedia, types.SourceWeb},
	},
}

// stopwords are dropped from heuristic search terms.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "of": true, "in": true, "on": true, "to": true,
	"for": true, "and": true, "or": true, "what": true, "who": true,
	"when": true, "where": true, "why": true, "how": true, "do": true,
	"does": true, "did": true, "i": true, "you": true, "it": true,
	"this": true, "that": true, "with": true, "about": true,
}

// Heuristic deterministically classifies a query by keyword patterns.
// It never fails and is idempotent: the same input always yields the same
// Query.
func Heuristic(raw string) types.Query {
	lower := strings.ToLower(raw)

	q := types.Query{
		OriginalText:  raw,
		RefinedText:   strings.TrimSpace(raw),
		Type:          types.QueryGeneral,
		TargetSources: []types.SourceKind{types.SourceEncyclopedia, types.SourceNews},
		SearchTerms:   Tokenize(raw),
		Confidence:    heuristicConfidence,
	}

	for _, rule := range heuristicRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(lower, phrase) {
				q.Type = rule.qtype
				q.TargetSources = append([]types.SourceKind(nil), rule.sources...)
				return q
			}
		}
	}
	return q
}

// Tokenize lowercases the query, strips punctuation, drops stopwords, and
// returns at most six terms.
func Tokenize(raw string) []string {
	fields := strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-'
	})

	var terms []string
	for _, f := range fields {
		if len(f) < 2 || stopwords[f] {
			continue
		}
		terms = append(terms, f)
		if len(terms) == 6 {
			break
		}
	}
	if len(terms) == 0 {
		terms = fields
	}
	return terms
}
