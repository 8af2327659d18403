// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ContentCategory groups candidates by the nature of their origin.
type ContentCategory string

const (
	CategoryKnowledge ContentCategory = "knowledge"
	CategoryNews      ContentCategory = "news"
	CategoryWeb       ContentCategory = "web"
)

// Candidate is a single retrieved reference. Candidates are scored at
// creation time by their adapter and are never mutated downstream, only
// filtered, sorted, and truncated. URL is the unique key within a
// retrieval batch.
type Candidate struct {
	// Title is the result title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// URL is the canonical link. Unique within a retrieval batch after merge.
	URL string `json:"url" yaml:"url"`

	// Snippet is a short plain-text excerpt, markup already stripped.
	Snippet string `json:"snippet" yaml:"snippet"`

	// Source identifies which adapter produced this candidate.
	Source SourceKind `json:"source" yaml:"source"`

	// Category groups the candidate: knowledge, news, or web.
	Category ContentCategory `json:"category" yaml:"category"`

	// RelevanceScore is a value between 0.0 and 1.0 assigned at creation.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// PublishedAt is the publication time when the source reports one.
	PublishedAt time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`

	// Metadata carries source-specific extras (author, outlet name, ...).
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
