// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the answer-engine pipeline.
package types

// QueryType classifies the intent of a user query. The type selects the
// synthesis instruction block and influences which sources are searched.
type QueryType string

const (
	QueryFactual   QueryType = "factual"
	QueryOpinion   QueryType = "opinion"
	QueryNews      QueryType = "news"
	QueryTechnical QueryType = "technical"
	QueryGeneral   QueryType = "general"
)

// ValidQueryTypes is the closed set of accepted QueryType values.
var ValidQueryTypes = map[QueryType]bool{
	QueryFactual:   true,
	QueryOpinion:   true,
	QueryNews:      true,
	QueryTechnical: true,
	QueryGeneral:   true,
}

// SourceKind identifies a retrieval adapter. The adapter set is static
// configuration; kinds are never created per request.
type SourceKind string

const (
	SourceEncyclopedia SourceKind = "encyclopedia"
	SourceCommunityQA1 SourceKind = "community-qa-1"
	SourceCommunityQA2 SourceKind = "community-qa-2"
	SourceNews         SourceKind = "news"
	SourceAcademic     SourceKind = "academic"
	SourceForums       SourceKind = "forums"
	SourceFeeds        SourceKind = "feeds"
	SourceWeb          SourceKind = "web"
)

// ValidSourceKinds is the closed set of accepted SourceKind values.
var ValidSourceKinds = map[SourceKind]bool{
	SourceEncyclopedia: true,
	SourceCommunityQA1: true,
	SourceCommunityQA2: true,
	SourceNews:         true,
	SourceAcademic:     true,
	SourceForums:       true,
	SourceFeeds:        true,
	SourceWeb:          true,
}

// Query is the classified form of one user question. It is created once per
// request by the classification stage and is immutable afterwards; the engine
// owns it for the duration of the request.
type Query struct {
	// OriginalText is the raw query as entered by the user.
	OriginalText string `json:"original_text" yaml:"original_text"`

	// RefinedText is the cleaned-up form used for retrieval and synthesis.
	RefinedText string `json:"refined_text" yaml:"refined_text"`

	// Type is the classified intent of the query.
	Type QueryType `json:"type" yaml:"type"`

	// TargetSources lists the source kinds to query, in preference order.
	TargetSources []SourceKind `json:"target_sources" yaml:"target_sources"`

	// SearchTerms are the keywords handed to the retrieval adapters.
	SearchTerms []string `json:"search_terms" yaml:"search_terms"`

	// Confidence is the classifier's certainty, between 0.0 and 1.0.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}
