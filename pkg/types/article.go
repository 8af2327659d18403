// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ArticleMetadata holds page metadata collected from meta tags, with
// per-field fallback chains applied by the extraction stage.
type ArticleMetadata struct {
	// Author is the article author, when declared.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// PublishedAt is the declared publication time.
	PublishedAt time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`

	// Description is the page description or social summary.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Keywords are the declared topic keywords.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Language is the ISO 639-1 code, declared or detected.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// ExtractedArticle is the structured form of one fetched page. It is owned
// transiently by the scraping stage and keyed by source URL in the mapping
// handed to the synthesizer.
type ExtractedArticle struct {
	// Title is the page title, "Untitled" when nothing usable was found.
	Title string `json:"title" yaml:"title"`

	// Text is the readable body text, whitespace-normalized.
	Text string `json:"text" yaml:"text"`

	// Metadata holds author, date, description, keywords, and language.
	Metadata ArticleMetadata `json:"metadata" yaml:"metadata"`

	// ReadabilityScore is a value between 0.0 and 1.0; 0 for content under
	// 100 characters or without detectable sentences.
	ReadabilityScore float64 `json:"readability_score" yaml:"readability_score"`
}
