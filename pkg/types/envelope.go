// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StageTimings records wall-clock milliseconds spent in each pipeline stage.
// Timings are observability only; they never drive scheduling. Total covers
// the whole request and is at least the sum of the measured sub-stages.
type StageTimings struct {
	DatabaseCheck   int64 `json:"database_check" yaml:"database_check"`
	QueryProcessing int64 `json:"query_processing" yaml:"query_processing"`
	SourceRetrieval int64 `json:"source_retrieval" yaml:"source_retrieval"`
	ContentScraping int64 `json:"content_scraping" yaml:"content_scraping"`
	Synthesis       int64 `json:"synthesis" yaml:"synthesis"`
	Total           int64 `json:"total" yaml:"total"`
}

// AnswerEnvelope is the terminal artifact of one request, returned to the
// caller and never mutated afterwards. A database-answered envelope carries
// no live sources: DatabaseUsed implies an empty Sources list.
type AnswerEnvelope struct {
	// Answer is the synthesized answer text.
	Answer string `json:"answer" yaml:"answer"`

	// Sources lists the candidates that grounded the answer, ranking order.
	Sources []Candidate `json:"sources" yaml:"sources"`

	// Confidence is the pipeline's certainty, between 0.0 and 1.0.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Timings records per-stage wall-clock durations.
	Timings StageTimings `json:"timings" yaml:"timings"`

	// DatabaseUsed reports that the knowledge store answered the query and
	// the live-retrieval stages were skipped.
	DatabaseUsed bool `json:"database_used" yaml:"database_used"`

	// FallbackUsed reports that the live pipeline failed or timed out and
	// the answer came from the direct completion path.
	FallbackUsed bool `json:"fallback_used" yaml:"fallback_used"`

	// CacheHit reports that the answer was served from the response cache.
	CacheHit bool `json:"cache_hit" yaml:"cache_hit"`
}
