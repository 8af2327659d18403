package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "answer-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call the completion capability.
type AIConfig struct {
	// Provider selects the completion backend: "anthropic" or "openai".
	Provider string `json:"provider" yaml:"provider"`

	// Model is the model identifier passed to the provider.
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// RetrievalConfig holds settings for the source-retrieval stage.
type RetrievalConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults caps the merged candidate list (default 15).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// PerSourceResults is the number of results requested from each adapter
	// before merging (default 5).
	PerSourceResults int `json:"per_source_results" yaml:"per_source_results"`

	// SerperAPIKey authenticates the generic web-search API. When empty the
	// web-search-backed adapters are no-ops.
	SerperAPIKey string `json:"serper_api_key,omitempty" yaml:"serper_api_key,omitempty"`

	// NewsAPIKey authenticates the news API. When empty the news adapter
	// relies entirely on the web-search fallback.
	NewsAPIKey string `json:"news_api_key,omitempty" yaml:"news_api_key,omitempty"`

	// FeedURLs are RSS/Atom feeds polled by the feeds adapter.
	FeedURLs []string `json:"feed_urls,omitempty" yaml:"feed_urls,omitempty"`
}

// ScrapeConfig holds settings for the web-scraping stage.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxBodyBytes caps the downloaded page size; overflow is truncated
	// (default 1 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`

	// BlockedDomains are rejected before any network call is made.
	BlockedDomains []string `json:"blocked_domains" yaml:"blocked_domains"`
}

// SynthesisConfig holds settings for the answer-synthesis stage.
type SynthesisConfig struct {
	AIConfig `yaml:",inline"`

	// MaxEvidenceChars truncates each source's extracted body in the
	// evidence context (default 1500).
	MaxEvidenceChars int `json:"max_evidence_chars" yaml:"max_evidence_chars"`
}

// KnowledgeConfig holds settings for the private knowledge store pre-stage.
type KnowledgeConfig struct {
	// DBPath is the SQLite database file path.
	DBPath string `json:"db_path" yaml:"db_path"`

	// MatchThreshold is the minimum normalized record score (default 0.3).
	MatchThreshold float64 `json:"match_threshold" yaml:"match_threshold"`

	// MaxRecords caps the matched records handed to the completion
	// capability (default 10).
	MaxRecords int `json:"max_records" yaml:"max_records"`
}

// EngineConfig holds settings for the pipeline orchestrator.
type EngineConfig struct {
	// PipelineTimeout bounds the whole live-retrieval path (default 45s).
	// Exceeding it cancels the live path and falls back to the direct
	// completion call.
	PipelineTimeout time.Duration `json:"pipeline_timeout" yaml:"pipeline_timeout"`

	// DirectTimeout bounds the direct completion fallback (default 20s).
	DirectTimeout time.Duration `json:"direct_timeout" yaml:"direct_timeout"`

	// CacheSize is the response cache capacity (default 100). A negative
	// value disables the cache.
	CacheSize int `json:"cache_size" yaml:"cache_size"`

	// UseKnowledgeStore enables the database pre-stage.
	UseKnowledgeStore bool `json:"use_knowledge_store" yaml:"use_knowledge_store"`
}

// PipelineConfig groups all stage configurations for one engine instance.
// It is constructed once per process and read-only thereafter.
type PipelineConfig struct {
	AI        AIConfig        `json:"ai" yaml:"ai"`
	Retrieval RetrievalConfig `json:"retrieval" yaml:"retrieval"`
	Scrape    ScrapeConfig    `json:"scrape" yaml:"scrape"`
	Synthesis SynthesisConfig `json:"synthesis" yaml:"synthesis"`
	Knowledge KnowledgeConfig `json:"knowledge" yaml:"knowledge"`
	Engine    EngineConfig    `json:"engine" yaml:"engine"`
}
