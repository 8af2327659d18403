// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/answer-engine/pkg/types"
)

const defaultUserAgent = "answer-engine/0.1"

// defaultBlockedDomains are rejected by the scraper without a network call.
// These hosts refuse plain scraping clients.
var defaultBlockedDomains = []string{
	"reddit.com",
	"facebook.com",
	"instagram.com",
	"twitter.com",
	"x.com",
	"linkedin.com",
}

// aiConfig builds the completion-backend settings from config and secrets.
// The provider flag overrides the config file; the API key comes from the
// secrets directory when not set explicitly.
func aiConfig(provider string) types.AIConfig {
	if provider == "" {
		provider = viper.GetString("ai.provider")
	}
	if provider == "" {
		provider = "anthropic"
	}

	secretName := "anthropic-api-key"
	if provider == "openai" {
		secretName = "openai-api-key"
	}

	return types.AIConfig{
		Provider:   provider,
		Model:      viper.GetString("ai.model"),
		APIKey:     secretDefault(secretName, viper.GetString("ai.api_key")),
		MaxRetries: viper.GetInt("ai.max_retries"),
	}
}

func retrievalConfig(timeout time.Duration, maxResults int) types.RetrievalConfig {
	if timeout <= 0 {
		timeout = viper.GetDuration("retrieval.timeout")
	}
	if maxResults <= 0 {
		maxResults = viper.GetInt("retrieval.max_results")
	}
	return types.RetrievalConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		MaxResults:       maxResults,
		PerSourceResults: viper.GetInt("retrieval.per_source_results"),
		SerperAPIKey:     secretDefault("serper-api-key", viper.GetString("retrieval.serper_api_key")),
		NewsAPIKey:       secretDefault("newsapi-api-key", viper.GetString("retrieval.news_api_key")),
		FeedURLs:         viper.GetStringSlice("retrieval.feed_urls"),
	}
}

func scrapeConfig(timeout time.Duration) types.ScrapeConfig {
	if timeout <= 0 {
		timeout = viper.GetDuration("scrape.timeout")
	}
	blocked := viper.GetStringSlice("scrape.blocked_domains")
	if len(blocked) == 0 {
		blocked = defaultBlockedDomains
	}
	return types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		MaxBodyBytes:   viper.GetInt64("scrape.max_body_bytes"),
		BlockedDomains: blocked,
	}
}

func synthesisConfig(provider string) types.SynthesisConfig {
	return types.SynthesisConfig{
		AIConfig:         aiConfig(provider),
		MaxEvidenceChars: viper.GetInt("synthesis.max_evidence_chars"),
	}
}

func knowledgeConfig(dbPath string) types.KnowledgeConfig {
	if dbPath == "" {
		dbPath = viper.GetString("knowledge.db_path")
	}
	if dbPath == "" {
		dbPath = "answer-engine.db"
	}
	return types.KnowledgeConfig{
		DBPath:         dbPath,
		MatchThreshold: viper.GetFloat64("knowledge.match_threshold"),
		MaxRecords:     viper.GetInt("knowledge.max_records"),
	}
}

func engineConfig(useKnowledge bool) types.EngineConfig {
	return types.EngineConfig{
		PipelineTimeout:   viper.GetDuration("engine.pipeline_timeout"),
		DirectTimeout:     viper.GetDuration("engine.direct_timeout"),
		CacheSize:         viper.GetInt("engine.cache_size"),
		UseKnowledgeStore: useKnowledge || viper.GetBool("engine.use_knowledge_store"),
	}
}
