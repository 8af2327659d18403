// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine sequences the answer pipeline: optional knowledge-store
// check, classification, retrieval, scraping, and synthesis, with a direct
// completion fallback when the live path fails or times out.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/internal/ai"
	"github.com/pdiddy/answer-engine/internal/scrape"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// apologeticAnswer is returned when both the live pipeline and the direct
// fallback fail. The caller always gets an answer, never an error.
const apologeticAnswer = "I'm sorry, I wasn't able to find an answer to your question right now. Please try again in a moment."

const (
	defaultPipelineTimeout = 45 * time.Second
	defaultDirectTimeout   = 20 * time.Second
	defaultCacheSize       = 100
)

// Classifier produces a classified Query from raw text. It never fails.
type Classifier interface {
	Classify(ctx context.Context, raw string) types.Query
}

// Retriever fans the query out to source adapters and returns merged,
// ranked candidates.
type Retriever interface {
	Retrieve(ctx context.Context, terms []string, kinds []types.SourceKind, refined string) []types.Candidate
}

// Scraper fetches candidate pages concurrently.
type Scraper interface {
	FetchMany(ctx context.Context, urls []string) map[string]scrape.Result
}

// Summarizer synthesizes the final answer from candidates and extracted
// articles.
type Summarizer interface {
	Synthesize(ctx context.Context, query types.Query, candidates []types.Candidate, extracted map[string]*types.ExtractedArticle) (string, float64, error)
}

// StoreAnswerer is the optional knowledge-store pre-stage.
type StoreAnswerer interface {
	TryAnswer(ctx context.Context, query string) (bool, string, float64)
}

// Stages bundles the pipeline dependencies injected into an Engine.
// Knowledge may be nil; every other stage is required.
type Stages struct {
	Classifier Classifier
	Retriever  Retriever
	Scraper    Scraper
	Summarizer Summarizer
	Knowledge  StoreAnswerer

	// Direct serves the fallback path with a plain completion call.
	Direct ai.Generator
}

// Engine orchestrates one request at a time per call; the response cache is
// the only state shared across requests.
type Engine struct {
	stages Stages
	cfg    types.EngineConfig
	cache  *responseCache
	log    *zap.Logger
}

// New builds an engine with defaults applied for zero-valued timeouts and
// cache size. A negative CacheSize disables the response cache.
func New(stages Stages, cfg types.EngineConfig, log *zap.Logger) *Engine {
	if cfg.PipelineTimeout <= 0 {
		cfg.PipelineTimeout = defaultPipelineTimeout
	}
	if cfg.DirectTimeout <= 0 {
		cfg.DirectTimeout = defaultDirectTimeout
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		stages: stages,
		cfg:    cfg,
		cache:  newResponseCache(cfg.CacheSize),
		log:    log,
	}
}

// liveResult carries the outcome of one live-pipeline run.
type liveResult struct {
	answer     string
	confidence float64
	sources    []types.Candidate
	timings    types.StageTimings
	err        error
}

// Answer runs the full pipeline for one query. It never returns an error:
// failures degrade to the direct completion path and, past that, to a fixed
// apologetic message.
func (e *Engine) Answer(ctx context.Context, raw string) *types.AnswerEnvelope {
	start := time.Now()

	if entry, ok := e.cache.get(raw); ok {
		return &types.AnswerEnvelope{
			Answer:     entry.answer,
			Confidence: entry.confidence,
			CacheHit:   true,
			Timings:    types.StageTimings{Total: millisSince(start)},
		}
	}

	var timings types.StageTimings

	if e.cfg.UseKnowledgeStore && e.stages.Knowledge != nil {
		dbStart := time.Now()
		found, answer, confidence := e.stages.Knowledge.TryAnswer(ctx, raw)
		timings.DatabaseCheck = millisSince(dbStart)
		if found {
			e.cache.put(raw, answer, confidence)
			timings.Total = millisSince(start)
			return &types.AnswerEnvelope{
				Answer:       answer,
				Confidence:   confidence,
				DatabaseUsed: true,
				Timings:      timings,
			}
		}
	}

	liveCtx, cancel := context.WithTimeout(ctx, e.cfg.PipelineTimeout)
	defer cancel()

	results := make(chan liveResult, 1)
	go func() { results <- e.runLive(liveCtx, raw) }()

	select {
	case res := <-results:
		if res.err == nil {
			res.timings.DatabaseCheck = timings.DatabaseCheck
			res.timings.Total = millisSince(start)
			e.cache.put(raw, res.answer, res.confidence)
			return &types.AnswerEnvelope{
				Answer:     res.answer,
				Confidence: res.confidence,
				Sources:    res.sources,
				Timings:    res.timings,
			}
		}
		e.log.Warn("live pipeline failed, falling back to direct completion", zap.Error(res.err))
	case <-liveCtx.Done():
		e.log.Warn("live pipeline timed out, falling back to direct completion",
			zap.Duration("timeout", e.cfg.PipelineTimeout))
	}

	answer, confidence := e.direct(ctx, raw)
	timings.Total = millisSince(start)
	if answer != apologeticAnswer {
		e.cache.put(raw, answer, confidence)
	}
	return &types.AnswerEnvelope{
		Answer:       answer,
		Confidence:   confidence,
		FallbackUsed: true,
		Timings:      timings,
	}
}

// runLive executes classification, retrieval, scraping, and synthesis,
// recording a wall-clock delta around each stage.
func (e *Engine) runLive(ctx context.Context, raw string) liveResult {
	var res liveResult

	stageStart := time.Now()
	query := e.stages.Classifier.Classify(ctx, raw)
	res.timings.QueryProcessing = millisSince(stageStart)

	stageStart = time.Now()
	candidates := e.stages.Retriever.Retrieve(ctx, query.SearchTerms, query.TargetSources, query.RefinedText)
	res.timings.SourceRetrieval = millisSince(stageStart)

	stageStart = time.Now()
	extracted := make(map[string]*types.ExtractedArticle, len(candidates))
	if len(candidates) > 0 {
		urls := make([]string, len(candidates))
		for i, c := range candidates {
			urls[i] = c.URL
		}
		for u, r := range e.stages.Scraper.FetchMany(ctx, urls) {
			if r.Err != nil {
				e.log.Debug("scrape failed", zap.String("url", u), zap.Error(r.Err))
				continue
			}
			extracted[u] = r.Article
		}
	}
	res.timings.ContentScraping = millisSince(stageStart)

	stageStart = time.Now()
	answer, confidence, err := e.stages.Summarizer.Synthesize(ctx, query, candidates, extracted)
	res.timings.Synthesis = millisSince(stageStart)
	if err != nil {
		res.err = err
		return res
	}

	res.answer = answer
	res.confidence = confidence
	res.sources = candidates
	return res
}

// direct asks the completion backend without any retrieval context. A
// failure here is terminal and yields the apologetic answer.
func (e *Engine) direct(ctx context.Context, raw string) (string, float64) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.DirectTimeout)
	defer cancel()

	answer, err := e.stages.Direct.Generate(ctx, raw)
	if err != nil || answer == "" {
		if err != nil {
			e.log.Error("direct completion failed", zap.Error(err))
		}
		return apologeticAnswer, 0
	}
	return answer, 0.3
}

func millisSince(t time.Time) int64 {
	return time.Since(t).Milliseconds()
}
