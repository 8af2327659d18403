// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retrieve fans a refined query out to heterogeneous source
// adapters and returns a merged, deduplicated, ranked candidate list.
package retrieve

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// Adapter searches a single source kind. Each adapter (wikipedia, web
// search, news, feeds) implements this interface; the set is fixed at
// construction time.
type Adapter interface {
	Kind() types.SourceKind
	Search(ctx context.Context, terms []string, refined string) ([]types.Candidate, error)
}

// defaultMaxResults caps the merged candidate list.
const defaultMaxResults = 15

// RankScore assigns a descending relevance score by result rank:
// 0.9, 0.8, ... floored at 0.1.
func RankScore(rank int) float64 {
	score := 0.9 - 0.1*float64(rank)
	if score < 0.1 {
		return 0.1
	}
	return score
}

// Retriever dispatches retrieval to its adapter registry. The registry is
// built once from RetrievalConfig and read-only afterwards.
type Retriever struct {
	adapters map[types.SourceKind]Adapter
	cfg      types.RetrievalConfig
	log      *zap.Logger
}

// NewRetriever builds the adapter registry from the configuration. Adapters
// whose credentials are missing stay registered but return no results.
func NewRetriever(cfg types.RetrievalConfig, log *zap.Logger) *Retriever {
	if log == nil {
		log = zap.NewNop()
	}

	perSource := cfg.PerSourceResults
	if perSource <= 0 {
		perSource = 5
	}

	wiki := &WikipediaAdapter{cfg: cfg, maxResults: perSource}
	serp := func(kind types.SourceKind, site string, category types.ContentCategory) *WebSearchAdapter {
		return &WebSearchAdapter{
			kind:       kind,
			site:       site,
			category:   category,
			apiKey:     cfg.SerperAPIKey,
			cfg:        cfg,
			maxResults: perSource,
		}
	}

	adapters := map[types.SourceKind]Adapter{
		types.SourceEncyclopedia: wiki,
		types.SourceCommunityQA1: serp(types.SourceCommunityQA1, "stackoverflow.com", types.CategoryKnowledge),
		types.SourceCommunityQA2: serp(types.SourceCommunityQA2, "quora.com", types.CategoryWeb),
		types.SourceAcademic:     serp(types.SourceAcademic, "arxiv.org", types.CategoryKnowledge),
		types.SourceForums:       serp(types.SourceForums, "reddit.com", types.CategoryWeb),
		types.SourceWeb:          serp(types.SourceWeb, "", types.CategoryWeb),
		types.SourceNews: &NewsAdapter{
			apiKey:     cfg.NewsAPIKey,
			cfg:        cfg,
			maxResults: perSource,
			fallback:   serp(types.SourceNews, "reuters.com", types.CategoryNews),
		},
		types.SourceFeeds: &FeedAdapter{urls: cfg.FeedURLs, cfg: cfg, maxResults: perSource},
	}

	return &Retriever{adapters: adapters, cfg: cfg, log: log}
}

// Retrieve queries every requested source kind concurrently and returns the
// merged candidate list: duplicates dropped by exact URL (first occurrence
// wins), sorted descending by relevance with stable input order as the
// tie-break, truncated to the configured cap. One adapter failing is logged
// and skipped; it never aborts the others.
func (r *Retriever) Retrieve(ctx context.Context, terms []string, kinds []types.SourceKind, refined string) []types.Candidate {
	// Indexed slots keep the merge order deterministic regardless of
	// which adapter finishes first.
	slots := make([][]types.Candidate, len(kinds))
	var wg sync.WaitGroup

	for i, kind := range kinds {
		adapter, ok := r.adapters[kind]
		if !ok {
			r.log.Warn("no adapter registered", zap.String("kind", string(kind)))
			continue
		}
		wg.Add(1)
		go func(i int, adapter Adapter) {
			defer wg.Done()
			results, err := adapter.Search(ctx, terms, refined)
			if err != nil {
				r.log.Warn("source retrieval failed",
					zap.String("kind", string(adapter.Kind())),
					zap.Error(err))
				return
			}
			slots[i] = results
		}(i, adapter)
	}
	wg.Wait()

	var merged []types.Candidate
	for _, results := range slots {
		merged = append(merged, results...)
	}

	merged = dedupeByURL(merged)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].RelevanceScore > merged[j].RelevanceScore
	})

	max := r.cfg.MaxResults
	if max <= 0 {
		max = defaultMaxResults
	}
	if len(merged) > max {
		merged = merged[:max]
	}
	return merged
}

// dedupeByURL drops candidates whose exact URL was already seen. The first
// occurrence wins; later snippets for the same URL are discarded.
func dedupeByURL(candidates []types.Candidate) []types.Candidate {
	seen := make(map[string]bool, len(candidates))
	deduped := candidates[:0]
	for _, c := range candidates {
		if c.URL == "" || seen[c.URL] {
			continue
		}
		seen[c.URL] = true
		deduped = append(deduped, c)
	}
	return deduped
}

// siteQuery builds a site-filtered search string: "site:<domain> terms...".
func siteQuery(site string, terms []string, refined string) string {
	q := strings.Join(terms, " ")
	if q == "" {
		q = refined
	}
	if site == "" {
		return q
	}
	return "site:" + site + " " + q
}
