// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// serperAPIBase is the general web-search endpoint. Declared as a var so
// tests can substitute an httptest server.
var serperAPIBase = "https://google.serper.dev/search"

// WebSearchAdapter issues site-filtered queries through a general search
// API. It backs the community-QA, academic, forums, and generic web kinds,
// and serves as the news adapter's fallback. A missing API key makes the
// adapter a no-op, not an error.
type WebSearchAdapter struct {
	Client     *http.Client
	kind       types.SourceKind
	site       string
	category   types.ContentCategory
	apiKey     string
	cfg        types.RetrievalConfig
	maxResults int
}

// Kind returns the adapter identifier.
func (a *WebSearchAdapter) Kind() types.SourceKind { return a.kind }

// serperRequest is the search request body.
type serperRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

// serperResponse is the subset of the search reply we read.
type serperResponse struct {
	Organic []serperResult `json:"organic"`
}

type serperResult struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}

// Search posts a site-filtered query and maps organic results to candidates
// with rank-based scores. Without a credential it returns nothing.
func (a *WebSearchAdapter) Search(ctx context.Context, terms []string, refined string) ([]types.Candidate, error) {
	if a.apiKey == "" {
		return nil, nil
	}

	q := siteQuery(a.site, terms, refined)
	if q == "" {
		return nil, fmt.Errorf("empty web search query")
	}

	bodyBytes, err := json.Marshal(serperRequest{Query: q, Num: a.maxResults})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperAPIBase, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", a.apiKey)
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: a.cfg.Timeout}
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("web search API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web search API returned HTTP %d", resp.StatusCode)
	}

	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing web search response: %w", err)
	}

	var results []types.Candidate
	for i, r := range sr.Organic {
		if r.Link == "" {
			continue
		}
		results = append(results, types.Candidate{
			Title:          r.Title,
			URL:            r.Link,
			Snippet:        r.Snippet,
			Source:         a.kind,
			Category:       a.category,
			RelevanceScore: RankScore(i),
		})
	}
	return results, nil
}
