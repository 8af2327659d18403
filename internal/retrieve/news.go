// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// newsAPIBase is the news search endpoint. Declared as a var so tests can
// substitute an httptest server.
var newsAPIBase = "https://newsapi.org/v2/everything"

// NewsAdapter queries a dedicated news API, falling back to the general
// web-search adapter scoped to news when the API has no results or its
// quota is exhausted. HTTP 429 denotes quota exhaustion and is treated as
// "no results", never a hard error.
type NewsAdapter struct {
	Client     *http.Client
	apiKey     string
	cfg        types.RetrievalConfig
	maxResults int
	fallback   *WebSearchAdapter
}

// Kind returns the adapter identifier.
func (a *NewsAdapter) Kind() types.SourceKind { return types.SourceNews }

// newsResponse is the subset of the news API reply we read.
type newsResponse struct {
	Articles []newsArticle `json:"articles"`
}

type newsArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
	Author      string `json:"author"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
	URLToImage string `json:"urlToImage"`
}

// Search tries the news API first and degrades to the web-search fallback
// on quota exhaustion, empty results, or a missing credential.
func (a *NewsAdapter) Search(ctx context.Context, terms []string, refined string) ([]types.Candidate, error) {
	results, err := a.searchNewsAPI(ctx, terms, refined)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		return results, nil
	}
	if a.fallback == nil {
		return nil, nil
	}
	return a.fallback.Search(ctx, terms, refined)
}

// searchNewsAPI queries the dedicated endpoint. A 429 reply or a missing
// key returns an empty list with no error so the caller falls back.
func (a *NewsAdapter) searchNewsAPI(ctx context.Context, terms []string, refined string) ([]types.Candidate, error) {
	if a.apiKey == "" {
		return nil, nil
	}

	q := strings.Join(terms, " ")
	if q == "" {
		q = refined
	}
	if q == "" {
		return nil, fmt.Errorf("empty news query")
	}

	params := url.Values{
		"q":        {q},
		"pageSize": {fmt.Sprintf("%d", a.maxResults)},
		"sortBy":   {"publishedAt"},
		"apiKey":   {a.apiKey},
	}
	reqURL := newsAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: a.cfg.Timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news API request: %w", err)
	}
	defer resp.Body.Close()

	// Quota exhausted: not an error, the fallback takes over.
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news API returned HTTP %d", resp.StatusCode)
	}

	var nr newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, fmt.Errorf("parsing news response: %w", err)
	}

	var results []types.Candidate
	for i, art := range nr.Articles {
		if art.URL == "" {
			continue
		}
		c := types.Candidate{
			Title:          art.Title,
			URL:            art.URL,
			Snippet:        art.Description,
			Source:         types.SourceNews,
			Category:       types.CategoryNews,
			RelevanceScore: RankScore(i),
			Metadata:       map[string]string{},
		}
		if art.Author != "" {
			c.Metadata["author"] = art.Author
		}
		if art.Source.Name != "" {
			c.Metadata["outlet"] = art.Source.Name
		}
		if art.URLToImage != "" {
			c.Metadata["image"] = art.URLToImage
		}
		if t, parseErr := time.Parse(time.RFC3339, art.PublishedAt); parseErr == nil {
			c.PublishedAt = t
		}
		results = append(results, c)
	}
	return results, nil
}
