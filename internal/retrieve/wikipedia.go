// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// wikipediaAPIBase is the MediaWiki search endpoint. Declared as a var so
// tests can substitute an httptest server.
var wikipediaAPIBase = "https://en.wikipedia.org/w/api.php"

// wikipediaPageBase prefixes article URLs built from result titles.
var wikipediaPageBase = "https://en.wikipedia.org/wiki/"

// markupTags strips the HTML-ish highlighting MediaWiki embeds in snippets.
var markupTags = regexp.MustCompile(`<[^>]+>`)

// WikipediaAdapter queries the public MediaWiki search API.
type WikipediaAdapter struct {
	Client     *http.Client
	cfg        types.RetrievalConfig
	maxResults int
}

// Kind returns the adapter identifier.
func (a *WikipediaAdapter) Kind() types.SourceKind { return types.SourceEncyclopedia }

// wikiResponse is the subset of the MediaWiki search reply we read.
type wikiResponse struct {
	Query struct {
		Search []wikiResult `json:"search"`
	} `json:"query"`
}

type wikiResult struct {
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
	Wordcount int    `json:"wordcount"`
	Timestamp string `json:"timestamp"`
}

// Search queries the search endpoint and maps results to candidates with
// rank-based scores.
func (a *WikipediaAdapter) Search(ctx context.Context, terms []string, refined string) ([]types.Candidate, error) {
	q := strings.Join(terms, " ")
	if q == "" {
		q = refined
	}
	if q == "" {
		return nil, fmt.Errorf("empty encyclopedia query")
	}

	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"format":   {"json"},
		"srlimit":  {fmt.Sprintf("%d", a.maxResults)},
		"srsearch": {q},
	}
	reqURL := wikipediaAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: a.cfg.Timeout}
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("MediaWiki API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("MediaWiki API returned HTTP %d", resp.StatusCode)
	}

	var wr wikiResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("parsing MediaWiki response: %w", err)
	}

	var results []types.Candidate
	for i, r := range wr.Query.Search {
		c := types.Candidate{
			Title:          r.Title,
			URL:            wikipediaPageBase + url.PathEscape(strings.ReplaceAll(r.Title, " ", "_")),
			Snippet:        stripMarkup(r.Snippet),
			Source:         types.SourceEncyclopedia,
			Category:       types.CategoryKnowledge,
			RelevanceScore: RankScore(i),
			Metadata: map[string]string{
				"wordcount": fmt.Sprintf("%d", r.Wordcount),
			},
		}
		if t, parseErr := time.Parse(time.RFC3339, r.Timestamp); parseErr == nil {
			c.PublishedAt = t
		}
		results = append(results, c)
	}
	return results, nil
}

// stripMarkup removes tags and entity escapes from a MediaWiki snippet.
func stripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(markupTags.ReplaceAllString(s, "")))
}
