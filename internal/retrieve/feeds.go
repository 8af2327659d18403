// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// FeedAdapter polls configured RSS/Atom feeds and keeps entries whose title
// or summary overlaps the search terms. With no feeds configured it is a
// no-op.
type FeedAdapter struct {
	urls       []string
	cfg        types.RetrievalConfig
	maxResults int

	// parser is lazily shared across searches; gofeed parsers are cheap
	// but stateless.
	parser *gofeed.Parser
}

// Kind returns the adapter identifier.
func (a *FeedAdapter) Kind() types.SourceKind { return types.SourceFeeds }

// Search parses every configured feed and ranks matching entries in feed
// order. Individual feed failures are skipped; the last error is returned
// only when no feed produced anything.
func (a *FeedAdapter) Search(ctx context.Context, terms []string, refined string) ([]types.Candidate, error) {
	if len(a.urls) == 0 {
		return nil, nil
	}
	if a.parser == nil {
		a.parser = gofeed.NewParser()
		a.parser.UserAgent = a.cfg.UserAgent
	}

	var results []types.Candidate
	var lastErr error
	for _, feedURL := range a.urls {
		feed, err := a.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			lastErr = err
			continue
		}
		for _, item := range feed.Items {
			if item.Link == "" || !matchesTerms(item, terms) {
				continue
			}
			c := types.Candidate{
				Title:          item.Title,
				URL:            item.Link,
				Snippet:        strings.TrimSpace(item.Description),
				Source:         types.SourceFeeds,
				Category:       types.CategoryNews,
				RelevanceScore: RankScore(len(results)),
				Metadata:       map[string]string{"feed": feed.Title},
			}
			if item.PublishedParsed != nil {
				c.PublishedAt = *item.PublishedParsed
			}
			results = append(results, c)
			if len(results) >= a.maxResults {
				return results, nil
			}
		}
	}
	if len(results) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return results, nil
}

// matchesTerms reports whether any search term appears in the entry's title
// or summary. With no terms every entry matches.
func matchesTerms(item *gofeed.Item, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	haystack := strings.ToLower(item.Title + " " + item.Description)
	for _, term := range terms {
		if strings.Contains(haystack, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
