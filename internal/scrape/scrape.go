// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape downloads pages for the candidates chosen by retrieval and
// hands their HTML to the extractor. Failures are classified so callers can
// distinguish a blocked domain from a flaky origin.
package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/internal/extract"
	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// relayAPIBase is a variable so tests can point the proxy fallback at a
// local server.
var relayAPIBase = "https://api.allorigins.win/get?url="

const (
	defaultTimeout      = 15 * time.Second
	defaultMaxBodyBytes = 1 << 20
	defaultUserAgent    = "answer-engine/0.1"
)

// Scraper fetches pages and extracts article content from them.
type Scraper struct {
	cfg    types.ScrapeConfig
	client *http.Client
	log    *zap.Logger
}

// Result pairs the outcome of one page fetch. Exactly one of Article and
// Err is set.
type Result struct {
	Article *types.ExtractedArticle
	Err     error
}

// NewScraper builds a scraper with defaults applied for any zero-valued
// config fields.
func NewScraper(cfg types.ScrapeConfig, log *zap.Logger) *Scraper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scraper{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

// FetchAndExtract downloads one page and extracts its article content.
// Blocked domains and malformed URLs fail before any network call. When
// the direct fetch fails at the connection or status level, one retry goes
// through the JSON relay proxy; timeouts are terminal because the relay
// would hit the same slow origin.
func (s *Scraper) FetchAndExtract(ctx context.Context, pageURL string) (*types.ExtractedArticle, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Kind: KindInvalidURL, Err: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &FetchError{URL: pageURL, Kind: KindInvalidURL, Err: fmt.Errorf("unsupported scheme %q", parsed.Scheme)}
	}
	if s.isBlocked(parsed.Hostname()) {
		return nil, &FetchError{URL: pageURL, Kind: KindBlocked, Err: fmt.Errorf("domain %s is blocked", parsed.Hostname())}
	}

	html, err := s.fetchDirect(ctx, pageURL)
	if err != nil {
		kind := KindOf(err)
		if kind != KindTransport && kind != KindStatus {
			return nil, err
		}
		s.log.Debug("direct fetch failed, retrying through relay",
			zap.String("url", pageURL), zap.String("kind", string(kind)))
		directErr := err
		html, err = s.fetchViaRelay(ctx, pageURL)
		if err != nil {
			// Both attempts failed; the caller gets both reasons.
			return nil, &FetchError{URL: pageURL, Kind: KindProxy,
				Err: fmt.Errorf("direct fetch: %w; relay retry: %w", directErr, err)}
		}
	}

	return extract.FromHTML(html, pageURL)
}

// FetchMany fetches all URLs concurrently and reports every outcome. One
// failed page never aborts the rest.
func (s *Scraper) FetchMany(ctx context.Context, urls []string) map[string]Result {
	results := make(map[string]Result, len(urls))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, u := range urls {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			article, err := s.FetchAndExtract(ctx, u)
			mu.Lock()
			results[u] = Result{Article: article, Err: err}
			mu.Unlock()
		}(u)
	}
	wg.Wait()
	return results
}

func (s *Scraper) isBlocked(host string) bool {
	host = strings.ToLower(host)
	for _, blocked := range s.cfg.BlockedDomains {
		blocked = strings.ToLower(blocked)
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return true
		}
	}
	return false
}

func (s *Scraper) fetchDirect(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &FetchError{URL: pageURL, Kind: KindInvalidURL, Err: err}
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 1)
	if err != nil {
		return "", &FetchError{URL: pageURL, Kind: classifyNetErr(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &FetchError{URL: pageURL, Kind: KindStatus, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return "", &FetchError{URL: pageURL, Kind: classifyNetErr(err), Err: err}
	}
	return string(body), nil
}

// relayEnvelope is the JSON shape returned by the relay service.
type relayEnvelope struct {
	Contents string `json:"contents"`
}

// fetchViaRelay returns bare errors; FetchAndExtract wraps them together
// with the direct failure.
func (s *Scraper) fetchViaRelay(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	relayURL := relayAPIBase + url.QueryEscape(pageURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, relayURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("relay status %d", resp.StatusCode)
	}

	var envelope relayEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, s.cfg.MaxBodyBytes+4096)).Decode(&envelope); err != nil {
		return "", fmt.Errorf("decoding relay response: %w", err)
	}
	if envelope.Contents == "" {
		return "", errors.New("relay returned empty contents")
	}
	if int64(len(envelope.Contents)) > s.cfg.MaxBodyBytes {
		envelope.Contents = truncateOnRuneBoundary(envelope.Contents, int(s.cfg.MaxBodyBytes))
	}
	return envelope.Contents, nil
}

// truncateOnRuneBoundary cuts s to at most limit bytes without splitting a
// multi-byte rune.
func truncateOnRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// classifyNetErr separates deadline expiry from connection failures.
func classifyNetErr(err error) FailKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindTransport
}
