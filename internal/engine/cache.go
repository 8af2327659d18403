// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"strings"
	"sync"
	"time"
)

// cacheEntry is one stored answer. Insertion time drives eviction only;
// entries do not expire.
type cacheEntry struct {
	answer     string
	confidence float64
	storedAt   time.Time
}

// responseCache is a fixed-capacity map keyed by normalized query text.
// When full, the oldest entry is evicted. Races between requests are
// tolerated: a lost write just means one recomputation.
type responseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	cap     int
}

func newResponseCache(capacity int) *responseCache {
	if capacity <= 0 {
		return nil
	}
	return &responseCache{
		entries: make(map[string]cacheEntry, capacity),
		cap:     capacity,
	}
}

func (c *responseCache) get(query string) (cacheEntry, bool) {
	if c == nil {
		return cacheEntry{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[normalizeKey(query)]
	return e, ok
}

func (c *responseCache) put(query, answer string, confidence float64) {
	if c == nil {
		return
	}
	key := normalizeKey(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.cap {
		var (
			oldestKey  string
			oldestTime time.Time
		)
		for k, e := range c.entries {
			if oldestKey == "" || e.storedAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.storedAt
			}
		}
		delete(c.entries, oldestKey)
	}

	c.entries[key] = cacheEntry{
		answer:     answer,
		confidence: confidence,
		storedAt:   time.Now(),
	}
}

// normalizeKey folds case and whitespace so trivially restated queries hit
// the same entry.
func normalizeKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
