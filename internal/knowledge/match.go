// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"sort"
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

const (
	exactMatchPoints       = 25.0
	containmentPoints      = 15.0
	overlapPoints          = 10.0
	defaultMatchThreshold  = 0.3
	defaultMaxMatchRecords = 10
)

// Match pairs a record with its normalized relevance to one query.
type Match struct {
	Record types.KnowledgeRecord
	Score  float64
}

// matchRecords scores every record against the query and returns those
// above the threshold, sorted descending, capped at maxRecords. Scoring is
// the best over the record's trigger phrases: exact match of the full
// query, substring containment in either direction, or proportional word
// overlap, normalized by the maximum attainable points.
func matchRecords(query string, records []types.KnowledgeRecord, threshold float64, maxRecords int) []Match {
	if threshold <= 0 {
		threshold = defaultMatchThreshold
	}
	if maxRecords <= 0 {
		maxRecords = defaultMaxMatchRecords
	}

	normalized := normalizeQuery(query)
	queryWords := fieldSet(normalized)

	var matches []Match
	for _, rec := range records {
		best := 0.0
		for _, trigger := range rec.TriggerWords {
			if s := scoreTrigger(normalized, queryWords, trigger); s > best {
				best = s
			}
		}
		score := best / exactMatchPoints
		if score > threshold {
			matches = append(matches, Match{Record: rec, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > maxRecords {
		matches = matches[:maxRecords]
	}
	return matches
}

func scoreTrigger(query string, queryWords map[string]bool, trigger string) float64 {
	trigger = normalizeQuery(trigger)
	if trigger == "" {
		return 0
	}
	if query == trigger {
		return exactMatchPoints
	}
	if strings.Contains(query, trigger) || strings.Contains(trigger, query) {
		return containmentPoints
	}

	triggerWords := strings.Fields(trigger)
	if len(triggerWords) == 0 {
		return 0
	}
	overlap := 0
	for _, w := range triggerWords {
		if queryWords[w] {
			overlap++
		}
	}
	return overlapPoints * float64(overlap) / float64(len(triggerWords))
}

func normalizeQuery(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimRight(s, "?!. ")
	return s
}

func fieldSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}
