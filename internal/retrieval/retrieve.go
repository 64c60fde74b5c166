package retrieval

import (
	"sort"
	"strings"
	"unicode"

	"github.com/blackwell-systems/vitalwatch/internal/kb"
)

// DefaultMaxResults caps Retrieve when the caller passes no explicit limit.
const DefaultMaxResults = 10

// ScoredFact pairs a fact with its relevance score for one query. Scored
// facts are ephemeral: recomputed per query, never persisted.
type ScoredFact struct {
	Fact  kb.Fact `json:"fact"`
	Score float64 `json:"score"`
}

// Retrieve returns the maxResults most relevant facts for the query,
// ordered by descending score. Ties keep original fact order. An empty
// result is not an error: it means the caller has no grounding and must
// decline to answer rather than fabricate.
func Retrieve(query string, facts []kb.Fact, maxResults int) []kb.Fact {
	scored := RetrieveScored(query, facts, maxResults)
	out := make([]kb.Fact, len(scored))
	for i, sf := range scored {
		out[i] = sf.Fact
	}
	return out
}

// RetrieveScored is Retrieve with scores attached, for debugging and the
// facts inspection command.
func RetrieveScored(query string, facts []kb.Fact, maxResults int) []ScoredFact {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	terms := expandQuery(query)
	temporal := hasTemporalIntent(query)
	rawLower := strings.ToLower(query)

	var scored []ScoredFact
	for _, f := range facts {
		s := scoreFact(f, terms, rawLower, temporal)
		if s <= 0 {
			continue
		}
		scored = append(scored, ScoredFact{Fact: f, Score: s})
	}

	// Stable: equal scores preserve knowledge-base order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}

// scoreFact computes the additive relevance score of one fact. All boosts
// stack: a current-metrics fact about sleep debt during a temporal query
// collects every applicable bonus.
func scoreFact(f kb.Fact, terms []string, rawQuery string, temporal bool) float64 {
	content := strings.ToLower(f.Content)
	metric := strings.ToLower(f.Metric)
	contentWords := wordSet(content)
	metricWords := wordSet(metric)

	score := 0.0

	for _, term := range terms {
		if strings.Contains(content, term) {
			score += 2
		}
		if strings.Contains(metric, term) {
			score += 3
		}
		if contentWords[term] {
			score += 1
		}
		if metricWords[term] {
			score += 2
		}
	}

	// Sleep-debt questions should surface the dedicated tracking facts
	// far above incidental keyword matches.
	if strings.Contains(rawQuery, "sleep debt") {
		switch f.Source {
		case kb.SourceSleepDebtTracking:
			score += 50
		case kb.SourceSleepDebtAnalysis:
			score += 45
		}
	}

	if f.Source == kb.SourceCurrentMetrics {
		score += 5
	}

	if f.HasRecency && f.Recency < 3 {
		score += 3
	}

	if temporal && f.HasRecency {
		switch f.Recency {
		case 0:
			score += 20
		case 1:
			score += 10
		case 2:
			score += 5
		}
	}

	return score
}

// wordSet splits text into lower-case alphanumeric words for whole-word
// matching.
func wordSet(text string) map[string]bool {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
