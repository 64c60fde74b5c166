// Package retrieval scores knowledge-base facts against free-text queries
// and renders the grounding context handed to the generation collaborator.
// Scoring is deterministic and lexical: a fixed synonym table, temporal
// heuristics, and source-priority boosts. There is no semantic model.
package retrieval

import "strings"

// synonymClusters is the fixed domain vocabulary. When any query token
// matches a cluster's trigger set, the cluster's expansion terms are
// unioned into the query. This is a lookup table, not a learned model.
var synonymClusters = []struct {
	triggers  []string
	expansion []string
}{
	{
		triggers:  []string{"sleep", "sleeping", "slept", "rest", "bed"},
		expansion: []string{"sleep", "slept", "sleeping", "rest", "bed", "asleep", "duration", "efficiency"},
	},
	{
		triggers:  []string{"debt", "owe", "deficit", "behind", "surplus", "excess"},
		expansion: []string{"debt", "deficit", "surplus", "owe", "behind", "excess", "need"},
	},
	{
		triggers:  []string{"recovery", "recover", "readiness", "ready"},
		expansion: []string{"recovery", "recover", "readiness", "ready", "recharge", "restored"},
	},
	{
		triggers:  []string{"strain", "workout", "exercise", "activity", "training"},
		expansion: []string{"strain", "workout", "exercise", "activity", "training", "effort", "exertion"},
	},
	{
		triggers:  []string{"heart", "hr", "bpm", "pulse"},
		expansion: []string{"heart", "hr", "bpm", "pulse", "cardiac", "rate", "hrv"},
	},
}

// temporalPhrases signal that the user is asking about the latest data.
var temporalPhrases = []string{
	"last night",
	"yesterday",
	"today",
	"most recent",
	"latest",
	"current",
	"now",
}

// expandQuery lower-cases and tokenizes the query, then unions in the
// expansion vocabulary of every cluster a token triggers. The result is
// deduplicated and order-stable (query tokens first, expansions after).
func expandQuery(query string) []string {
	tokens := strings.Fields(strings.ToLower(query))

	seen := make(map[string]bool, len(tokens))
	var expanded []string
	add := func(term string) {
		if term != "" && !seen[term] {
			seen[term] = true
			expanded = append(expanded, term)
		}
	}

	for _, tok := range tokens {
		add(tok)
	}

	for _, tok := range tokens {
		for _, cluster := range synonymClusters {
			for _, trigger := range cluster.triggers {
				if tok == trigger {
					for _, term := range cluster.expansion {
						add(term)
					}
					break
				}
			}
		}
	}

	return expanded
}

// hasTemporalIntent reports whether the query asks about current/latest data.
func hasTemporalIntent(query string) bool {
	q := strings.ToLower(query)
	for _, phrase := range temporalPhrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}
