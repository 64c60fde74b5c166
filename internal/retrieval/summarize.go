package retrieval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blackwell-systems/vitalwatch/internal/health"
	"github.com/blackwell-systems/vitalwatch/internal/kb"
)

// summaryCap is the fixed evidence cap for grounding context.
const summaryCap = 8

// Summary is the grounding payload for the generation collaborator.
type Summary struct {
	// Evidence is the retrieved fact set backing the rendered text.
	Evidence []kb.Fact `json:"evidence"`

	// Text is the exact grounding block handed to generation. It carries
	// only relative/ordinal phrasing inherited from the facts, never
	// calendar dates.
	Text string `json:"text"`

	// Sources lists which fact sources contributed, for observability.
	Sources []string `json:"sources"`
}

// Summarize retrieves evidence for the query and renders it grouped by
// metric, with threshold interpretations where the metric kind defines
// them. An empty Evidence set means the assistant must decline.
func Summarize(query string, facts []kb.Fact) Summary {
	evidence := Retrieve(query, facts, summaryCap)
	if len(evidence) == 0 {
		return Summary{}
	}

	// Group by metric, first-occurrence order.
	var order []string
	grouped := make(map[string][]kb.Fact)
	for _, f := range evidence {
		if _, ok := grouped[f.Metric]; !ok {
			order = append(order, f.Metric)
		}
		grouped[f.Metric] = append(grouped[f.Metric], f)
	}

	var sb strings.Builder
	for _, metric := range order {
		sb.WriteString(fmt.Sprintf("## %s\n", metric))
		for _, f := range grouped[metric] {
			sb.WriteString("- ")
			sb.WriteString(f.Content)
			if interp := interpret(f); interp != "" {
				sb.WriteString(fmt.Sprintf(" [%s]", interp))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	seen := make(map[string]bool)
	var sources []string
	for _, f := range evidence {
		if !seen[f.Source] {
			seen[f.Source] = true
			sources = append(sources, f.Source)
		}
	}

	return Summary{
		Evidence: evidence,
		Text:     strings.TrimRight(sb.String(), "\n") + "\n",
		Sources:  sources,
	}
}

// interpret attaches a threshold-based reading to a fact when its metric
// kind has a defined banding. Facts whose values do not parse as numbers
// (durations, composites) get no interpretation.
func interpret(f kb.Fact) string {
	n, ok := leadingNumber(f.Value)
	if !ok {
		return ""
	}

	switch health.KindOf(f.Metric) {
	case health.KindRecovery:
		switch {
		case n >= 67:
			return "Green/high"
		case n >= 34:
			return "Yellow/moderate"
		default:
			return "Red/low"
		}
	case health.KindSleepPerformance:
		if n >= 80 {
			return "good"
		}
		return "below optimal"
	case health.KindStrain:
		switch {
		case n > 18:
			return "all-out"
		case n > 14:
			return "high"
		case n > 10:
			return "moderate"
		default:
			return "light"
		}
	case health.KindSleepEfficiency:
		if n >= 85 {
			return "optimal"
		}
		return "below optimal"
	case health.KindBloodOxygen:
		if n >= 95 {
			return "normal"
		}
		return "low"
	}
	return ""
}

// leadingNumber parses the numeric prefix of a rendered value like "63%"
// or "14.5".
func leadingNumber(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	end := 0
	for end < len(value) {
		c := value[end]
		if (c >= '0' && c <= '9') || c == '.' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(value[:end], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
