package kb

import (
	"fmt"

	"github.com/blackwell-systems/vitalwatch/internal/health"
)

// debtWindow is how many recent sleep-debt readings get individual facts.
const debtWindow = 7

// Build converts the metric table and current-value summaries into the full
// fact set. Rows must be ordered most-recent-first; row index becomes the
// fact's recency rank. Build is deterministic: two calls on the same table
// yield content-equal fact sets.
func Build(rows []health.MetricRow, current []health.CurrentMetric) []Fact {
	var facts []Fact

	for i, row := range rows {
		for _, field := range row.FieldNames() {
			if health.IsMetadataField(field) {
				continue
			}
			v, ok := row.Value(field)
			if !ok || v.Text == "" {
				continue
			}

			value := health.FormatValue(field, v)
			phrase := timeContext(i)

			var content string
			if phrase != "" {
				content = fmt.Sprintf("%s, your %s was %s", phrase, field, value)
			} else {
				content = fmt.Sprintf("On %s, your %s was %s", dateLabel(row, i), field, value)
			}

			facts = append(facts, Fact{
				Content:    content,
				Metric:     field,
				Value:      value,
				Source:     SourceCSV,
				Recency:    i,
				HasRecency: true,
			})
		}
	}

	for _, cm := range current {
		facts = append(facts, Fact{
			Content:    fmt.Sprintf("Your current %s is %s - %s", cm.Title, cm.Value, cm.Subtitle),
			Metric:     cm.Title,
			Value:      cm.Value,
			Source:     SourceCurrentMetrics,
			Recency:    -1,
			HasRecency: true,
		})
	}

	facts = append(facts, buildSleepDebtFacts(rows)...)

	return facts
}

// timeContext maps a row index to its relative phrase. Beyond the first
// week there is no honest relative phrasing, so callers fall back to the
// row's own label.
func timeContext(index int) string {
	switch {
	case index == 0:
		return "Most recently"
	case index == 1:
		return "Recently"
	case index >= 2 && index <= 6:
		return "In recent days"
	default:
		return ""
	}
}

// dateLabel returns the row's literal date label, or a synthetic ordinal
// placeholder when the export carried no date column.
func dateLabel(row health.MetricRow, index int) string {
	if row.Date != "" {
		return row.Date
	}
	return fmt.Sprintf("day %d", index+1)
}

// buildSleepDebtFacts emits one banded fact per recent sleep-debt reading
// plus a single aggregate fact over the window.
func buildSleepDebtFacts(rows []health.MetricRow) []Fact {
	type reading struct {
		minutes float64
	}

	var readings []reading
	for _, row := range rows {
		if d, ok := row.Number(health.FieldSleepDebt); ok {
			readings = append(readings, reading{minutes: d})
			if len(readings) == debtWindow {
				break
			}
		}
	}
	if len(readings) == 0 {
		return nil
	}

	var facts []Fact
	var sum float64

	for pos, r := range readings {
		sum += r.minutes
		hours := r.minutes / 60

		phrase := timeContext(pos)
		if phrase == "" {
			phrase = "Earlier in the week"
		}

		facts = append(facts, Fact{
			Content:    fmt.Sprintf("%s, your sleep debt was %+.1f hours - %s", phrase, hours, debtBand(r.minutes)),
			Metric:     "sleep debt",
			Value:      fmt.Sprintf("%+.1fh", hours),
			Source:     SourceSleepDebtTracking,
			Recency:    pos,
			HasRecency: true,
		})
	}

	avg := sum / float64(len(readings))
	facts = append(facts, Fact{
		Content: fmt.Sprintf(
			"Over your last %d tracked days, total sleep debt is %+.1f hours, averaging %+.1f hours per day - you are %s",
			len(readings), sum/60, avg/60, debtTrajectory(avg)),
		Metric: "sleep debt",
		Value:  fmt.Sprintf("%+.1fh", sum/60),
		Source: SourceSleepDebtAnalysis,
	})

	return facts
}

// debtBand classifies a single day's sleep debt in minutes.
func debtBand(minutes float64) string {
	switch {
	case minutes > 60:
		return "significant debt"
	case minutes > 30:
		return "moderate debt"
	case minutes >= -30:
		return "balanced"
	case minutes >= -60:
		return "slight surplus"
	default:
		return "significant surplus"
	}
}

// debtTrajectory classifies the average daily debt at the ±30 min/day
// threshold.
func debtTrajectory(avgMinutes float64) string {
	switch {
	case avgMinutes > 30:
		return "accumulating sleep debt"
	case avgMinutes < -30:
		return "building a sleep surplus"
	default:
		return "maintaining balance"
	}
}
