package health

import "fmt"

// RecoveryZoneName returns the zone color ("Green", "Yellow", "Red") for a
// recovery score.
func RecoveryZoneName(score float64) string {
	switch {
	case score >= 67:
		return "Green"
	case score >= 34:
		return "Yellow"
	default:
		return "Red"
	}
}

// RecoveryZone returns the WHOOP-style zone label for a recovery score.
func RecoveryZone(score float64) string {
	switch RecoveryZoneName(score) {
	case "Green":
		return "Green zone - ready to perform"
	case "Yellow":
		return "Yellow zone - moderate readiness"
	default:
		return "Red zone - prioritize rest"
	}
}

// StrainBand returns the label for a day-strain value.
func StrainBand(strain float64) string {
	switch {
	case strain > 18:
		return "all-out effort"
	case strain > 14:
		return "high strain"
	case strain > 10:
		return "moderate strain"
	default:
		return "light activity"
	}
}

// CurrentMetrics derives current-value summaries from the most recent row.
// These feed the knowledge base as the highest-priority facts and the
// summary dashboard directly. Empty when the table is empty.
func CurrentMetrics(rows []MetricRow) []CurrentMetric {
	if len(rows) == 0 {
		return nil
	}
	latest := rows[0]
	var out []CurrentMetric

	if v, ok := latest.Number(FieldRecovery); ok {
		out = append(out, CurrentMetric{
			Title:    "Recovery",
			Value:    fmt.Sprintf("%.0f%%", v),
			Subtitle: RecoveryZone(v),
		})
	}

	if v, ok := latest.Number(FieldStrain); ok {
		out = append(out, CurrentMetric{
			Title:    "Day Strain",
			Value:    fmt.Sprintf("%.1f", v),
			Subtitle: StrainBand(v),
		})
	}

	if v, ok := latest.Number(FieldHRV); ok {
		out = append(out, CurrentMetric{
			Title:    "HRV",
			Value:    fmt.Sprintf("%.0f ms", v),
			Subtitle: vsWeekly(v, SeriesLastN(rows, FieldHRV, 7), true),
		})
	}

	if v, ok := latest.Number(FieldRestingHR); ok {
		out = append(out, CurrentMetric{
			Title:    "Resting Heart Rate",
			Value:    fmt.Sprintf("%.0f bpm", v),
			Subtitle: vsWeekly(v, SeriesLastN(rows, FieldRestingHR, 7), false),
		})
	}

	if v, ok := latest.Number(FieldSleepPerformance); ok {
		subtitle := "below optimal"
		if v >= 80 {
			subtitle = "good sleep quality"
		}
		out = append(out, CurrentMetric{
			Title:    "Sleep Performance",
			Value:    fmt.Sprintf("%.0f%%", v),
			Subtitle: subtitle,
		})
	}

	if v, ok := latest.Number(FieldSleepDebt); ok {
		subtitle := "within healthy range"
		if v > 60 {
			subtitle = "catch-up sleep needed"
		} else if v < -60 {
			subtitle = "well rested"
		}
		out = append(out, CurrentMetric{
			Title:    "Sleep Debt",
			Value:    FormatDuration(v),
			Subtitle: subtitle,
		})
	}

	return out
}

// vsWeekly describes a value relative to its 7-day average.
func vsWeekly(v float64, window []float64, higherIsBetter bool) string {
	if len(window) < 2 {
		return "tracking"
	}
	avg := mean(window)
	delta := v - avg
	if delta > -1 && delta < 1 {
		return "in line with 7-day average"
	}
	above := delta > 0
	good := above == higherIsBetter
	dir := "below"
	if above {
		dir = "above"
	}
	if good {
		return fmt.Sprintf("%s 7-day average - trending well", dir)
	}
	return fmt.Sprintf("%s 7-day average - worth watching", dir)
}
