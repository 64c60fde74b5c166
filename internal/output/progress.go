package output

import (
	"fmt"
	"strings"
)

// ProgressBar renders a visual bar for a 0-100 percentage.
// Example: "████████░░ 80%"
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((pct / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var styled string
	switch {
	case pct >= 80:
		styled = StyleSuccess.Render(bar)
	case pct >= 50:
		styled = StyleWarning.Render(bar)
	default:
		styled = StyleError.Render(bar)
	}

	return fmt.Sprintf("%s %s", styled, StyleMuted.Render(fmt.Sprintf("%.0f%%", pct)))
}

// RiskBar renders an injury-risk score where low is good: the coloring is
// the inverse of ProgressBar.
func RiskBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((score / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var styled string
	switch {
	case score > 70:
		styled = StyleError.Render(bar)
	case score >= 40:
		styled = StyleWarning.Render(bar)
	default:
		styled = StyleSuccess.Render(bar)
	}

	return fmt.Sprintf("%s %s", styled, StyleMuted.Render(fmt.Sprintf("%.0f/100", score)))
}

// Confidence renders a forecast confidence as a percentage with a muted
// qualifier.
func Confidence(c float64) string {
	qualifier := "low"
	switch {
	case c >= 0.85:
		qualifier = "high"
	case c >= 0.7:
		qualifier = "moderate"
	}
	return StyleMuted.Render(fmt.Sprintf("%.0f%% confidence (%s)", c*100, qualifier))
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
// The higherIsBetter parameter controls which direction colors green.
func TrendArrow(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := (isPositive && higherIsBetter) || (!isPositive && !higherIsBetter)

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.1f", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.1f", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
