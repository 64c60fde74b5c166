package watcher

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/vitalwatch/internal/health"
)

// Thresholds for alert generation. Risk tiers match the injury-risk
// predictor's reasoning bands.
const (
	riskHighTier     = 70
	riskModerateTier = 40
	recoveryCollapse = 20  // points lost between snapshots
	debtHeavy        = 120 // minutes
	debtElevated     = 60
	debtRecovered    = 30
)

// Compare detects notable changes between two watch states and returns alerts.
// It checks for critical, warning, and info-level changes.
func Compare(prev, curr *WatchState) []Alert {
	var alerts []Alert

	alerts = append(alerts, compareCritical(prev, curr)...)
	alerts = append(alerts, compareWarning(prev, curr)...)
	alerts = append(alerts, compareInfo(prev, curr)...)

	return alerts
}

// compareCritical detects critical-level changes.
func compareCritical(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := time.Now()

	// Injury risk crossed into the high tier. Only displayable predictions
	// alert; a low-confidence spike stays quiet.
	if curr.InjuryRisk.Displayable() && curr.InjuryRisk.PredictedValue > riskHighTier &&
		(!prev.InjuryRisk.Displayable() || prev.InjuryRisk.PredictedValue <= riskHighTier) {
		alerts = append(alerts, Alert{
			Level:   "critical",
			Title:   "Injury risk is high",
			Message: fmt.Sprintf("Risk score %.0f/100 (%.0f%% confidence). %s", curr.InjuryRisk.PredictedValue, curr.InjuryRisk.Confidence*100, curr.InjuryRisk.Reasoning),
			Time:    now,
		})
	}

	// Recovery collapsed between snapshots.
	if prev.HasRecovery && curr.HasRecovery && prev.Recovery-curr.Recovery >= recoveryCollapse {
		alerts = append(alerts, Alert{
			Level:   "critical",
			Title:   "Recovery collapse",
			Message: fmt.Sprintf("Recovery dropped from %.0f%% to %.0f%% (%s zone)", prev.Recovery, curr.Recovery, curr.Zone),
			Time:    now,
		})
	}

	// Sleep debt crossed the heavy threshold.
	if curr.HasDebt && curr.Debt > debtHeavy && (!prev.HasDebt || prev.Debt <= debtHeavy) {
		alerts = append(alerts, Alert{
			Level:   "critical",
			Title:   "Heavy sleep debt",
			Message: fmt.Sprintf("Sleep debt is %s, past the point where a single night recovers it", health.FormatDuration(curr.Debt)),
			Time:    now,
		})
	}

	return alerts
}

// compareWarning detects warning-level changes.
func compareWarning(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := time.Now()

	// Injury risk entered the moderate tier from below.
	if curr.InjuryRisk.Displayable() && curr.InjuryRisk.PredictedValue >= riskModerateTier && curr.InjuryRisk.PredictedValue <= riskHighTier &&
		(!prev.InjuryRisk.Displayable() || prev.InjuryRisk.PredictedValue < riskModerateTier) {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Injury risk rising",
			Message: fmt.Sprintf("Risk score %.0f/100. %s", curr.InjuryRisk.PredictedValue, curr.InjuryRisk.Reasoning),
			Time:    now,
		})
	}

	// Recovery fell into the red zone.
	if curr.HasRecovery && curr.Zone == "Red" && prev.HasRecovery && prev.Zone != "Red" {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Red recovery day",
			Message: fmt.Sprintf("Recovery is %.0f%%. Plan an easy day.", curr.Recovery),
			Time:    now,
		})
	}

	// Sleep debt crossed the elevated threshold.
	if curr.HasDebt && curr.Debt > debtElevated && (!prev.HasDebt || prev.Debt <= debtElevated) {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Sleep debt accumulating",
			Message: fmt.Sprintf("Sleep debt is %s and climbing", health.FormatDuration(curr.Debt)),
			Time:    now,
		})
	}

	// Latest day was an all-out strain day.
	if curr.HasStrain && curr.Strain > 18 && curr.LatestDate != prev.LatestDate {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "All-out strain day",
			Message: fmt.Sprintf("Day strain hit %.1f. Recovery tomorrow will likely dip.", curr.Strain),
			Time:    now,
		})
	}

	return alerts
}

// compareInfo detects informational changes.
func compareInfo(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := time.Now()

	// New data landed in the export directory.
	if curr.RowCount > prev.RowCount || (curr.LatestDate != prev.LatestDate && curr.LatestDate != "") {
		msg := fmt.Sprintf("%d rows loaded", curr.RowCount)
		if curr.HasRecovery {
			msg = fmt.Sprintf("%d rows loaded, latest recovery %.0f%% (%s)", curr.RowCount, curr.Recovery, curr.Zone)
		}
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "New export data",
			Message: msg,
			Time:    now,
		})
	}

	// Recovery climbed back into the green zone.
	if curr.HasRecovery && curr.Zone == "Green" && prev.HasRecovery && prev.Zone != "Green" {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "Back in the green",
			Message: fmt.Sprintf("Recovery is %.0f%%, cleared for a hard session", curr.Recovery),
			Time:    now,
		})
	}

	// Sleep debt paid down below the recovered threshold.
	if curr.HasDebt && curr.Debt < debtRecovered && prev.HasDebt && prev.Debt >= debtRecovered {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "Sleep debt recovered",
			Message: fmt.Sprintf("Sleep debt is down to %s", health.FormatDuration(curr.Debt)),
			Time:    now,
		})
	}

	// Injury risk dropped out of the moderate tier.
	if prev.InjuryRisk.Displayable() && prev.InjuryRisk.PredictedValue >= riskModerateTier &&
		curr.InjuryRisk.Displayable() && curr.InjuryRisk.PredictedValue < riskModerateTier {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "Injury risk easing",
			Message: fmt.Sprintf("Risk score down to %.0f/100", curr.InjuryRisk.PredictedValue),
			Time:    now,
		})
	}

	return alerts
}
