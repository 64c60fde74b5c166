// Package watcher provides background monitoring of the WHOOP export
// directory, detecting recovery collapses, accumulating sleep debt, and
// rising injury risk as new data lands.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/blackwell-systems/vitalwatch/internal/forecast"
	"github.com/blackwell-systems/vitalwatch/internal/health"
)

// WatchState captures a point-in-time snapshot of the export directory.
type WatchState struct {
	Timestamp  time.Time
	RowCount   int
	LatestDate string

	HasRecovery bool
	Recovery    float64
	Zone        string

	HasStrain bool
	Strain    float64

	HasDebt bool
	Debt    float64 // minutes

	InjuryRisk forecast.Prediction
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// Watcher polls the export directory at a regular interval and emits alerts
// when notable changes are detected.
type Watcher struct {
	exportDir     string
	interval      time.Duration
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts
}

// New creates a Watcher that monitors the given export directory.
func New(exportDir string, interval time.Duration, alertFn func(Alert)) *Watcher {
	return &Watcher{
		exportDir:     exportDir,
		interval:      interval,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
	}
}

// Run starts the watch loop. It takes an initial snapshot, then checks at
// every interval. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	// Take the initial snapshot.
	initial, err := w.Snapshot()
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}
	w.previous = initial

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			alerts := w.Check()
			for _, a := range alerts {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: takes a new snapshot, compares against
// the previous state, updates the previous state, and returns any alerts.
// Identical alerts are suppressed until the underlying data changes.
func (w *Watcher) Check() []Alert {
	curr, err := w.Snapshot()
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read export data: %v", err),
			Time:    time.Now(),
		}}
	}

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr)
	}

	// Deduplicate: suppress alerts with the same title+message as last cycle.
	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// Snapshot loads the export directory and computes the current state,
// including a fresh injury-risk prediction.
func (w *Watcher) Snapshot() (*WatchState, error) {
	rows, err := health.LoadDir(w.exportDir)
	if err != nil {
		return nil, fmt.Errorf("loading export dir: %w", err)
	}
	return StateFromRows(rows), nil
}

// StateFromRows builds a WatchState from an already-loaded metric table.
func StateFromRows(rows []health.MetricRow) *WatchState {
	state := &WatchState{
		Timestamp: time.Now(),
		RowCount:  len(rows),
	}
	if len(rows) == 0 {
		return state
	}

	latest := rows[0]
	state.LatestDate = latest.Text(health.FieldDate)

	if v, ok := latest.Number(health.FieldRecovery); ok {
		state.HasRecovery = true
		state.Recovery = v
		state.Zone = health.RecoveryZoneName(v)
	}
	if v, ok := latest.Number(health.FieldStrain); ok {
		state.HasStrain = true
		state.Strain = v
	}
	if v, ok := latest.Number(health.FieldSleepDebt); ok {
		state.HasDebt = true
		state.Debt = v
	}

	state.InjuryRisk = forecast.PredictInjuryRisk(forecast.SeriesFromRows(rows))

	return state
}
