// Package goal provides goal progress math, trend labeling, and the
// rules-based engine that suggests new goals from the user's data.
package goal

import "time"

// Kind identifies what a goal tracks.
type Kind string

const (
	KindRecovery Kind = "recovery"
	KindSleep    Kind = "sleep"
	KindStrain   Kind = "strain"
	KindHRV      Kind = "hrv"
	KindCustom   Kind = "custom"
)

// Direction states which way progress runs for a goal.
type Direction string

const (
	HigherIsBetter Direction = "higher_is_better"
	LowerIsBetter  Direction = "lower_is_better"
)

// Trend labels the goal's recent movement.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Goal is a user-defined target. Progress and Trend are derived; the store
// persists goals, the core only computes.
type Goal struct {
	ID            string    `json:"id"`
	Kind          Kind      `json:"kind"`
	Title         string    `json:"title"`
	CurrentValue  float64   `json:"current_value"`
	BaselineValue float64   `json:"baseline_value"`
	TargetValue   float64   `json:"target_value"`
	Unit          string    `json:"unit"`
	Direction     Direction `json:"direction"`
	Progress      float64   `json:"progress"`
	Trend         Trend     `json:"trend"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
