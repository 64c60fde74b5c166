// Package forecast computes short-horizon statistical projections from
// metric series: linear trends, bounded composite predictions, and coarse
// confidence estimates used to gate what is surfaced to the user.
package forecast

import "fmt"

// Kind identifies a prediction domain.
type Kind string

const (
	KindRecovery    Kind = "recovery"
	KindSleepDebt   Kind = "sleep_debt"
	KindPerformance Kind = "performance_readiness"
	KindInjuryRisk  Kind = "injury_risk"
)

// Canonical series keys for the Predict input map. Every series is ordered
// oldest first, index ascending with time; extraction in the health package
// establishes this.
const (
	SeriesRecovery         = "recovery"
	SeriesStrain           = "strain"
	SeriesSleepPerformance = "sleep_performance"
	SeriesHRV              = "hrv"
	SeriesSleepNeed        = "sleep_need"
	SeriesSleepDuration    = "sleep_duration"
	SeriesSleepDebt        = "sleep_debt"
)

// Minimum sample sizes per prediction kind.
const (
	minSamplesRecovery  = 7
	minSamplesInjury    = 7
	minSamplesSleepDebt = 5
	minSamplesPerf      = 5
)

// displayThreshold gates which predictions are surfaced: anything at or
// below it is computed but withheld.
const displayThreshold = 0.6

// Prediction is one forecast record. Stateless: recomputed fully on every
// request.
type Prediction struct {
	Kind           Kind     `json:"kind"`
	PredictedValue float64  `json:"predicted_value"`
	Confidence     float64  `json:"confidence"`
	Timeframe      string   `json:"timeframe"`
	Reasoning      string   `json:"reasoning"`
	Recommendations []string `json:"recommendations"`
}

// Displayable reports whether the prediction's confidence clears the
// display threshold.
func (p Prediction) Displayable() bool {
	return p.Confidence > displayThreshold
}

// insufficient builds the zero-confidence placeholder returned when a
// predictor's minimum sample-size precondition fails. Callers check
// Confidence, they never catch errors.
func insufficient(kind Kind, timeframe string, have, want int) Prediction {
	return Prediction{
		Kind:       kind,
		Confidence: 0,
		Timeframe:  timeframe,
		Reasoning:  fmt.Sprintf("Not enough tracked days to project this metric yet: %d of %d required.", have, want),
	}
}
