package forecast

import "github.com/blackwell-systems/vitalwatch/internal/health"

// SeriesFromRows extracts the canonical predictor inputs from the metric
// table. Missing fields produce empty slices, which the predictors treat as
// insufficient data.
func SeriesFromRows(rows []health.MetricRow) map[string][]float64 {
	return map[string][]float64{
		SeriesRecovery:         health.Series(rows, health.FieldRecovery),
		SeriesStrain:           health.Series(rows, health.FieldStrain),
		SeriesSleepPerformance: health.Series(rows, health.FieldSleepPerformance),
		SeriesHRV:              health.Series(rows, health.FieldHRV),
		SeriesSleepNeed:        health.Series(rows, health.FieldSleepNeed),
		SeriesSleepDuration:    health.Series(rows, health.FieldSleepDuration),
		SeriesSleepDebt:        health.Series(rows, health.FieldSleepDebt),
	}
}
