package forecast

import (
	"fmt"
	"math"
)

// Predict computes all four prediction kinds from the given series map and
// returns those whose confidence clears the display threshold. Each series
// must be ordered oldest first. Predictions that fail their sample-size
// precondition are computed as zero-confidence placeholders and therefore
// never surface here; use All to see them.
func Predict(series map[string][]float64) []Prediction {
	var out []Prediction
	for _, p := range All(series) {
		if p.Displayable() {
			out = append(out, p)
		}
	}
	return out
}

// All computes every prediction kind, including zero-confidence
// insufficient-data placeholders and low-confidence results.
func All(series map[string][]float64) []Prediction {
	return []Prediction{
		PredictRecovery(series),
		PredictSleepDebt(series),
		PredictPerformance(series),
		PredictInjuryRisk(series),
	}
}

// PredictRecovery projects tomorrow's recovery score from the 7-day
// baseline, 3-day momentum, and recent strain/sleep load.
func PredictRecovery(series map[string][]float64) Prediction {
	recovery := series[SeriesRecovery]
	if len(recovery) < minSamplesRecovery {
		return insufficient(KindRecovery, "tomorrow", len(recovery), minSamplesRecovery)
	}

	strain := series[SeriesStrain]
	sleep := series[SeriesSleepPerformance]

	baseline := mean(lastN(recovery, 7))
	momentum := (mean(lastN(recovery, 3)) - baseline) * 0.3

	strainAdj := 0.0
	if len(strain) > 0 {
		switch s := mean(lastN(strain, 2)); {
		case s > 15:
			strainAdj = -10
		case s > 12:
			strainAdj = -5
		case s < 8:
			strainAdj = 3
		}
	}

	sleepAdj := 0.0
	if len(sleep) > 0 {
		switch s := mean(lastN(sleep, 2)); {
		case s < 70:
			sleepAdj = -8
		case s > 85:
			sleepAdj = 5
		}
	}

	predicted := clamp(baseline+momentum+strainAdj+sleepAdj, 10, 100)

	var recs []string
	switch {
	case predicted < 50:
		recs = []string{
			"Plan a rest or active-recovery day",
			"Prioritize an early bedtime tonight",
			"Keep strain light until recovery rebounds",
		}
	case predicted <= 80:
		recs = []string{
			"Moderate training is fine; avoid back-to-back hard days",
			"Hold your usual sleep schedule",
		}
	default:
		recs = []string{
			"Good day for a harder training session",
			"Recovery trend supports pushing intensity",
		}
	}

	return Prediction{
		Kind:           KindRecovery,
		PredictedValue: math.Round(predicted),
		Confidence:     confidence(recovery, strain, sleep),
		Timeframe:      "tomorrow",
		Reasoning: fmt.Sprintf(
			"7-day baseline %.0f with momentum %+.1f; strain adjustment %+.0f, sleep adjustment %+.0f.",
			baseline, momentum, strainAdj, sleepAdj),
		Recommendations: recs,
	}
}

// PredictSleepDebt projects sleep debt one week out. The current debt is
// the most recent explicit reading when the export carries one, otherwise
// the summed need-vs-duration deficits over the last week.
func PredictSleepDebt(series map[string][]float64) Prediction {
	debt := series[SeriesSleepDebt]
	deficits := alignedDeficits(series[SeriesSleepNeed], series[SeriesSleepDuration])

	samples := debt
	if len(samples) < minSamplesSleepDebt {
		samples = deficits
	}
	if len(samples) < minSamplesSleepDebt {
		return insufficient(KindSleepDebt, "next week", len(samples), minSamplesSleepDebt)
	}

	var current float64
	if len(debt) > 0 {
		current = debt[len(debt)-1]
	} else {
		for _, d := range lastN(deficits, 7) {
			current += d
		}
	}

	dailyDeficit := mean(lastN(samples, 3))
	projected := current + dailyDeficit*7

	var recs []string
	switch {
	case math.Abs(projected) < 30:
		recs = []string{"Sleep is balanced; keep the current schedule"}
	case projected > 120:
		recs = []string{
			"Debt is building fast; schedule a recovery night this week",
			"Move bedtime earlier by 30-45 minutes",
		}
	case projected > 60:
		recs = []string{
			"Add 20-30 minutes of sleep per night to stop the slide",
		}
	case projected < -60:
		recs = []string{"You are banking surplus sleep; no action needed"}
	default:
		recs = []string{"Minor imbalance; a single early night will correct it"}
	}

	return Prediction{
		Kind:           KindSleepDebt,
		PredictedValue: math.Round(projected),
		Confidence:     confidence(samples),
		Timeframe:      "next week",
		Reasoning: fmt.Sprintf(
			"Current debt %.0f minutes; recent nights average %+.0f minutes per day, extrapolated over a week.",
			current, dailyDeficit),
		Recommendations: recs,
	}
}

// PredictPerformance estimates today's readiness to perform from the 5-day
// recovery base, the HRV trend, and recent strain load. Bounded [0,100].
func PredictPerformance(series map[string][]float64) Prediction {
	recovery := series[SeriesRecovery]
	if len(recovery) < minSamplesPerf {
		return insufficient(KindPerformance, "today", len(recovery), minSamplesPerf)
	}

	hrv := series[SeriesHRV]
	strain := series[SeriesStrain]

	base := mean(lastN(recovery, 5))

	hrvAdj := 0.0
	if slope := Slope(lastN(hrv, 5)); slope > 0.1 {
		hrvAdj = 5
	} else if slope < -0.1 {
		hrvAdj = -5
	}

	strainAdj := 0.0
	if len(strain) > 0 {
		switch s := mean(lastN(strain, 3)); {
		case s > 16:
			strainAdj = -10
		case s < 9:
			strainAdj = 5
		}
	}

	readiness := clamp(base+hrvAdj+strainAdj, 0, 100)

	var recs []string
	switch {
	case readiness > 80:
		recs = []string{"Primed for peak output; go after a hard session or PR attempt"}
	case readiness > 60:
		recs = []string{"Solid readiness; train as planned but leave a rep in reserve"}
	default:
		recs = []string{"Readiness is limited; favor technique or light aerobic work"}
	}

	return Prediction{
		Kind:           KindPerformance,
		PredictedValue: math.Round(readiness),
		Confidence:     confidence(recovery, hrv, strain),
		Timeframe:      "today",
		Reasoning: fmt.Sprintf(
			"5-day recovery base %.0f; HRV trend adjustment %+.0f, strain adjustment %+.0f.",
			base, hrvAdj, strainAdj),
		Recommendations: recs,
	}
}

// PredictInjuryRisk scores overtraining risk from high-strain/low-recovery
// days, HRV decline, and acute load spikes. Risk only accumulates within
// the scan; a good day resets the consecutive counter but never pays the
// score back down.
func PredictInjuryRisk(series map[string][]float64) Prediction {
	recovery := series[SeriesRecovery]
	strain := series[SeriesStrain]

	pairs := len(recovery)
	if len(strain) < pairs {
		pairs = len(strain)
	}
	if pairs < minSamplesInjury {
		return insufficient(KindInjuryRisk, "next 7 days", pairs, minSamplesInjury)
	}

	recWin := lastN(recovery, 7)
	strWin := lastN(strain, 7)
	n := len(recWin)
	if len(strWin) < n {
		n = len(strWin)
	}

	risk := 0.0
	consecutive := 0
	bonusApplied := false
	flaggedDays := 0

	for i := 0; i < n; i++ {
		if strWin[i] > 14 && recWin[i] < 50 {
			risk += 15
			consecutive++
			flaggedDays++
			if consecutive >= 3 && !bonusApplied {
				risk += 25
				bonusApplied = true
			}
		} else {
			consecutive = 0
		}
	}

	hrv := series[SeriesHRV]
	hrvDeclining := Slope(lastN(hrv, 7)) < -0.15
	if hrvDeclining {
		risk += 20
	}

	loadSpike := false
	weekMean := mean(lastN(strain, 7))
	if weekMean > 0 && mean(lastN(strain, 3)) > weekMean*1.3 {
		risk += 15
		loadSpike = true
	}

	risk = clamp(risk, 0, 100)

	var tier string
	var recs []string
	switch {
	case risk > 70:
		tier = "high"
		recs = []string{
			"Back off training load for 2-3 days",
			"Treat persistent soreness or sharp pain as a stop signal",
			"Focus on sleep and hydration until recovery normalizes",
		}
	case risk >= 40:
		tier = "moderate"
		recs = []string{
			"Alternate hard days with genuine recovery days",
			"Watch for declining HRV or morning fatigue",
		}
	default:
		tier = "low"
		recs = []string{"Load and recovery are in balance; keep training as planned"}
	}

	return Prediction{
		Kind:           KindInjuryRisk,
		PredictedValue: risk,
		Confidence:     confidence(recovery, strain),
		Timeframe:      "next 7 days",
		Reasoning: fmt.Sprintf(
			"%d high-strain low-recovery day(s) in the last week (%s risk); HRV declining: %v; acute load spike: %v.",
			flaggedDays, tier, hrvDeclining, loadSpike),
		Recommendations: recs,
	}
}

// alignedDeficits pairs sleep need against actual duration, most recent
// days aligned, and returns the per-day shortfalls (never negative).
func alignedDeficits(need, duration []float64) []float64 {
	n := len(need)
	if len(duration) < n {
		n = len(duration)
	}
	if n == 0 {
		return nil
	}
	needTail := lastN(need, n)
	durTail := lastN(duration, n)

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		d := needTail[i] - durTail[i]
		if d < 0 {
			d = 0
		}
		out[i] = d
	}
	return out
}
