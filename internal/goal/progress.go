package goal

import (
	"math"
	"time"
)

// stableWindow is the absolute unit change below which a goal's trend
// stays "stable".
const stableWindow = 1.0

// UpdateProgress returns a copy of the goal with CurrentValue replaced and
// Progress/Trend recomputed. Pure: the input goal is not mutated.
func UpdateProgress(g Goal, current float64, now time.Time) Goal {
	previous := g.CurrentValue
	g.CurrentValue = current
	g.Progress = computeProgress(current, g.BaselineValue, g.TargetValue, g.Direction)
	g.Trend = computeTrend(current, previous, g.Direction)
	g.UpdatedAt = now
	return g
}

// computeProgress maps the current value to [0,100]. For lower-is-better
// goals progress runs from the baseline down to the target; for
// higher-is-better goals it is the fraction of target reached. Degenerate
// targets (target==baseline, or a zero target on an increasing goal) have
// no gradient to measure against: the goal is either met (100) or not (0).
func computeProgress(current, baseline, target float64, dir Direction) float64 {
	if dir == LowerIsBetter {
		if target == baseline {
			if current <= target {
				return 100
			}
			return 0
		}
		return clamp(((baseline-current)/(baseline-target))*100, 0, 100)
	}

	if target == 0 {
		if current >= target {
			return 100
		}
		return 0
	}
	return clamp((current/target)*100, 0, 100)
}

// computeTrend labels the movement between the previous and current value.
// Changes smaller than one unit are noise, not a trend.
func computeTrend(current, previous float64, dir Direction) Trend {
	if math.Abs(current-previous) < stableWindow {
		return TrendStable
	}
	rose := current > previous
	if (rose && dir == HigherIsBetter) || (!rose && dir == LowerIsBetter) {
		return TrendImproving
	}
	return TrendDeclining
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
