package forecast

import "math"

// Slope returns the least-squares linear regression coefficient of the
// series against its index. Series must be ordered oldest first, so a
// positive slope means the metric is rising over time. Fewer than two
// points yield a zero slope.
func Slope(series []float64) float64 {
	n := len(series)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// lastN returns up to the n most recent values (the series tail).
func lastN(series []float64, n int) []float64 {
	if len(series) > n {
		return series[len(series)-n:]
	}
	return series
}

// mean resolves the empty window to 0 so downstream arithmetic stays
// finite; callers that must distinguish "no data" check length first.
func mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

func stddev(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	m := mean(series)
	var ss float64
	for _, v := range series {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(series)))
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

// confidence estimates how much to trust a prediction from the series that
// fed it. This is a coarse heuristic, not a statistical confidence
// interval: sample volume raises it (floor 0.5, 0.9 at two weeks of data)
// and erratic recent behavior (coefficient of variation above 0.3 over the
// last week) discounts it. Clamped to [0.5, 0.95].
func confidence(seriesList ...[]float64) float64 {
	if len(seriesList) == 0 {
		return 0.5
	}

	total := 0
	for _, s := range seriesList {
		total += len(s)
	}
	meanSamples := float64(total) / float64(len(seriesList))

	conf := math.Min(0.9, meanSamples/14)

	for _, s := range seriesList {
		if len(s) <= 3 {
			continue
		}
		window := lastN(s, 7)
		m := mean(window)
		if m == 0 {
			continue
		}
		if stddev(window)/math.Abs(m) > 0.3 {
			conf *= 0.8
		}
	}

	return clamp(conf, 0.5, 0.95)
}
