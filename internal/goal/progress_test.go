package goal

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func TestUpdateProgress_LowerIsBetter(t *testing.T) {
	g := Goal{
		Kind:          KindSleep,
		BaselineValue: 20,
		TargetValue:   10,
		CurrentValue:  20,
		Direction:     LowerIsBetter,
	}

	tests := []struct {
		current float64
		want    float64
	}{
		{10, 100},
		{20, 0},
		{15, 50},
		{5, 100},  // past target clamps at 100
		{25, 0},   // regressed past baseline clamps at 0
	}
	for _, tt := range tests {
		got := UpdateProgress(g, tt.current, now)
		assert.Equal(t, tt.want, got.Progress, "current=%v", tt.current)
	}
}

func TestUpdateProgress_NoSignedZero(t *testing.T) {
	// A zero progress must carry no sign bit, or it renders as "-0".
	g := Goal{BaselineValue: 20, TargetValue: 10, Direction: LowerIsBetter}
	for _, current := range []float64{20, 25} {
		p := UpdateProgress(g, current, now).Progress
		assert.Equal(t, 0.0, p)
		assert.False(t, math.Signbit(p), "current=%v", current)
	}
}

func TestUpdateProgress_HigherIsBetter(t *testing.T) {
	g := Goal{
		Kind:        KindRecovery,
		TargetValue: 80,
		Direction:   HigherIsBetter,
	}
	assert.Equal(t, 50.0, UpdateProgress(g, 40, now).Progress)
	assert.Equal(t, 100.0, UpdateProgress(g, 90, now).Progress)
	assert.Equal(t, 0.0, UpdateProgress(g, -10, now).Progress)
}

func TestUpdateProgress_DegenerateTargets(t *testing.T) {
	// target == baseline must not divide by zero: met or not, nothing
	// in between.
	g := Goal{BaselineValue: 10, TargetValue: 10, Direction: LowerIsBetter}
	assert.Equal(t, 100.0, UpdateProgress(g, 10, now).Progress)
	assert.Equal(t, 100.0, UpdateProgress(g, 8, now).Progress)
	assert.Equal(t, 0.0, UpdateProgress(g, 12, now).Progress)

	g = Goal{TargetValue: 0, Direction: HigherIsBetter}
	assert.Equal(t, 100.0, UpdateProgress(g, 5, now).Progress)
}

func TestUpdateProgress_ProgressAlwaysBounded(t *testing.T) {
	values := []float64{-1e9, -42.5, 0, 0.001, 7, 99, 1e9}
	for _, baseline := range values {
		for _, target := range values {
			for _, current := range values {
				for _, dir := range []Direction{HigherIsBetter, LowerIsBetter} {
					g := Goal{BaselineValue: baseline, TargetValue: target, Direction: dir}
					p := UpdateProgress(g, current, now).Progress
					assert.GreaterOrEqual(t, p, 0.0)
					assert.LessOrEqual(t, p, 100.0)
				}
			}
		}
	}
}

func TestUpdateProgress_TrendLabels(t *testing.T) {
	tests := []struct {
		name     string
		previous float64
		current  float64
		dir      Direction
		want     Trend
	}{
		{"small change is stable", 60, 60.5, HigherIsBetter, TrendStable},
		{"rise on higher-is-better improves", 60, 65, HigherIsBetter, TrendImproving},
		{"fall on higher-is-better declines", 60, 55, HigherIsBetter, TrendDeclining},
		{"fall on lower-is-better improves", 40, 35, LowerIsBetter, TrendImproving},
		{"rise on lower-is-better declines", 40, 45, LowerIsBetter, TrendDeclining},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{CurrentValue: tt.previous, TargetValue: 100, Direction: tt.dir}
			assert.Equal(t, tt.want, UpdateProgress(g, tt.current, now).Trend)
		})
	}
}

func TestRecommendations_BandSelection(t *testing.T) {
	g := Goal{Kind: KindRecovery, Progress: 20}
	early := Recommendations(g)
	g.Progress = 65
	mid := Recommendations(g)
	g.Progress = 95
	late := Recommendations(g)

	assert.NotEmpty(t, early)
	assert.NotEmpty(t, mid)
	assert.NotEmpty(t, late)
	assert.NotEqual(t, early[0], late[0])

	// Unknown kinds fall back to the generic sets.
	g = Goal{Kind: KindCustom, Progress: 20}
	assert.NotEmpty(t, Recommendations(g))
}
