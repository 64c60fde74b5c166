package goal

import (
	"fmt"
	"math"
	"sort"

	"github.com/blackwell-systems/vitalwatch/internal/forecast"
	"github.com/blackwell-systems/vitalwatch/internal/health"
)

// Priority levels for goal suggestions.
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
	PriorityLow      = 4
)

// Suggestion is a proposed goal, ready to be accepted into the store.
type Suggestion struct {
	Kind        Kind      `json:"kind"`
	Priority    int       `json:"priority"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Baseline    float64   `json:"baseline"`
	Target      float64   `json:"target"`
	Unit        string    `json:"unit"`
	Direction   Direction `json:"direction"`
	ImpactScore float64   `json:"impact_score"`
}

// Context provides the aggregates suggestion rules read. It is built once
// per command run from the loaded metric table; there is no ambient state.
type Context struct {
	Days          int     `json:"days"`
	AvgRecovery7  float64 `json:"avg_recovery_7d"`
	AvgStrain7    float64 `json:"avg_strain_7d"`
	AvgHRV7       float64 `json:"avg_hrv_7d"`
	HRVSlope14    float64 `json:"hrv_slope_14d"`
	AvgSleepPerf7 float64 `json:"avg_sleep_perf_7d"`
	AvgDebt7      float64 `json:"avg_sleep_debt_7d"` // minutes

	HasRecovery bool `json:"has_recovery"`
	HasStrain   bool `json:"has_strain"`
	HasHRV      bool `json:"has_hrv"`
	HasSleep    bool `json:"has_sleep"`
	HasDebt     bool `json:"has_debt"`
}

// NewContext aggregates the metric table into rule inputs.
func NewContext(rows []health.MetricRow) *Context {
	ctx := &Context{Days: len(rows)}

	if s := health.SeriesLastN(rows, health.FieldRecovery, 7); len(s) > 0 {
		ctx.HasRecovery = true
		ctx.AvgRecovery7 = avg(s)
	}
	if s := health.SeriesLastN(rows, health.FieldStrain, 7); len(s) > 0 {
		ctx.HasStrain = true
		ctx.AvgStrain7 = avg(s)
	}
	if s := health.SeriesLastN(rows, health.FieldHRV, 7); len(s) > 0 {
		ctx.HasHRV = true
		ctx.AvgHRV7 = avg(s)
		ctx.HRVSlope14 = forecast.Slope(health.SeriesLastN(rows, health.FieldHRV, 14))
	}
	if s := health.SeriesLastN(rows, health.FieldSleepPerformance, 7); len(s) > 0 {
		ctx.HasSleep = true
		ctx.AvgSleepPerf7 = avg(s)
	}
	if s := health.SeriesLastN(rows, health.FieldSleepDebt, 7); len(s) > 0 {
		ctx.HasDebt = true
		ctx.AvgDebt7 = avg(s)
	}

	return ctx
}

// Rule examines the context and produces zero or more goal suggestions.
type Rule func(ctx *Context) []Suggestion

// Engine runs all registered rules and ranks the results.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine with all built-in rules registered.
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			LowRecoveryBaseline,
			ChronicSleepDebt,
			StrainRecoveryImbalance,
			DecliningHRV,
			SleepConsistency,
		},
	}
}

// Run executes all rules and returns suggestions sorted by impact score,
// highest first.
func (e *Engine) Run(ctx *Context) []Suggestion {
	var all []Suggestion
	for _, rule := range e.rules {
		all = append(all, rule(ctx)...)
	}
	return Rank(all)
}

// Rank sorts suggestions by ImpactScore descending without mutating the
// input.
func Rank(suggestions []Suggestion) []Suggestion {
	sorted := make([]Suggestion, len(suggestions))
	copy(sorted, suggestions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ImpactScore > sorted[j].ImpactScore
	})
	return sorted
}

// impact scores a suggestion from the size of the shortfall, how much
// evidence backs it, and how hard the change is. Evidence saturates at two
// weeks of data.
func impact(gap float64, days int, effort float64) float64 {
	if effort <= 0 {
		return 0
	}
	evidence := math.Min(float64(days), 14) / 14
	return math.Abs(gap) * evidence / effort
}

// LowRecoveryBaseline suggests a recovery goal when the weekly average
// sits below the yellow/green boundary.
func LowRecoveryBaseline(ctx *Context) []Suggestion {
	if !ctx.HasRecovery || ctx.AvgRecovery7 >= 60 {
		return nil
	}
	target := math.Min(ctx.AvgRecovery7+15, 85)
	return []Suggestion{{
		Kind:     KindRecovery,
		Priority: PriorityHigh,
		Title:    "Raise your recovery baseline",
		Description: fmt.Sprintf(
			"Your recovery has averaged %.0f%% over the last week. Building toward %.0f%% gives you more green-zone days to train hard on.",
			ctx.AvgRecovery7, target),
		Baseline:    ctx.AvgRecovery7,
		Target:      target,
		Unit:        "%",
		Direction:   HigherIsBetter,
		ImpactScore: impact(target-ctx.AvgRecovery7, ctx.Days, 2),
	}}
}

// ChronicSleepDebt suggests a debt-reduction goal when the weekly average
// debt exceeds 45 minutes per day.
func ChronicSleepDebt(ctx *Context) []Suggestion {
	if !ctx.HasDebt || ctx.AvgDebt7 <= 45 {
		return nil
	}
	return []Suggestion{{
		Kind:     KindSleep,
		Priority: PriorityCritical,
		Title:    "Pay down your sleep debt",
		Description: fmt.Sprintf(
			"You are carrying %.0f minutes of sleep debt per day on average. Getting under 30 minutes restores recovery capacity faster than any training change.",
			ctx.AvgDebt7),
		Baseline:    ctx.AvgDebt7,
		Target:      30,
		Unit:        "min",
		Direction:   LowerIsBetter,
		ImpactScore: impact(ctx.AvgDebt7-30, ctx.Days, 1.5),
	}}
}

// StrainRecoveryImbalance suggests capping strain when weekly load is high
// while recovery stays low.
func StrainRecoveryImbalance(ctx *Context) []Suggestion {
	if !ctx.HasStrain || !ctx.HasRecovery {
		return nil
	}
	if ctx.AvgStrain7 <= 15 || ctx.AvgRecovery7 >= 55 {
		return nil
	}
	return []Suggestion{{
		Kind:     KindStrain,
		Priority: PriorityHigh,
		Title:    "Rebalance strain against recovery",
		Description: fmt.Sprintf(
			"Average strain %.1f against %.0f%% recovery means you are training harder than you are recovering. Capping daily strain near 12 lets the baseline catch up.",
			ctx.AvgStrain7, ctx.AvgRecovery7),
		Baseline:    ctx.AvgStrain7,
		Target:      12,
		Unit:        "strain",
		Direction:   LowerIsBetter,
		ImpactScore: impact(ctx.AvgStrain7-12, ctx.Days, 2),
	}}
}

// DecliningHRV suggests an HRV goal when the two-week trend is clearly
// negative.
func DecliningHRV(ctx *Context) []Suggestion {
	if !ctx.HasHRV || ctx.HRVSlope14 >= -0.2 {
		return nil
	}
	target := ctx.AvgHRV7 + 5
	return []Suggestion{{
		Kind:     KindHRV,
		Priority: PriorityMedium,
		Title:    "Reverse the HRV decline",
		Description: fmt.Sprintf(
			"HRV has been trending down over the last two weeks (%.2f ms/day). Stabilizing above %.0f ms usually tracks with better stress tolerance.",
			ctx.HRVSlope14, target),
		Baseline:    ctx.AvgHRV7,
		Target:      target,
		Unit:        "ms",
		Direction:   HigherIsBetter,
		ImpactScore: impact(ctx.HRVSlope14*14, ctx.Days, 3),
	}}
}

// SleepConsistency suggests a sleep-performance goal below 75%.
func SleepConsistency(ctx *Context) []Suggestion {
	if !ctx.HasSleep || ctx.AvgSleepPerf7 >= 75 {
		return nil
	}
	return []Suggestion{{
		Kind:     KindSleep,
		Priority: PriorityMedium,
		Title:    "Make sleep performance consistent",
		Description: fmt.Sprintf(
			"Sleep performance has averaged %.0f%% this week. A steady 85%% is the single strongest lever on next-day recovery.",
			ctx.AvgSleepPerf7),
		Baseline:    ctx.AvgSleepPerf7,
		Target:      85,
		Unit:        "%",
		Direction:   HigherIsBetter,
		ImpactScore: impact(85-ctx.AvgSleepPerf7, ctx.Days, 2),
	}}
}

func avg(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
