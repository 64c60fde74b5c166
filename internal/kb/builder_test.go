package kb

import (
	"fmt"
	"strings"
	"testing"

	"github.com/blackwell-systems/vitalwatch/internal/health"
)

// makeRow builds a MetricRow from ordered key/value pairs.
func makeRow(date string, pairs ...string) health.MetricRow {
	var names []string
	values := make(map[string]health.Value)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, raw := pairs[i], pairs[i+1]
		v := health.Value{Text: raw}
		var n float64
		if _, err := fmt.Sscanf(raw, "%f", &n); err == nil {
			v.Number = n
			v.Numeric = true
		}
		names = append(names, key)
		values[key] = v
	}
	return health.NewMetricRow(date, "export.csv", names, values)
}

func TestBuild_TimeContextByRowIndex(t *testing.T) {
	var rows []health.MetricRow
	for i := 0; i < 9; i++ {
		rows = append(rows, makeRow("", health.FieldRecovery, "60"))
	}
	facts := Build(rows, nil)

	wantPrefix := []string{
		"Most recently",
		"Recently",
		"In recent days", "In recent days", "In recent days", "In recent days", "In recent days",
		"On day 8",
		"On day 9",
	}

	var csvFacts []Fact
	for _, f := range facts {
		if f.Source == SourceCSV {
			csvFacts = append(csvFacts, f)
		}
	}
	if len(csvFacts) != len(wantPrefix) {
		t.Fatalf("got %d csv facts, want %d", len(csvFacts), len(wantPrefix))
	}
	for i, f := range csvFacts {
		if !strings.HasPrefix(f.Content, wantPrefix[i]) {
			t.Errorf("fact %d: content %q, want prefix %q", i, f.Content, wantPrefix[i])
		}
		if f.Recency != i {
			t.Errorf("fact %d: recency %d, want %d", i, f.Recency, i)
		}
	}
}

func TestBuild_LiteralDateFallback(t *testing.T) {
	rows := []health.MetricRow{
		makeRow("", health.FieldStrain, "12"),
		makeRow("", health.FieldStrain, "12"),
		makeRow("", health.FieldStrain, "12"),
		makeRow("", health.FieldStrain, "12"),
		makeRow("", health.FieldStrain, "12"),
		makeRow("", health.FieldStrain, "12"),
		makeRow("", health.FieldStrain, "12"),
		makeRow("2024-03-01", health.FieldStrain, "14.5"),
	}
	facts := Build(rows, nil)
	last := facts[len(facts)-1]
	if !strings.HasPrefix(last.Content, "On 2024-03-01") {
		t.Errorf("want literal date label fallback, got %q", last.Content)
	}
}

func TestBuild_DurationFieldsRenderedAsHoursMinutes(t *testing.T) {
	tests := []struct {
		minutes string
		want    string
	}{
		{"455", "7h 35m"},
		{"60", "1h 0m"},
		{"59", "0h 59m"},
		{"481", "8h 1m"},
	}
	for _, tt := range tests {
		rows := []health.MetricRow{makeRow("", health.FieldSleepDuration, tt.minutes)}
		facts := Build(rows, nil)
		if len(facts) == 0 {
			t.Fatalf("minutes=%s: no facts", tt.minutes)
		}
		if facts[0].Value != tt.want {
			t.Errorf("minutes=%s: value %q, want %q", tt.minutes, facts[0].Value, tt.want)
		}
	}
}

func TestBuild_SkipsBlankAndMetadataFields(t *testing.T) {
	rows := []health.MetricRow{
		makeRow("2024-03-01",
			"date", "2024-03-01",
			health.FieldRecovery, "55",
		),
	}
	facts := Build(rows, nil)
	if len(facts) != 1 {
		t.Fatalf("got %d facts, want 1 (date column must not become a fact)", len(facts))
	}
	if facts[0].Metric != health.FieldRecovery {
		t.Errorf("got metric %q", facts[0].Metric)
	}
}

func TestBuild_CurrentMetricFacts(t *testing.T) {
	current := []health.CurrentMetric{
		{Title: "Recovery", Value: "63%", Subtitle: "Yellow zone - moderate readiness"},
	}
	facts := Build(nil, current)
	if len(facts) != 1 {
		t.Fatalf("got %d facts, want 1", len(facts))
	}
	f := facts[0]
	if f.Source != SourceCurrentMetrics {
		t.Errorf("source = %q", f.Source)
	}
	if !f.HasRecency || f.Recency != -1 {
		t.Errorf("recency = %d (has=%v), want -1", f.Recency, f.HasRecency)
	}
	if f.Content != "Your current Recovery is 63% - Yellow zone - moderate readiness" {
		t.Errorf("content = %q", f.Content)
	}
}

func TestBuild_SleepDebtBanding(t *testing.T) {
	tests := []struct {
		minutes string
		band    string
	}{
		{"90", "significant debt"},
		{"45", "moderate debt"},
		{"0", "balanced"},
		{"-45", "slight surplus"},
		{"-90", "significant surplus"},
	}
	for _, tt := range tests {
		rows := []health.MetricRow{makeRow("", health.FieldSleepDebt, tt.minutes)}
		facts := Build(rows, nil)

		var tracking []Fact
		for _, f := range facts {
			if f.Source == SourceSleepDebtTracking {
				tracking = append(tracking, f)
			}
		}
		if len(tracking) != 1 {
			t.Fatalf("minutes=%s: got %d tracking facts", tt.minutes, len(tracking))
		}
		if !strings.Contains(tracking[0].Content, tt.band) {
			t.Errorf("minutes=%s: content %q, want band %q", tt.minutes, tracking[0].Content, tt.band)
		}
	}
}

func TestBuild_SleepDebtAggregate(t *testing.T) {
	// Eight days of 60-minute debt: only the most recent seven count.
	var rows []health.MetricRow
	for i := 0; i < 8; i++ {
		rows = append(rows, makeRow("", health.FieldSleepDebt, "60"))
	}
	facts := Build(rows, nil)

	var analysis []Fact
	trackingCount := 0
	for _, f := range facts {
		switch f.Source {
		case SourceSleepDebtAnalysis:
			analysis = append(analysis, f)
		case SourceSleepDebtTracking:
			trackingCount++
		}
	}
	if trackingCount != 7 {
		t.Errorf("got %d tracking facts, want 7", trackingCount)
	}
	if len(analysis) != 1 {
		t.Fatalf("got %d analysis facts, want 1", len(analysis))
	}
	// 7 days x 1h = +7.0 hours total, +1.0/day => accumulating.
	if !strings.Contains(analysis[0].Content, "+7.0 hours") {
		t.Errorf("aggregate content %q, want total +7.0 hours", analysis[0].Content)
	}
	if !strings.Contains(analysis[0].Content, "accumulating sleep debt") {
		t.Errorf("aggregate content %q, want accumulating classification", analysis[0].Content)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	rows := []health.MetricRow{
		makeRow("2024-03-02", health.FieldRecovery, "70", health.FieldSleepDebt, "20"),
		makeRow("2024-03-01", health.FieldRecovery, "65", health.FieldSleepDebt, "40"),
	}
	current := []health.CurrentMetric{{Title: "Recovery", Value: "70%", Subtitle: "Green zone - ready to perform"}}

	a := Build(rows, current)
	b := Build(rows, current)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("fact %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
