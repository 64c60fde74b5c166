package health

import (
	"strings"
	"testing"
)

func TestRecoveryZoneName(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Green"},
		{67, "Green"},
		{66.9, "Yellow"},
		{34, "Yellow"},
		{33.9, "Red"},
		{0, "Red"},
	}
	for _, tt := range tests {
		if got := RecoveryZoneName(tt.score); got != tt.want {
			t.Errorf("RecoveryZoneName(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestStrainBand(t *testing.T) {
	tests := []struct {
		strain float64
		want   string
	}{
		{19, "all-out effort"},
		{15, "high strain"},
		{12, "moderate strain"},
		{5, "light activity"},
		{10, "light activity"},
	}
	for _, tt := range tests {
		if got := StrainBand(tt.strain); got != tt.want {
			t.Errorf("StrainBand(%v) = %q, want %q", tt.strain, got, tt.want)
		}
	}
}

func TestCurrentMetrics_Empty(t *testing.T) {
	if got := CurrentMetrics(nil); got != nil {
		t.Errorf("CurrentMetrics(nil) = %v, want nil", got)
	}
}

func TestCurrentMetrics_LatestRow(t *testing.T) {
	rows := []MetricRow{
		rowWithNumbers("2026-08-20", map[string]float64{
			FieldRecovery:         72,
			FieldStrain:           14.5,
			FieldHRV:              85,
			FieldSleepPerformance: 88,
			FieldSleepDebt:        95,
		}),
		rowWithNumbers("2026-08-19", map[string]float64{FieldHRV: 70}),
	}

	metrics := CurrentMetrics(rows)
	byTitle := map[string]CurrentMetric{}
	for _, m := range metrics {
		byTitle[m.Title] = m
	}

	if m := byTitle["Recovery"]; m.Value != "72%" || !strings.Contains(m.Subtitle, "Green") {
		t.Errorf("Recovery = %+v", m)
	}
	if m := byTitle["Day Strain"]; m.Value != "14.5" || m.Subtitle != "high strain" {
		t.Errorf("Day Strain = %+v", m)
	}
	if m := byTitle["Sleep Performance"]; m.Subtitle != "good sleep quality" {
		t.Errorf("Sleep Performance = %+v", m)
	}
	// 95 minutes of debt exceeds the one-hour comfort band.
	if m := byTitle["Sleep Debt"]; m.Value != "1h 35m" || m.Subtitle != "catch-up sleep needed" {
		t.Errorf("Sleep Debt = %+v", m)
	}
	// 85 vs a window average of 77.5 is more than a unit above.
	if m := byTitle["HRV"]; !strings.Contains(m.Subtitle, "above 7-day average") {
		t.Errorf("HRV = %+v", m)
	}
}
