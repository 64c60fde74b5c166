package watcher

import (
	"testing"
	"time"
)

func TestNotify_DoesNotPanic(t *testing.T) {
	tests := []struct {
		name  string
		alert Alert
	}{
		{
			name: "info alert",
			alert: Alert{
				Level:   "info",
				Title:   "New export data",
				Message: "31 rows loaded",
				Time:    time.Now(),
			},
		},
		{
			name: "warning alert",
			alert: Alert{
				Level:   "warning",
				Title:   "Sleep debt accumulating",
				Message: "Sleep debt is 1h 15m and climbing",
				Time:    time.Now(),
			},
		},
		{
			name: "critical alert",
			alert: Alert{
				Level:   "critical",
				Title:   "Injury risk is high",
				Message: "Risk score 85/100",
				Time:    time.Now(),
			},
		},
		{
			name: "empty fields",
			alert: Alert{
				Level:   "",
				Title:   "",
				Message: "",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Notify should not panic regardless of input.
			// It may use osascript or fall back to stderr.
			err := Notify(tc.alert)
			// We don't check the error because it depends on the environment
			// (osascript availability, etc.). We just verify no panic.
			_ = err
		})
	}
}

func TestNotifyUrgency(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"critical", "critical"},
		{"warning", "normal"},
		{"info", "low"},
		{"", "low"},
	}
	for _, tt := range tests {
		if got := notifyUrgency(tt.level); got != tt.want {
			t.Errorf("notifyUrgency(%q) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestNotifyFallback_WritesToStderr(t *testing.T) {
	alert := Alert{
		Level:   "info",
		Title:   "Test alert",
		Message: "Test message",
		Time:    time.Now(),
	}

	// notifyFallback writes to stderr, which is fine for tests.
	err := notifyFallback(alert)
	if err != nil {
		t.Errorf("unexpected error from notifyFallback: %v", err)
	}
}
