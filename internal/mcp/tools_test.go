package mcp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/vitalwatch/internal/config"
	"github.com/blackwell-systems/vitalwatch/internal/goal"
	"github.com/blackwell-systems/vitalwatch/internal/store"
)

// newDataServer creates a Server over a temp export directory with a week of
// synthetic WHOOP data and an in-memory goal store.
func newDataServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	csv := "Date,Recovery score %,Day Strain,Heart rate variability (ms),Sleep performance %,Sleep debt (min)\n" +
		"2025-06-07,72,14.3,65,88,40\n" +
		"2025-06-06,68,12.1,62,85,35\n" +
		"2025-06-05,55,16.8,58,70,80\n" +
		"2025-06-04,61,11.0,60,82,50\n" +
		"2025-06-03,70,13.5,64,90,20\n" +
		"2025-06-02,66,10.2,63,86,30\n" +
		"2025-06-01,59,15.1,59,75,65\n"
	if err := os.WriteFile(filepath.Join(dir, "physiological_cycles.csv"), []byte(csv), 0o644); err != nil {
		t.Fatalf("writing export csv: %v", err)
	}

	db, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewServer(&config.Config{ExportDir: dir}, db)
}

func TestHandleAskHealth_Grounded(t *testing.T) {
	s := newDataServer(t)

	result, err := s.handleAskHealth(json.RawMessage(`{"question":"how is my recovery?"}`))
	if err != nil {
		t.Fatalf("handleAskHealth: %v", err)
	}

	res, ok := result.(AskHealthResult)
	if !ok {
		t.Fatalf("unexpected result type %T", result)
	}
	if !res.Grounded {
		t.Error("expected a grounded result for a recovery question")
	}
	if !strings.Contains(res.Context, "recovery") {
		t.Errorf("context should mention recovery: %q", res.Context)
	}
	if res.EvidenceCount == 0 {
		t.Error("expected non-zero evidence count")
	}
}

func TestHandleAskHealth_MissingQuestion(t *testing.T) {
	s := newDataServer(t)

	if _, err := s.handleAskHealth(json.RawMessage(`{}`)); err == nil {
		t.Error("expected error for missing question")
	}
}

func TestHandleAskHealth_NoData(t *testing.T) {
	s := NewServer(&config.Config{ExportDir: t.TempDir()}, nil)

	_, err := s.handleAskHealth(json.RawMessage(`{"question":"how is my recovery?"}`))
	if err == nil {
		t.Error("expected error for empty export directory")
	}
}

func TestHandleGetCurrentMetrics(t *testing.T) {
	s := newDataServer(t)

	result, err := s.handleGetCurrentMetrics(json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("handleGetCurrentMetrics: %v", err)
	}

	res := result.(CurrentMetricsResult)
	if len(res.Metrics) == 0 {
		t.Fatal("expected current metrics")
	}

	foundRecovery := false
	for _, m := range res.Metrics {
		if strings.Contains(strings.ToLower(m.Title), "recovery") {
			foundRecovery = true
			if !strings.Contains(m.Value, "72") {
				t.Errorf("recovery should reflect the latest row: %+v", m)
			}
		}
	}
	if !foundRecovery {
		t.Errorf("no recovery entry in %+v", res.Metrics)
	}
}

func TestHandleGetForecast(t *testing.T) {
	s := newDataServer(t)

	result, err := s.handleGetForecast(json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("handleGetForecast: %v", err)
	}

	res := result.(ForecastResult)
	if len(res.Predictions)+res.Withheld != 4 {
		t.Errorf("predictions + withheld should cover all four kinds: %d shown, %d withheld",
			len(res.Predictions), res.Withheld)
	}
	for _, p := range res.Predictions {
		if !p.Displayable() {
			t.Errorf("withheld prediction surfaced: %+v", p)
		}
	}
}

func TestHandleGetSleepDebt(t *testing.T) {
	s := newDataServer(t)

	result, err := s.handleGetSleepDebt(json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("handleGetSleepDebt: %v", err)
	}

	res := result.(SleepDebtResult)
	if len(res.Facts) == 0 {
		t.Fatal("expected sleep debt facts")
	}
	joined := strings.Join(res.Facts, "\n")
	if !strings.Contains(joined, "sleep debt") {
		t.Errorf("facts should mention sleep debt: %q", joined)
	}
}

func TestHandleGetGoals(t *testing.T) {
	s := newDataServer(t)

	if err := s.db.SaveGoal(goal.Goal{
		ID:        "g1",
		Kind:      goal.KindRecovery,
		Title:     "Raise recovery",
		Direction: goal.HigherIsBetter,
	}); err != nil {
		t.Fatalf("SaveGoal: %v", err)
	}

	result, err := s.handleGetGoals(json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("handleGetGoals: %v", err)
	}

	data, _ := json.Marshal(result)
	if !strings.Contains(string(data), "Raise recovery") {
		t.Errorf("goals result missing saved goal: %s", data)
	}
}

func TestHandleGetGoals_NoStore(t *testing.T) {
	s := NewServer(&config.Config{ExportDir: "/tmp/nope"}, nil)

	if _, err := s.handleGetGoals(json.RawMessage(`{}`)); err == nil {
		t.Error("expected error when goal store is unavailable")
	}
}
