package store

import (
	"testing"
	"time"

	"github.com/blackwell-systems/vitalwatch/internal/forecast"
	"github.com/blackwell-systems/vitalwatch/internal/goal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testGoal(id string) goal.Goal {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	return goal.Goal{
		ID:            id,
		Kind:          goal.KindRecovery,
		Title:         "Raise recovery baseline",
		CurrentValue:  55,
		BaselineValue: 50,
		TargetValue:   70,
		Unit:          "%",
		Direction:     goal.HigherIsBetter,
		Progress:      78.6,
		Trend:         goal.TrendImproving,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestGoalRoundTrip(t *testing.T) {
	db := openTestDB(t)

	want := testGoal("g1")
	if err := db.SaveGoal(want); err != nil {
		t.Fatalf("SaveGoal: %v", err)
	}

	got, err := db.GetGoal("g1")
	if err != nil {
		t.Fatalf("GetGoal: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveGoal_ReplacesByID(t *testing.T) {
	db := openTestDB(t)

	g := testGoal("g1")
	if err := db.SaveGoal(g); err != nil {
		t.Fatalf("SaveGoal: %v", err)
	}
	g.CurrentValue = 62
	g.Progress = 88.6
	if err := db.SaveGoal(g); err != nil {
		t.Fatalf("SaveGoal update: %v", err)
	}

	goals, err := db.LoadGoals()
	if err != nil {
		t.Fatalf("LoadGoals: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("got %d goals, want 1", len(goals))
	}
	if goals[0].CurrentValue != 62 {
		t.Errorf("update not persisted: current=%v", goals[0].CurrentValue)
	}
}

func TestGetGoal_NotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetGoal("missing")
	if !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestDeleteGoal(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveGoal(testGoal("g1")); err != nil {
		t.Fatalf("SaveGoal: %v", err)
	}
	if err := db.DeleteGoal("g1"); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	if _, err := db.GetGoal("g1"); !IsNotFound(err) {
		t.Errorf("goal still present after delete: %v", err)
	}

	// Deleting again is a no-op.
	if err := db.DeleteGoal("g1"); err != nil {
		t.Errorf("second delete errored: %v", err)
	}
}

func TestForecastHistory(t *testing.T) {
	db := openTestDB(t)

	preds := []forecast.Prediction{
		{Kind: forecast.KindRecovery, PredictedValue: 63, Confidence: 0.85, Timeframe: "next 7 days", Reasoning: "steady baseline"},
		{Kind: forecast.KindInjuryRisk, PredictedValue: 20, Confidence: 0.72, Timeframe: "next 14 days", Reasoning: "low risk profile"},
	}
	takenAt := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	id, err := db.SaveForecast(takenAt, 30, preds)
	if err != nil {
		t.Fatalf("SaveForecast: %v", err)
	}
	if id == 0 {
		t.Error("snapshot id should be non-zero")
	}

	if _, err := db.SaveForecast(takenAt.Add(24*time.Hour), 31, preds[:1]); err != nil {
		t.Fatalf("second SaveForecast: %v", err)
	}

	snapshots, err := db.RecentForecasts(10)
	if err != nil {
		t.Fatalf("RecentForecasts: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snapshots))
	}

	// Newest first.
	if snapshots[0].RowCount != 31 || snapshots[1].RowCount != 30 {
		t.Errorf("snapshot order wrong: %+v", snapshots)
	}
	if len(snapshots[1].Predictions) != 2 {
		t.Fatalf("got %d predictions, want 2", len(snapshots[1].Predictions))
	}
	got := snapshots[1].Predictions[0]
	if got.Kind != forecast.KindRecovery || got.PredictedValue != 63 || got.Confidence != 0.85 {
		t.Errorf("prediction mismatch: %+v", got)
	}
}

func TestRecentForecasts_Limit(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := db.SaveForecast(base.Add(time.Duration(i)*time.Hour), i, nil); err != nil {
			t.Fatalf("SaveForecast %d: %v", i, err)
		}
	}

	snapshots, err := db.RecentForecasts(2)
	if err != nil {
		t.Fatalf("RecentForecasts: %v", err)
	}
	if len(snapshots) != 2 {
		t.Errorf("got %d snapshots, want 2", len(snapshots))
	}
}
