package store

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/vitalwatch/internal/forecast"
)

// ForecastSnapshot is one saved forecast run, with its predictions.
type ForecastSnapshot struct {
	ID          int64                 `json:"id"`
	TakenAt     time.Time             `json:"taken_at"`
	RowCount    int                   `json:"row_count"`
	Predictions []forecast.Prediction `json:"predictions"`
}

// SaveForecast records a snapshot and its predictions in one transaction.
func (db *DB) SaveForecast(takenAt time.Time, rowCount int, preds []forecast.Prediction) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO forecast_snapshots (taken_at, row_count) VALUES (?, ?)",
		takenAt.Format(time.RFC3339), rowCount)
	if err != nil {
		return 0, fmt.Errorf("inserting snapshot: %w", err)
	}
	snapshotID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, p := range preds {
		_, err := tx.Exec(`
			INSERT INTO predictions
				(snapshot_id, kind, predicted_value, confidence, timeframe, reasoning)
			VALUES (?, ?, ?, ?, ?, ?)`,
			snapshotID, string(p.Kind), p.PredictedValue, p.Confidence,
			p.Timeframe, p.Reasoning)
		if err != nil {
			return 0, fmt.Errorf("inserting %s prediction: %w", p.Kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing snapshot: %w", err)
	}
	return snapshotID, nil
}

// RecentForecasts returns the most recent snapshots, newest first, with
// predictions populated.
func (db *DB) RecentForecasts(limit int) ([]ForecastSnapshot, error) {
	rows, err := db.conn.Query(`
		SELECT id, taken_at, row_count
		FROM forecast_snapshots
		ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("loading snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []ForecastSnapshot
	for rows.Next() {
		var (
			s       ForecastSnapshot
			takenAt string
		)
		if err := rows.Scan(&s.ID, &takenAt, &s.RowCount); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, takenAt); err == nil {
			s.TakenAt = t
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range snapshots {
		preds, err := db.predictionsFor(snapshots[i].ID)
		if err != nil {
			return nil, err
		}
		snapshots[i].Predictions = preds
	}
	return snapshots, nil
}

func (db *DB) predictionsFor(snapshotID int64) ([]forecast.Prediction, error) {
	rows, err := db.conn.Query(`
		SELECT kind, predicted_value, confidence, timeframe, reasoning
		FROM predictions WHERE snapshot_id = ? ORDER BY id`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("loading predictions for snapshot %d: %w", snapshotID, err)
	}
	defer rows.Close()

	var preds []forecast.Prediction
	for rows.Next() {
		var (
			p    forecast.Prediction
			kind string
		)
		if err := rows.Scan(&kind, &p.PredictedValue, &p.Confidence, &p.Timeframe, &p.Reasoning); err != nil {
			return nil, fmt.Errorf("scanning prediction: %w", err)
		}
		p.Kind = forecast.Kind(kind)
		preds = append(preds, p)
	}
	return preds, rows.Err()
}
