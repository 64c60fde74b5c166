package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/vitalwatch/internal/goal"
)

// SaveGoal inserts or replaces a goal by ID.
func (db *DB) SaveGoal(g goal.Goal) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO goals
			(id, kind, title, current_value, baseline_value, target_value,
			 unit, direction, progress, trend, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, string(g.Kind), g.Title, g.CurrentValue, g.BaselineValue,
		g.TargetValue, g.Unit, string(g.Direction), g.Progress,
		string(g.Trend), g.CreatedAt.Format(time.RFC3339),
		g.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving goal %s: %w", g.ID, err)
	}
	return nil
}

// GetGoal fetches a single goal by ID. Returns sql.ErrNoRows wrapped when
// the goal does not exist.
func (db *DB) GetGoal(id string) (goal.Goal, error) {
	row := db.conn.QueryRow(`
		SELECT id, kind, title, current_value, baseline_value, target_value,
		       unit, direction, progress, trend, created_at, updated_at
		FROM goals WHERE id = ?`, id)

	g, err := scanGoal(row)
	if err != nil {
		return goal.Goal{}, fmt.Errorf("loading goal %s: %w", id, err)
	}
	return g, nil
}

// LoadGoals returns all goals, newest first.
func (db *DB) LoadGoals() ([]goal.Goal, error) {
	rows, err := db.conn.Query(`
		SELECT id, kind, title, current_value, baseline_value, target_value,
		       unit, direction, progress, trend, created_at, updated_at
		FROM goals ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}
	defer rows.Close()

	var goals []goal.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// DeleteGoal removes a goal by ID. Deleting a missing goal is not an error.
func (db *DB) DeleteGoal(id string) error {
	_, err := db.conn.Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting goal %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (goal.Goal, error) {
	var (
		g                    goal.Goal
		kind, dir, trend     string
		createdAt, updatedAt string
	)
	err := row.Scan(&g.ID, &kind, &g.Title, &g.CurrentValue, &g.BaselineValue,
		&g.TargetValue, &g.Unit, &dir, &g.Progress, &trend,
		&createdAt, &updatedAt)
	if err != nil {
		return goal.Goal{}, err
	}

	g.Kind = goal.Kind(kind)
	g.Direction = goal.Direction(dir)
	g.Trend = goal.Trend(trend)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		g.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		g.UpdatedAt = t
	}
	return g, nil
}

// IsNotFound reports whether an error from GetGoal means the goal does not
// exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
