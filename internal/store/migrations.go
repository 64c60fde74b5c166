package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS goals (
			id             TEXT PRIMARY KEY,
			kind           TEXT NOT NULL,
			title          TEXT NOT NULL,
			current_value  REAL NOT NULL,
			baseline_value REAL NOT NULL,
			target_value   REAL NOT NULL,
			unit           TEXT NOT NULL,
			direction      TEXT NOT NULL,
			progress       REAL NOT NULL,
			trend          TEXT NOT NULL,
			created_at     TEXT NOT NULL,
			updated_at     TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS forecast_snapshots (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at  TEXT NOT NULL,
			row_count INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS predictions (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id     INTEGER NOT NULL REFERENCES forecast_snapshots(id),
			kind            TEXT NOT NULL,
			predicted_value REAL NOT NULL,
			confidence      REAL NOT NULL,
			timeframe       TEXT NOT NULL,
			reasoning       TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_predictions_snapshot
			ON predictions(snapshot_id)`,

		`DELETE FROM schema_version`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return err
		}
	}

	_, err := db.conn.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion)
	return err
}
