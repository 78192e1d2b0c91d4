package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "runs: one row per pipeline invocation",
		SQL: `
CREATE TABLE runs (
    id             INTEGER PRIMARY KEY,
    run_id         TEXT NOT NULL UNIQUE,
    mode           TEXT NOT NULL CHECK (mode IN ('run', 'auto', 'consolidate', 'archive', 'digest')),
    dry_run        INTEGER NOT NULL DEFAULT 0,
    started_at     INTEGER NOT NULL,
    finished_at    INTEGER,
    status         TEXT NOT NULL DEFAULT 'running' CHECK (status IN ('running', 'ok', 'failed')),

    weeks_done     INTEGER NOT NULL DEFAULT 0,
    weeks_skipped  INTEGER NOT NULL DEFAULT 0,
    weeks_failed   INTEGER NOT NULL DEFAULT 0,
    files_archived INTEGER NOT NULL DEFAULT 0,
    files_skipped  INTEGER NOT NULL DEFAULT 0,
    files_failed   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX idx_runs_started ON runs(started_at DESC);
`,
	},
	{
		Version:     2,
		Description: "run_units: per-unit outcomes within a run",
		SQL: `
CREATE TABLE run_units (
    id         INTEGER PRIMARY KEY,
    run_id     TEXT NOT NULL,
    unit_type  TEXT NOT NULL CHECK (unit_type IN ('week', 'file', 'date')),
    name       TEXT NOT NULL,
    outcome    TEXT NOT NULL CHECK (outcome IN ('done', 'skipped', 'failed')),
    error      TEXT,
    created_at INTEGER NOT NULL,

    FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE INDEX idx_units_run ON run_units(run_id);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
