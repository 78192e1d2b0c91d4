package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one pipeline invocation.
type Run struct {
	ID         int64
	RunID      string
	Mode       string
	DryRun     bool
	StartedAt  int64
	FinishedAt *int64
	Status     string
	Counts     RunCounts
}

// RunCounts aggregates unit outcomes for a run.
type RunCounts struct {
	WeeksDone     int
	WeeksSkipped  int
	WeeksFailed   int
	FilesArchived int
	FilesSkipped  int
	FilesFailed   int
}

// RunUnit is one week, file or date processed within a run.
type RunUnit struct {
	ID        int64
	RunID     string
	UnitType  string
	Name      string
	Outcome   string
	Error     string
	CreatedAt int64
}

// BeginRun records the start of a pipeline invocation.
func (db *DB) BeginRun(mode string, dryRun bool) (*Run, error) {
	runID := uuid.NewString()
	now := time.Now().UnixMilli()

	result, err := db.Exec(`
		INSERT INTO runs (run_id, mode, dry_run, started_at, status)
		VALUES (?, ?, ?, ?, 'running')
	`, runID, mode, boolToInt(dryRun), now)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	id, _ := result.LastInsertId()
	return &Run{
		ID:        id,
		RunID:     runID,
		Mode:      mode,
		DryRun:    dryRun,
		StartedAt: now,
		Status:    "running",
	}, nil
}

// FinishRun closes a run with its final status and counters.
func (db *DB) FinishRun(runID, status string, c RunCounts) error {
	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		UPDATE runs SET finished_at = ?, status = ?,
			weeks_done = ?, weeks_skipped = ?, weeks_failed = ?,
			files_archived = ?, files_skipped = ?, files_failed = ?
		WHERE run_id = ?
	`, now, status,
		c.WeeksDone, c.WeeksSkipped, c.WeeksFailed,
		c.FilesArchived, c.FilesSkipped, c.FilesFailed,
		runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no run found for %s", runID)
	}
	return nil
}

// RecordUnit records the outcome of one unit of work within a run.
func (db *DB) RecordUnit(runID, unitType, name, outcome, errMsg string) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO run_units (run_id, unit_type, name, outcome, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, unitType, name, outcome, errMsg, now)
	if err != nil {
		return fmt.Errorf("record unit: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT id, run_id, mode, dry_run, started_at, finished_at, status,
			weeks_done, weeks_skipped, weeks_failed,
			files_archived, files_skipped, files_failed
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var dry int
		if err := rows.Scan(&r.ID, &r.RunID, &r.Mode, &dry, &r.StartedAt, &r.FinishedAt, &r.Status,
			&r.Counts.WeeksDone, &r.Counts.WeeksSkipped, &r.Counts.WeeksFailed,
			&r.Counts.FilesArchived, &r.Counts.FilesSkipped, &r.Counts.FilesFailed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.DryRun = dry != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunUnits returns all unit outcomes for a run, in processing order.
func (db *DB) RunUnits(runID string) ([]RunUnit, error) {
	rows, err := db.Query(`
		SELECT id, run_id, unit_type, name, outcome, COALESCE(error, ''), created_at
		FROM run_units WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("run units: %w", err)
	}
	defer rows.Close()

	var units []RunUnit
	for rows.Next() {
		var u RunUnit
		if err := rows.Scan(&u.ID, &u.RunID, &u.UnitType, &u.Name, &u.Outcome, &u.Error, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
