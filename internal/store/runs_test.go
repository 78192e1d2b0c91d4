package store

import (
	"testing"
)

func TestBeginRun(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	r, err := db.BeginRun("run", false)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if r.RunID == "" {
		t.Error("RunID should be set")
	}
	if r.Status != "running" {
		t.Errorf("Status = %q, want running", r.Status)
	}
	if r.DryRun {
		t.Error("DryRun should be false")
	}
}

func TestFinishRun(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	r, err := db.BeginRun("auto", true)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	counts := RunCounts{WeeksDone: 2, WeeksFailed: 1, FilesArchived: 3}
	if err := db.FinishRun(r.RunID, "failed", counts); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := db.RecentRuns(1)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.Status != "failed" {
		t.Errorf("Status = %q, want failed", got.Status)
	}
	if got.FinishedAt == nil {
		t.Error("FinishedAt should be set")
	}
	if !got.DryRun {
		t.Error("DryRun should be true")
	}
	if got.Counts != counts {
		t.Errorf("Counts = %+v, want %+v", got.Counts, counts)
	}
}

func TestFinishRunUnknown(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	if err := db.FinishRun("no-such-run", "ok", RunCounts{}); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestRecordAndListUnits(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	r, _ := db.BeginRun("run", false)

	if err := db.RecordUnit(r.RunID, "week", "2025-W01", "done", ""); err != nil {
		t.Fatalf("RecordUnit: %v", err)
	}
	if err := db.RecordUnit(r.RunID, "file", "2024-12-01.md", "failed", "ollama timeout"); err != nil {
		t.Fatalf("RecordUnit: %v", err)
	}

	units, err := db.RunUnits(r.RunID)
	if err != nil {
		t.Fatalf("RunUnits: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2", len(units))
	}
	if units[0].UnitType != "week" || units[0].Outcome != "done" {
		t.Errorf("unit 0 = %+v", units[0])
	}
	if units[1].Error != "ollama timeout" {
		t.Errorf("unit 1 error = %q", units[1].Error)
	}
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	first, _ := db.BeginRun("run", false)
	db.BeginRun("auto", false)
	last, _ := db.BeginRun("archive", false)

	runs, err := db.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].RunID != last.RunID {
		t.Errorf("runs[0] = %s, want newest %s", runs[0].RunID, last.RunID)
	}
	for _, r := range runs {
		if r.RunID == first.RunID {
			t.Error("oldest run should be cut by limit")
		}
	}
}

func TestSchemaVersion(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	v, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != len(migrations) {
		t.Errorf("version = %d, want %d", v, len(migrations))
	}
}
