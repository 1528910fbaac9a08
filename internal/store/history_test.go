package store

import (
	"path/filepath"
	"testing"

	"clwrapped/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveAndListRuns(t *testing.T) {
	db := openTestDB(t)

	first := &model.WrappedMetrics{
		TotalSessions: 10, TotalMessages: 120,
		TotalInputTokens: 5000, TotalOutputTokens: 2500,
		TotalCostUSD: 1.25, LongestStreakDays: 4, CurrentStreakDays: 2,
		UniqueProjects: 3, Personality: "The Night Owl", CodingCity: "Tokyo",
	}
	second := &model.WrappedMetrics{
		TotalSessions: 12, TotalCostUSD: 1.50,
		Personality: "The Night Owl", CodingCity: "Tokyo",
	}

	if err := db.SaveRun(first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := db.SaveRun(second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].TotalSessions != 12 {
		t.Errorf("newest run sessions = %d, want 12 (newest first)", runs[0].TotalSessions)
	}
	if runs[1].TotalSessions != 10 || runs[1].Personality != "The Night Owl" {
		t.Errorf("older run = %+v", runs[1])
	}
	if runs[1].RunAt.IsZero() {
		t.Error("RunAt must round-trip")
	}
}

func TestLoadRunPayload(t *testing.T) {
	db := openTestDB(t)

	saved := &model.WrappedMetrics{
		TotalSessions:  7,
		ToolFrequency:  map[string]int{"Read": 42, "Edit": 17},
		ModelFrequency: map[string]int{"claude-sonnet-4-5": 7},
		Personality:    "The Sprinter",
	}
	if err := db.SaveRun(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err := db.ListRuns(1)
	if err != nil || len(runs) != 1 {
		t.Fatalf("list: %v (%d runs)", err, len(runs))
	}

	loaded, err := db.LoadRunPayload(runs[0].ID)
	if err != nil {
		t.Fatalf("load payload: %v", err)
	}
	if loaded.TotalSessions != 7 || loaded.ToolFrequency["Read"] != 42 {
		t.Errorf("payload round-trip mismatch: %+v", loaded)
	}
}

func TestLoadRunPayload_MissingID(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.LoadRunPayload(999); err == nil {
		t.Error("missing run must return an error")
	}
}
