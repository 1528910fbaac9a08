// Package store keeps a SQLite history of wrapped runs, so successive
// reports can show how the numbers moved since the last one.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"clwrapped/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DB wraps the run-history database.
type DB struct {
	db *sql.DB
}

// DefaultPath returns the run-history database location under the user's
// local data directory.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "clwrapped", "history.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "clwrapped", "history.db")
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// RunSnapshot is one stored run with its headline numbers.
type RunSnapshot struct {
	ID                int64
	RunAt             time.Time
	TotalSessions     int
	TotalMessages     int
	TotalInputTokens  int64
	TotalOutputTokens int64
	TotalCostUSD      float64
	LongestStreakDays int
	CurrentStreakDays int
	UniqueProjects    int
	Personality       string
	CodingCity        string
}

// SaveRun stores a snapshot of the metrics object, headline columns for
// quick listing plus the full serialized payload.
func (d *DB) SaveRun(m *model.WrappedMetrics) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}

	_, err = d.db.Exec(`INSERT INTO runs
		(run_at, total_sessions, total_messages, total_input_tokens,
		 total_output_tokens, total_cost_usd, longest_streak_days,
		 current_streak_days, unique_projects, personality, coding_city, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		m.TotalSessions, m.TotalMessages, m.TotalInputTokens,
		m.TotalOutputTokens, m.TotalCostUSD, m.LongestStreakDays,
		m.CurrentStreakDays, m.UniqueProjects, m.Personality, m.CodingCity,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent snapshots, newest first.
func (d *DB) ListRuns(limit int) ([]RunSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.db.Query(`SELECT id, run_at, total_sessions, total_messages,
		total_input_tokens, total_output_tokens, total_cost_usd,
		longest_streak_days, current_streak_days, unique_projects,
		personality, coding_city
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []RunSnapshot
	for rows.Next() {
		var r RunSnapshot
		var runAt string
		if err := rows.Scan(&r.ID, &runAt, &r.TotalSessions, &r.TotalMessages,
			&r.TotalInputTokens, &r.TotalOutputTokens, &r.TotalCostUSD,
			&r.LongestStreakDays, &r.CurrentStreakDays, &r.UniqueProjects,
			&r.Personality, &r.CodingCity); err != nil {
			return nil, err
		}
		r.RunAt, _ = time.Parse(time.RFC3339, runAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadRunPayload returns the full metrics object stored for one run.
func (d *DB) LoadRunPayload(id int64) (*model.WrappedMetrics, error) {
	var payload string
	err := d.db.QueryRow("SELECT payload FROM runs WHERE id = ?", id).Scan(&payload)
	if err != nil {
		return nil, err
	}
	var m model.WrappedMetrics
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return nil, fmt.Errorf("decoding stored run %d: %w", id, err)
	}
	return &m, nil
}
