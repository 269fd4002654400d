// Package history records run outcomes and per-hook results in a local
// SQLite database, and feeds them back to the `hookline history` command.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// RunRecord is one row of the runs table.
type RunRecord struct {
	ID         string
	Event      string
	StartedAt  time.Time
	FinishedAt time.Time
	Verdict    string
}

// HookRecord is one row of the hook_results table.
type HookRecord struct {
	RunID    string
	Position int
	Name     string
	Status   string
	Output   string
}

// Store manages the SQLite run-history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the database at dbPath and
// initializes the schema. ":memory:" is supported for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks held by
	// a concurrent hookline process.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRun inserts a new run row and returns its id.
func (s *Store) BeginRun(event string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, event, started_at) VALUES (?, ?, ?)",
		id, event, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("record run start: %w", err)
	}
	return id, nil
}

// RecordHookResult appends one hook result to a run.
func (s *Store) RecordHookResult(runID string, position int, name, status, output string) error {
	_, err := s.db.Exec(
		"INSERT INTO hook_results (run_id, position, name, status, output) VALUES (?, ?, ?, ?, ?)",
		runID, position, name, status, output,
	)
	if err != nil {
		return fmt.Errorf("record hook result: %w", err)
	}
	return nil
}

// FinishRun stamps a run with its terminal verdict.
func (s *Store) FinishRun(runID, verdict string) error {
	_, err := s.db.Exec(
		"UPDATE runs SET finished_at = ?, verdict = ? WHERE id = ?",
		time.Now().UTC(), verdict, runID,
	)
	if err != nil {
		return fmt.Errorf("record run finish: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, event, started_at, COALESCE(finished_at, started_at), verdict FROM runs ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Event, &r.StartedAt, &r.FinishedAt, &r.Verdict); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// HookResults returns the hook results of one run in execution order.
func (s *Store) HookResults(runID string) ([]HookRecord, error) {
	rows, err := s.db.Query(
		"SELECT run_id, position, name, status, output FROM hook_results WHERE run_id = ? ORDER BY position",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query hook results: %w", err)
	}
	defer rows.Close()

	var results []HookRecord
	for rows.Next() {
		var h HookRecord
		if err := rows.Scan(&h.RunID, &h.Position, &h.Name, &h.Status, &h.Output); err != nil {
			return nil, fmt.Errorf("scan hook result: %w", err)
		}
		results = append(results, h)
	}
	return results, rows.Err()
}

// Prune deletes runs older than keepDays. Zero or negative keeps
// everything.
func (s *Store) Prune(keepDays int) error {
	if keepDays <= 0 {
		return nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -keepDays)
	if _, err := s.db.Exec("DELETE FROM runs WHERE started_at < ?", cutoff); err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}
