package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"truetimer/internal/timelog"
)

// timeFormat sorts lexically in the same order as the times it encodes.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// Repository keeps game variables and the timer run log in SQLite.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases shared across queries
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	repo := &Repository{db: db}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return repo, nil
}

func (r *Repository) init() error {
	variablesQuery := `
	CREATE TABLE IF NOT EXISTS variables (
		id INTEGER PRIMARY KEY,
		value INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)
	`
	if _, err := r.db.Exec(variablesQuery); err != nil {
		return err
	}

	runsQuery := `
	CREATE TABLE IF NOT EXISTS timer_runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		ended_at TEXT NOT NULL,
		start_frames INTEGER NOT NULL,
		end_frames INTEGER NOT NULL,
		count_up INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL
	)
	`
	_, err := r.db.Exec(runsQuery)
	return err
}

// SetValue stores value in variable id.
func (r *Repository) SetValue(id int, value int) error {
	_, err := r.db.Exec(
		`INSERT INTO variables (id, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		id, value, time.Now().UTC().Format(timeFormat),
	)
	return err
}

// Value returns variable id. Unset variables read as 0.
func (r *Repository) Value(id int) (int, error) {
	var value int
	err := r.db.QueryRow("SELECT value FROM variables WHERE id = ?", id).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (r *Repository) CreateRun(run *timelog.Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	countUp := 0
	if run.CountUp {
		countUp = 1
	}
	_, err := r.db.Exec(
		"INSERT INTO timer_runs (id, started_at, ended_at, start_frames, end_frames, count_up, outcome) VALUES (?, ?, ?, ?, ?, ?, ?)",
		run.ID.String(),
		run.StartedAt.UTC().Format(timeFormat),
		run.EndedAt.UTC().Format(timeFormat),
		run.StartFrames,
		run.EndFrames,
		countUp,
		string(run.Outcome),
	)
	return err
}

// RecentRuns returns up to limit runs, newest first.
func (r *Repository) RecentRuns(limit int) ([]timelog.Run, error) {
	rows, err := r.db.Query(
		"SELECT id, started_at, ended_at, start_frames, end_frames, count_up, outcome FROM timer_runs ORDER BY ended_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []timelog.Run
	for rows.Next() {
		var run timelog.Run
		var id, startedAt, endedAt, outcome string
		var countUp int
		if err := rows.Scan(&id, &startedAt, &endedAt, &run.StartFrames, &run.EndFrames, &countUp, &outcome); err != nil {
			return nil, err
		}
		run.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("bad run id %q: %w", id, err)
		}
		run.StartedAt, _ = time.Parse(timeFormat, startedAt)
		run.EndedAt, _ = time.Parse(timeFormat, endedAt)
		run.CountUp = countUp == 1
		run.Outcome = timelog.Outcome(outcome)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *Repository) Close() error {
	return r.db.Close()
}
