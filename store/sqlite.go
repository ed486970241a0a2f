// Package store persists sweep runs and their per-generation entries in
// a sqlite database so analysis can run long after the sweep finished.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pthm-cable/flock/batch"
)

// Run identifies one sweep execution.
type Run struct {
	ID          string
	StartedAt   time.Time
	Iterations  int
	Generations int
	Combos      int
}

// Store is a sqlite-backed sweep archive.
type Store struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// New creates a store for the database at path. Call Init before use.
func New(path string) *Store {
	return &Store{path: path}
}

// Init opens the database and creates the schema if missing.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

// SaveRun inserts or updates a run row.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, iterations, generations, combos)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			iterations = excluded.iterations,
			generations = excluded.generations,
			combos = excluded.combos
	`, run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Iterations, run.Generations, run.Combos)
	return err
}

// AppendEntries writes a batch of entries for runID in one transaction.
func (s *Store) AppendEntries(ctx context.Context, runID string, entries []batch.LogEntry) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (
			run_id, combo, iteration, generation,
			brain_neurons, eye_fov_range, eye_fov_angle_deg, eye_cells,
			mutation_chance, mutation_coeff,
			min_fitness, max_fitness, avg_fitness, median_fitness
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			runID, e.Combo, e.Iteration, e.Generation,
			e.BrainNeurons, e.EyeFovRange, e.EyeFovAngleDeg, e.EyeCells,
			e.MutationChance, e.MutationCoeff,
			e.MinFitness, e.MaxFitness, e.AvgFitness, e.MedianFitness,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Entries returns runID's entries in append order.
func (s *Store) Entries(ctx context.Context, runID string) ([]batch.LogEntry, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT run_id, combo, iteration, generation,
			brain_neurons, eye_fov_range, eye_fov_angle_deg, eye_cells,
			mutation_chance, mutation_coeff,
			min_fitness, max_fitness, avg_fitness, median_fitness
		FROM entries WHERE run_id = ? ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []batch.LogEntry
	for rows.Next() {
		var e batch.LogEntry
		if err := rows.Scan(
			&e.RunID, &e.Combo, &e.Iteration, &e.Generation,
			&e.BrainNeurons, &e.EyeFovRange, &e.EyeFovAngleDeg, &e.EyeCells,
			&e.MutationChance, &e.MutationCoeff,
			&e.MinFitness, &e.MaxFitness, &e.AvgFitness, &e.MedianFitness,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Runs lists all stored runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, started_at, iterations, generations, combos
		FROM runs ORDER BY started_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recently started run, if any.
func (s *Store) LatestRun(ctx context.Context) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT id, started_at, iterations, generations, combos
		FROM runs ORDER BY started_at DESC LIMIT 1
	`)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}
	return run, true, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var startedAt string
	if err := row.Scan(&run.ID, &startedAt,
		&run.Iterations, &run.Generations, &run.Combos); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parsing started_at of run %s: %w", run.ID, err)
	}
	run.StartedAt = t
	return run, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			iterations INTEGER NOT NULL,
			generations INTEGER NOT NULL,
			combos INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS entries (
			run_id TEXT NOT NULL,
			combo INTEGER NOT NULL,
			iteration INTEGER NOT NULL,
			generation INTEGER NOT NULL,
			brain_neurons INTEGER NOT NULL,
			eye_fov_range REAL NOT NULL,
			eye_fov_angle_deg REAL NOT NULL,
			eye_cells INTEGER NOT NULL,
			mutation_chance REAL NOT NULL,
			mutation_coeff REAL NOT NULL,
			min_fitness REAL NOT NULL,
			max_fitness REAL NOT NULL,
			avg_fitness REAL NOT NULL,
			median_fitness REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS entries_run_idx ON entries(run_id);
	`)
	return err
}
