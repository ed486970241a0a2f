package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/flock/batch"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sweep.db")
	s := New(path)
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func testRun(id string, startedAt time.Time) Run {
	return Run{
		ID:          id,
		StartedAt:   startedAt,
		Iterations:  15,
		Generations: 30,
		Combos:      6400,
	}
}

func testEntry(runID string, combo, iteration, generation int) batch.LogEntry {
	return batch.LogEntry{
		RunID:          runID,
		Combo:          combo,
		Iteration:      iteration,
		Generation:     generation,
		BrainNeurons:   5,
		EyeFovRange:    0.25,
		EyeFovAngleDeg: 90,
		EyeCells:       9,
		MutationChance: 0.01,
		MutationCoeff:  0.3,
		MinFitness:     1,
		MaxFitness:     12.5,
		AvgFitness:     6.25,
		MedianFitness:  6,
	}
}

func TestStoreUninitialized(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "sweep.db"))

	if err := s.SaveRun(context.Background(), testRun("r", time.Now())); err == nil {
		t.Fatal("SaveRun() on uninitialized store should fail")
	}
	if _, err := s.Runs(context.Background()); err == nil {
		t.Fatal("Runs() on uninitialized store should fail")
	}
}

func TestStoreInitRequiresPath(t *testing.T) {
	if err := New("").Init(context.Background()); err == nil {
		t.Fatal("Init() with empty path should fail")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC)
	run := testRun("run-1", started)
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	entries := []batch.LogEntry{
		testEntry("run-1", 0, 0, 0),
		testEntry("run-1", 0, 0, 1),
		testEntry("run-1", 1, 0, 0),
	}
	if err := s.AppendEntries(ctx, "run-1", entries); err != nil {
		t.Fatalf("AppendEntries() error = %v", err)
	}

	got, err := s.Entries(ctx, "run-1")
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("Entries() returned %d rows, want %d", len(got), len(entries))
	}
	for i := range entries {
		if got[i] != entries[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], entries[i])
		}
	}

	runs, err := s.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Runs() returned %d runs, want 1", len(runs))
	}
	if runs[0].ID != run.ID || runs[0].Combos != run.Combos {
		t.Errorf("Runs()[0] = %+v, want %+v", runs[0], run)
	}
	if !runs[0].StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", runs[0].StartedAt, started)
	}
}

func TestStoreAppendEntriesEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.AppendEntries(ctx, "run-1", nil); err != nil {
		t.Fatalf("AppendEntries() with no entries error = %v", err)
	}
	got, err := s.Entries(ctx, "run-1")
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Entries() returned %d rows, want 0", len(got))
	}
}

func TestStoreEntriesFiltersByRun(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.AppendEntries(ctx, "run-a", []batch.LogEntry{testEntry("run-a", 0, 0, 0)}); err != nil {
		t.Fatalf("AppendEntries(run-a) error = %v", err)
	}
	if err := s.AppendEntries(ctx, "run-b", []batch.LogEntry{
		testEntry("run-b", 0, 0, 0),
		testEntry("run-b", 0, 0, 1),
	}); err != nil {
		t.Fatalf("AppendEntries(run-b) error = %v", err)
	}

	got, err := s.Entries(ctx, "run-b")
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Entries(run-b) returned %d rows, want 2", len(got))
	}
	for i, e := range got {
		if e.RunID != "run-b" {
			t.Errorf("entry %d RunID = %q, want run-b", i, e.RunID)
		}
	}
}

func TestStoreSaveRunUpsert(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	run := testRun("run-1", time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC))
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	run.Combos = 16
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() second time error = %v", err)
	}

	runs, err := s.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Runs() returned %d runs after upsert, want 1", len(runs))
	}
	if runs[0].Combos != 16 {
		t.Errorf("Combos = %d after upsert, want 16", runs[0].Combos)
	}
}

func TestStoreLatestRun(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.LatestRun(ctx); err != nil || ok {
		t.Fatalf("LatestRun() on empty store = ok %v, err %v; want false, nil", ok, err)
	}

	base := time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC)
	if err := s.SaveRun(ctx, testRun("older", base)); err != nil {
		t.Fatalf("SaveRun(older) error = %v", err)
	}
	if err := s.SaveRun(ctx, testRun("newer", base.Add(time.Minute))); err != nil {
		t.Fatalf("SaveRun(newer) error = %v", err)
	}

	latest, ok, err := s.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun() error = %v", err)
	}
	if !ok {
		t.Fatal("LatestRun() found no runs")
	}
	if latest.ID != "newer" {
		t.Errorf("LatestRun() = %q, want newer", latest.ID)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sweep.db")

	s := New(path)
	if err := s.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	run := testRun("run-1", time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC))
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if err := s.AppendEntries(ctx, run.ID, []batch.LogEntry{testEntry(run.ID, 0, 0, 0)}); err != nil {
		t.Fatalf("AppendEntries() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened := New(path)
	if err := reopened.Init(ctx); err != nil {
		t.Fatalf("Init() after reopen error = %v", err)
	}
	t.Cleanup(func() { reopened.Close() })

	latest, ok, err := reopened.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun() after reopen error = %v", err)
	}
	if !ok || latest.ID != run.ID {
		t.Fatalf("LatestRun() after reopen = %+v, ok %v; want run-1", latest, ok)
	}
	entries, err := reopened.Entries(ctx, run.ID)
	if err != nil {
		t.Fatalf("Entries() after reopen error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Entries() after reopen returned %d rows, want 1", len(entries))
	}
}
