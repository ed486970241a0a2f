package batch

import (
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/sim"
)

// monitorInterval is the progress report cadence.
const monitorInterval = 500 * time.Millisecond

// Runner executes a parameter sweep. One job per axis combination; each
// job trains Iterations fresh simulations for Generations each, emitting
// one LogEntry per generation boundary.
type Runner struct {
	Iterations  int
	Generations int
	Workers     int // 0 picks runtime.NumCPU()
	Seed        int64
	Log         *slog.Logger
}

// Result is the outcome of one sweep run.
type Result struct {
	RunID   string
	Combos  int
	Entries []LogEntry
	Elapsed time.Duration
}

// job is one combination handed to a worker.
type job struct {
	combo int
	cfg   *config.Config
}

// sweepState holds what one run shares across goroutines: the entry
// channel the collector drains and the progress counter the monitor polls.
type sweepState struct {
	runner  *Runner
	runID   string
	entries chan LogEntry
	done    atomic.Int64
	total   int64
	log     *slog.Logger
}

// Run walks every combination of axes over base. Entries from a single
// iteration arrive in generation order; across workers the interleaving
// is arbitrary.
func (r *Runner) Run(base config.Config, axes Axes) *Result {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	combos := axes.Combinations(base)
	st := &sweepState{
		runner:  r,
		runID:   uuid.NewString(),
		entries: make(chan LogEntry, 256),
		total:   int64(len(combos)) * int64(r.Iterations),
		log:     log,
	}

	log.Info("sweep starting",
		"run_id", st.runID,
		"combos", humanize.Comma(int64(len(combos))),
		"iterations", r.Iterations,
		"generations", r.Generations,
		"workers", workers,
	)

	start := time.Now()

	collected := make([]LogEntry, 0, len(combos)*r.Iterations*r.Generations)
	var collectorWG sync.WaitGroup
	collectorWG.Add(1)
	go func() {
		defer collectorWG.Done()
		for e := range st.entries {
			collected = append(collected, e)
		}
	}()

	stopMonitor := make(chan struct{})
	var monitorWG sync.WaitGroup
	monitorWG.Add(1)
	go func() {
		defer monitorWG.Done()
		st.monitor(start, stopMonitor)
	}()

	jobs := make(chan job)
	var workerWG sync.WaitGroup
	for w := 0; w < workers; w++ {
		workerWG.Add(1)
		go func(workerID int) {
			defer workerWG.Done()
			rng := rand.New(rand.NewSource(r.Seed + int64(workerID)))
			for jb := range jobs {
				st.runJob(jb, rng)
			}
		}(w)
	}

	for i := range combos {
		jobs <- job{combo: i, cfg: &combos[i]}
	}
	close(jobs)
	workerWG.Wait()
	close(st.entries)
	collectorWG.Wait()
	close(stopMonitor)
	monitorWG.Wait()

	elapsed := time.Since(start)
	log.Info("sweep complete",
		"run_id", st.runID,
		"entries", humanize.Comma(int64(len(collected))),
		"elapsed", formatDuration(elapsed),
	)

	return &Result{
		RunID:   st.runID,
		Combos:  len(combos),
		Entries: collected,
		Elapsed: elapsed,
	}
}

// runJob runs all iterations for one combination. A panic is contained
// here: the combination is logged as failed and its remaining iterations
// counted so the progress total still adds up.
func (st *sweepState) runJob(jb job, rng *rand.Rand) {
	completed := 0
	defer func() {
		if rec := recover(); rec != nil {
			st.log.Error("combination panicked", "combo", jb.combo, "panic", rec)
			st.done.Add(int64(st.runner.Iterations - completed))
		}
	}()

	for iter := 0; iter < st.runner.Iterations; iter++ {
		if err := st.runIteration(jb, iter, rng); err != nil {
			st.log.Error("iteration failed",
				"combo", jb.combo, "iteration", iter, "error", err)
		}
		completed++
		st.done.Add(1)
	}
}

// runIteration trains one fresh simulation, emitting one entry per
// completed generation.
func (st *sweepState) runIteration(jb job, iter int, rng *rand.Rand) error {
	s, err := sim.RandomSimulation(jb.cfg, rng)
	if err != nil {
		return fmt.Errorf("building simulation: %w", err)
	}

	for g := 0; g < st.runner.Generations; g++ {
		stats, err := s.Train(rng)
		if err != nil {
			return fmt.Errorf("generation %d: %w", g, err)
		}
		st.entries <- newLogEntry(st.runID, jb.combo, iter, jb.cfg, stats)
	}
	return nil
}

// monitor reports progress until stopped.
func (st *sweepState) monitor(start time.Time, stop <-chan struct{}) {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			cur := st.done.Load()
			if cur == 0 {
				continue
			}
			elapsed := time.Since(start)
			perStep := elapsed / time.Duration(cur)
			eta := time.Duration(st.total-cur) * perStep
			st.log.Info("sweep progress",
				"done", humanize.Comma(cur),
				"total", humanize.Comma(st.total),
				"pct", fmt.Sprintf("%.1f%%", float64(cur)*100/float64(st.total)),
				"elapsed", formatDuration(elapsed),
				"eta", formatDuration(eta),
			)
		}
	}
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
