// Package main provides the sweep driver: simulate trains the parameter
// grid and writes the per-generation log, analyze aggregates a finished
// run into a report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/flock/batch"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/store"
)

func main() {
	setupLogging(false)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "simulate":
		err = runSimulate(os.Args[2:])
	case "analyze":
		err = runAnalyze(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: optimize <simulate|analyze> [flags]")
	fmt.Fprintln(os.Stderr, "  simulate  run the parameter sweep and write the per-generation log")
	fmt.Fprintln(os.Stderr, "  analyze   aggregate a sweep log into a report")
}

// setupLogging routes logs to stderr, leaving stdout to the analyze table.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr,
		&slog.HandlerOptions{Level: level})))
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	configPath := fs.String("config", "", "Base config YAML file (empty = use defaults)")
	output := fs.String("o", "sweep.csv", "Output CSV path for the sweep log")
	iterations := fs.Int("iterations", 15, "Fresh simulations per combination")
	generations := fs.Int("generations", 30, "Generations trained per simulation")
	workers := fs.Int("workers", 0, "Worker goroutines (0 = NumCPU)")
	seed := fs.Int64("seed", 42, "Base RNG seed; workers offset from it")
	dbPath := fs.String("db", "", "Optional sqlite database to persist the run")
	verbose := fs.Bool("v", false, "Enable debug logging")
	fs.Parse(args)
	setupLogging(*verbose)

	if err := config.Init(*configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	base := *config.Cfg()

	runner := &batch.Runner{
		Iterations:  *iterations,
		Generations: *generations,
		Workers:     *workers,
		Seed:        *seed,
	}

	result := runner.Run(base, batch.DefaultAxes())

	if err := batch.WriteLog(*output, result.Entries); err != nil {
		return err
	}
	slog.Info("sweep log written", "path", *output, "entries", len(result.Entries))

	if *dbPath != "" {
		if err := persistRun(*dbPath, runner, result); err != nil {
			return err
		}
	}
	return nil
}

func persistRun(path string, runner *batch.Runner, result *batch.Result) error {
	ctx := context.Background()
	st := store.New(path)
	if err := st.Init(ctx); err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	run := store.Run{
		ID:          result.RunID,
		StartedAt:   time.Now().Add(-result.Elapsed),
		Iterations:  runner.Iterations,
		Generations: runner.Generations,
		Combos:      result.Combos,
	}
	if err := st.SaveRun(ctx, run); err != nil {
		return err
	}
	if err := st.AppendEntries(ctx, result.RunID, result.Entries); err != nil {
		return err
	}
	slog.Info("run persisted", "db", path, "run_id", result.RunID)
	return nil
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	input := fs.String("i", "", "Sweep log CSV to analyze")
	dbPath := fs.String("db", "", "Sqlite database to read instead of a CSV")
	runID := fs.String("run", "", "Run ID within the database (empty = latest)")
	output := fs.String("o", "", "Optional YAML path for the report")
	verbose := fs.Bool("v", false, "Enable debug logging")
	fs.Parse(args)
	setupLogging(*verbose)

	entries, err := loadEntries(*input, *dbPath, *runID)
	if err != nil {
		return err
	}

	report, err := batch.Analyze(entries)
	if err != nil {
		return err
	}
	slog.Info("sweep analyzed", "report", report)

	for _, gs := range report.Generations {
		fmt.Printf("generation %3d: min %8.2f  avg %8.2f  median %8.2f  max %8.2f  (n=%d)\n",
			gs.Generation, gs.Min, gs.Avg, gs.Median, gs.Max, gs.Count)
	}
	if report.Rates != nil {
		fmt.Printf("improvement per generation: min %+.3f  avg %+.3f  max %+.3f\n",
			report.Rates.Min, report.Rates.Avg, report.Rates.Max)
	}

	if *output != "" {
		if err := report.WriteYAML(*output); err != nil {
			return err
		}
		slog.Info("report written", "path", *output)
	}
	return nil
}

// loadEntries reads the sweep log from a CSV file or from a persisted run.
func loadEntries(input, dbPath, runID string) ([]batch.LogEntry, error) {
	switch {
	case input != "" && dbPath != "":
		return nil, errors.New("pass either -i or -db, not both")
	case input != "":
		return batch.ReadLog(input)
	case dbPath != "":
		return loadStoreEntries(dbPath, runID)
	default:
		return nil, errors.New("pass -i <csv> or -db <sqlite>")
	}
}

func loadStoreEntries(path, runID string) ([]batch.LogEntry, error) {
	ctx := context.Background()
	st := store.New(path)
	if err := st.Init(ctx); err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	if runID == "" {
		run, ok, err := st.LatestRun(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("store has no runs")
		}
		runID = run.ID
	}
	return st.Entries(ctx, runID)
}
