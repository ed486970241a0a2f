package batch

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/sim"
)

// LogEntry is one generation's outcome within a sweep. The axis values of
// the combination ride along so the log stands alone without the run's
// config.
type LogEntry struct {
	RunID          string  `csv:"run_id"`
	Combo          int     `csv:"combo"`
	Iteration      int     `csv:"iteration"`
	Generation     int     `csv:"generation"`
	BrainNeurons   int     `csv:"brain_neurons"`
	EyeFovRange    float32 `csv:"eye_fov_range"`
	EyeFovAngleDeg float32 `csv:"eye_fov_angle_deg"`
	EyeCells       int     `csv:"eye_cells"`
	MutationChance float32 `csv:"mutation_chance"`
	MutationCoeff  float32 `csv:"mutation_coeff"`
	MinFitness     float32 `csv:"min_fitness"`
	MaxFitness     float32 `csv:"max_fitness"`
	AvgFitness     float32 `csv:"avg_fitness"`
	MedianFitness  float32 `csv:"median_fitness"`
}

func newLogEntry(runID string, combo, iteration int, cfg *config.Config, s sim.Stats) LogEntry {
	return LogEntry{
		RunID:          runID,
		Combo:          combo,
		Iteration:      iteration,
		Generation:     s.Generation,
		BrainNeurons:   cfg.BrainEye.NumNeurons,
		EyeFovRange:    cfg.BrainEye.FovRange,
		EyeFovAngleDeg: cfg.BrainEye.FovAngleDeg,
		EyeCells:       cfg.BrainEye.NumCells,
		MutationChance: cfg.Genetic.MutationChance,
		MutationCoeff:  cfg.Genetic.MutationCoeff,
		MinFitness:     s.Genetic.MinFitness,
		MaxFitness:     s.Genetic.MaxFitness,
		AvgFitness:     s.Genetic.AvgFitness,
		MedianFitness:  s.Genetic.MedianFitness,
	}
}

// WriteLog saves sweep entries as CSV.
func WriteLog(path string, entries []LogEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating sweep log: %w", err)
	}
	if err := gocsv.Marshal(&entries, f); err != nil {
		f.Close()
		return fmt.Errorf("writing sweep log: %w", err)
	}
	return f.Close()
}

// ReadLog loads sweep entries from a CSV written by WriteLog.
func ReadLog(path string) ([]LogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sweep log: %w", err)
	}
	defer f.Close()

	var entries []LogEntry
	if err := gocsv.UnmarshalFile(f, &entries); err != nil {
		return nil, fmt.Errorf("parsing sweep log: %w", err)
	}
	return entries, nil
}
