package telemetry

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/flock/sim"
)

// Record is one generation's fitness summary in the training history.
type Record struct {
	Generation    int     `csv:"generation"`
	MinFitness    float32 `csv:"min_fitness"`
	MaxFitness    float32 `csv:"max_fitness"`
	AvgFitness    float32 `csv:"avg_fitness"`
	MedianFitness float32 `csv:"median_fitness"`
}

// NewRecord flattens end-of-generation stats into a history row.
func NewRecord(s sim.Stats) Record {
	return Record{
		Generation:    s.Generation,
		MinFitness:    s.Genetic.MinFitness,
		MaxFitness:    s.Genetic.MaxFitness,
		AvgFitness:    s.Genetic.AvgFitness,
		MedianFitness: s.Genetic.MedianFitness,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (r Record) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", r.Generation),
		slog.Float64("min_fitness", float64(r.MinFitness)),
		slog.Float64("max_fitness", float64(r.MaxFitness)),
		slog.Float64("avg_fitness", float64(r.AvgFitness)),
		slog.Float64("median_fitness", float64(r.MedianFitness)),
	)
}

// History is the append-only sequence of generation records for one run.
// Resetting the world starts a fresh History.
type History struct {
	records []Record
}

// Append adds a completed generation to the history.
func (h *History) Append(r Record) {
	h.records = append(h.records, r)
}

// Len returns the number of recorded generations.
func (h *History) Len() int { return len(h.records) }

// Records returns all recorded generations, oldest first.
func (h *History) Records() []Record { return h.records }

// Latest returns the most recent record, if any.
func (h *History) Latest() (Record, bool) {
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.records[len(h.records)-1], true
}

// Best returns the record with the highest max fitness, if any.
func (h *History) Best() (Record, bool) {
	if len(h.records) == 0 {
		return Record{}, false
	}
	best := h.records[0]
	for _, r := range h.records[1:] {
		if r.MaxFitness > best.MaxFitness {
			best = r
		}
	}
	return best, true
}

// MaxSeries returns the per-generation max fitness, oldest first.
func (h *History) MaxSeries() []float32 {
	out := make([]float32, len(h.records))
	for i, r := range h.records {
		out[i] = r.MaxFitness
	}
	return out
}

// WriteCSV exports the whole history to a CSV file, header included.
func (h *History) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating history file: %w", err)
	}
	if err := gocsv.Marshal(&h.records, f); err != nil {
		f.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	return f.Close()
}
