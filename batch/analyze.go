package batch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// ErrEmptyLog reports an analysis over no entries.
var ErrEmptyLog = errors.New("batch: empty sweep log")

// GenerationStats aggregates the best fitness reached by every
// (combination, iteration) pair at one generation index.
type GenerationStats struct {
	Generation int     `yaml:"generation"`
	Count      int     `yaml:"count"`
	Min        float64 `yaml:"min"`
	Max        float64 `yaml:"max"`
	Avg        float64 `yaml:"avg"`
	Median     float64 `yaml:"median"`
}

// ImprovementRates is the per-generation slope of the aggregate series,
// `(last - first) / (generations - 1)`.
type ImprovementRates struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
	Avg float64 `yaml:"avg"`
}

// Report is the outcome of analyzing a sweep log. Rates is nil when the
// log covers fewer than two generations.
type Report struct {
	Entries     int               `yaml:"entries"`
	Generations []GenerationStats `yaml:"generations"`
	Final       GenerationStats   `yaml:"final"`
	Rates       *ImprovementRates `yaml:"improvement_rates,omitempty"`
}

// Analyze groups the max fitness of every entry by generation and
// aggregates each group.
func Analyze(entries []LogEntry) (*Report, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyLog
	}

	byGen := make(map[int][]float64)
	maxGen := 0
	for _, e := range entries {
		byGen[e.Generation] = append(byGen[e.Generation], float64(e.MaxFitness))
		if e.Generation > maxGen {
			maxGen = e.Generation
		}
	}

	report := &Report{Entries: len(entries)}
	for g := 0; g <= maxGen; g++ {
		values := byGen[g]
		if len(values) == 0 {
			continue
		}
		report.Generations = append(report.Generations, generationStats(g, values))
	}

	report.Final = report.Generations[len(report.Generations)-1]

	if n := len(report.Generations); n >= 2 {
		first, last := report.Generations[0], report.Generations[n-1]
		span := float64(n - 1)
		report.Rates = &ImprovementRates{
			Min: (last.Min - first.Min) / span,
			Max: (last.Max - first.Max) / span,
			Avg: (last.Avg - first.Avg) / span,
		}
	}

	return report, nil
}

func generationStats(gen int, values []float64) GenerationStats {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return GenerationStats{
		Generation: gen,
		Count:      len(sorted),
		Min:        sorted[0],
		Max:        sorted[len(sorted)-1],
		Avg:        stat.Mean(sorted, nil),
		Median:     stat.Quantile(0.5, stat.LinInterp, sorted, nil),
	}
}

// WriteYAML writes the report to a YAML file.
func (r *Report) WriteYAML(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}
	return nil
}

// LogValue implements slog.LogValuer for structured logging.
func (r *Report) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("entries", r.Entries),
		slog.Int("generations", len(r.Generations)),
		slog.Float64("final_min", r.Final.Min),
		slog.Float64("final_max", r.Final.Max),
		slog.Float64("final_avg", r.Final.Avg),
		slog.Float64("final_median", r.Final.Median),
	}
	if r.Rates != nil {
		attrs = append(attrs,
			slog.Float64("rate_min", r.Rates.Min),
			slog.Float64("rate_max", r.Rates.Max),
			slog.Float64("rate_avg", r.Rates.Avg),
		)
	}
	return slog.GroupValue(attrs...)
}
