package genetic

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Statistics summarizes the fitness spread of one generation.
type Statistics struct {
	MinFitness    float32
	MaxFitness    float32
	AvgFitness    float32
	MedianFitness float32
}

// StatisticsFromPopulation computes Statistics over a population's fitness
// values. An empty population yields the zero value.
func StatisticsFromPopulation(population []Individual) Statistics {
	values := make([]float32, len(population))
	for i, ind := range population {
		values[i] = ind.Fitness()
	}
	return StatisticsFromFitness(values)
}

// StatisticsFromFitness computes Statistics from raw fitness values. The
// input is not modified; the median of an even count is the average of the
// two middle values.
func StatisticsFromFitness(values []float32) Statistics {
	if len(values) == 0 {
		return Statistics{}
	}

	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	return Statistics{
		MinFitness:    float32(sorted[0]),
		MaxFitness:    float32(sorted[len(sorted)-1]),
		AvgFitness:    float32(stat.Mean(sorted, nil)),
		MedianFitness: float32(stat.Quantile(0.5, stat.LinInterp, sorted, nil)),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("min", float64(s.MinFitness)),
		slog.Float64("max", float64(s.MaxFitness)),
		slog.Float64("avg", float64(s.AvgFitness)),
		slog.Float64("median", float64(s.MedianFitness)),
	)
}
