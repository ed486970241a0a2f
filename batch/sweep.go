// Package batch runs parameter sweeps: the cross product of a config
// axis grid, each combination trained over several fresh simulations,
// with per-generation fitness entries collected for later analysis.
package batch

import (
	"github.com/pthm-cable/flock/config"
)

// Axes defines the sweep grid. Each field lists the values tried for one
// config knob; Combinations walks the full cross product.
type Axes struct {
	BrainNeurons   []int
	EyeFovRange    []float32
	EyeFovAngleDeg []float32
	EyeCells       []int
	MutationChance []float32
	MutationCoeff  []float32
}

// DefaultAxes returns the stock sweep grid, 6400 combinations.
func DefaultAxes() Axes {
	return Axes{
		BrainNeurons:   []int{2, 3, 5, 10},
		EyeFovRange:    []float32{0.1, 0.25, 0.33, 0.5},
		EyeFovAngleDeg: []float32{45, 90, 180, 225},
		EyeCells:       []int{2, 3, 6, 9, 12},
		MutationChance: []float32{0.001, 0.01, 0.1, 0.5},
		MutationCoeff:  []float32{0.01, 0.1, 0.3, 0.5, 1.0},
	}
}

// Size returns the number of combinations the axes span.
func (a Axes) Size() int {
	return len(a.BrainNeurons) * len(a.EyeFovRange) * len(a.EyeFovAngleDeg) *
		len(a.EyeCells) * len(a.MutationChance) * len(a.MutationCoeff)
}

// Combinations applies every axis combination over the base config,
// nested in axis declaration order with the last axis varying fastest.
// Derived values are recomputed for each combination.
func (a Axes) Combinations(base config.Config) []config.Config {
	combos := make([]config.Config, 0, a.Size())
	for _, neurons := range a.BrainNeurons {
		for _, fovRange := range a.EyeFovRange {
			for _, fovAngle := range a.EyeFovAngleDeg {
				for _, cells := range a.EyeCells {
					for _, chance := range a.MutationChance {
						for _, coeff := range a.MutationCoeff {
							cfg := base
							cfg.BrainEye.NumNeurons = neurons
							cfg.BrainEye.FovRange = fovRange
							cfg.BrainEye.FovAngleDeg = fovAngle
							cfg.BrainEye.NumCells = cells
							cfg.Genetic.MutationChance = chance
							cfg.Genetic.MutationCoeff = coeff
							cfg.Recompute()
							combos = append(combos, cfg)
						}
					}
				}
			}
		}
	}
	return combos
}
