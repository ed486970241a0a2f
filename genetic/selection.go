package genetic

import (
	"errors"
	"fmt"
	"math/rand"
)

// Selection errors.
var (
	ErrEmptyPopulation = errors.New("genetic: population cannot be empty")
	ErrTournamentSize  = errors.New("genetic: tournament size must be greater than zero")
)

// Selector picks one parent index from a population.
type Selector interface {
	Select(rng *rand.Rand, population []Individual) (int, error)
}

// TournamentSelector draws Size distinct random contestants and returns the
// fittest, or the least fit when Reversed.
type TournamentSelector struct {
	Size     int
	Reversed bool
}

// Select implements Selector.
func (s TournamentSelector) Select(rng *rand.Rand, population []Individual) (int, error) {
	if len(population) == 0 {
		return 0, fmt.Errorf("%w: tournament selection", ErrEmptyPopulation)
	}
	if s.Size == 0 {
		return 0, ErrTournamentSize
	}

	size := s.Size
	if size > len(population) {
		size = len(population)
	}

	// Rejection-sample distinct contestant indices.
	chosen := make([]int, 0, size)
	for len(chosen) < size {
		idx := rng.Intn(len(population))
		if !containsInt(chosen, idx) {
			chosen = append(chosen, idx)
		}
	}

	best := chosen[0]
	for _, idx := range chosen[1:] {
		f, bf := population[idx].Fitness(), population[best].Fitness()
		if s.Reversed {
			if f < bf {
				best = idx
			}
		} else if f > bf {
			best = idx
		}
	}
	return best, nil
}

// minRouletteWeight keeps zero-fitness individuals selectable.
const minRouletteWeight = 1e-5

// RouletteSelector samples proportionally to fitness, with every weight
// floored at minRouletteWeight.
type RouletteSelector struct{}

// Select implements Selector.
func (RouletteSelector) Select(rng *rand.Rand, population []Individual) (int, error) {
	if len(population) == 0 {
		return 0, fmt.Errorf("%w: roulette selection", ErrEmptyPopulation)
	}

	var total float32
	for _, ind := range population {
		total += rouletteWeight(ind.Fitness())
	}

	point := rng.Float32() * total
	var cumulative float32
	for i, ind := range population {
		cumulative += rouletteWeight(ind.Fitness())
		if cumulative >= point {
			return i, nil
		}
	}

	// Rounding can leave the spin just past the final slot.
	return len(population) - 1, nil
}

func rouletteWeight(fitness float32) float32 {
	if fitness < minRouletteWeight {
		return minRouletteWeight
	}
	return fitness
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
