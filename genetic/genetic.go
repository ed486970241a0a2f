// Package genetic implements the evolutionary core: chromosomes, a closed
// set of selection, crossover, and mutation operators, fitness statistics,
// and the generation-breeding algorithm that ties them together.
package genetic

import (
	"fmt"
	"math/rand"
)

// Individual is the genetically operable view of one population member.
type Individual interface {
	Fitness() float32
	Chromosome() Chromosome
}

// Factory materializes an offspring from an evolved chromosome.
type Factory func(Chromosome) (Individual, error)

// Algorithm breeds generations with one selector, one crossover, and one
// mutator. The operator set is fixed at construction.
type Algorithm struct {
	selector  Selector
	crossover Crossover
	mutator   Mutator
	factory   Factory
}

// NewAlgorithm wires the operators together. A nil component is a wiring
// bug, not a runtime condition, so it panics.
func NewAlgorithm(selector Selector, crossover Crossover, mutator Mutator, factory Factory) *Algorithm {
	if selector == nil || crossover == nil || mutator == nil || factory == nil {
		panic("genetic: NewAlgorithm requires a selector, crossover, mutator, and factory")
	}
	return &Algorithm{
		selector:  selector,
		crossover: crossover,
		mutator:   mutator,
		factory:   factory,
	}
}

// Evolve breeds the next generation. Statistics describe the incoming
// population, computed before any offspring work. The returned population
// always matches the incoming length; any operator or factory error aborts
// the whole call with no partial generation.
func (a *Algorithm) Evolve(rng *rand.Rand, population []Individual) ([]Individual, Statistics, error) {
	if len(population) == 0 {
		return nil, Statistics{}, fmt.Errorf("%w: cannot evolve", ErrEmptyPopulation)
	}

	stats := StatisticsFromPopulation(population)

	next := make([]Individual, 0, len(population))
	for len(next) < len(population) {
		ai, err := a.selector.Select(rng, population)
		if err != nil {
			return nil, Statistics{}, fmt.Errorf("selecting first parent: %w", err)
		}
		bi, err := a.selector.Select(rng, population)
		if err != nil {
			return nil, Statistics{}, fmt.Errorf("selecting second parent: %w", err)
		}

		child, err := a.crossover.Crossover(rng, population[ai].Chromosome(), population[bi].Chromosome())
		if err != nil {
			return nil, Statistics{}, fmt.Errorf("crossover: %w", err)
		}
		if err := a.mutator.Mutate(rng, child); err != nil {
			return nil, Statistics{}, fmt.Errorf("mutation: %w", err)
		}

		offspring, err := a.factory(child)
		if err != nil {
			return nil, Statistics{}, fmt.Errorf("materializing offspring: %w", err)
		}
		next = append(next, offspring)
	}

	return next, stats, nil
}
