// Package sim implements the bird world: eyes that turn food positions
// into vision cells, brains that turn vision into steering, and the
// step/evolve state machine that breeds better fliers generation after
// generation.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/genetic"
)

// Stats describes one completed generation.
type Stats struct {
	Generation int
	Genetic    genetic.Statistics
}

func (s Stats) String() string {
	return fmt.Sprintf("Generation %d:\n  Min: %.2f\n  Max: %.2f\n  Avg: %.2f\n  Median: %.2f",
		s.Generation,
		s.Genetic.MinFitness, s.Genetic.MaxFitness,
		s.Genetic.AvgFitness, s.Genetic.MedianFitness)
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Any("fitness", s.Genetic),
	)
}

// Simulation drives a world through ticks and generational evolution. It
// is not safe for concurrent use; callers wanting live views should copy
// snapshots under their own lock.
type Simulation struct {
	cfg        *config.Config
	world      World
	age        int
	generation int
}

// NewSimulation wraps an existing world.
func NewSimulation(cfg *config.Config, world World) *Simulation {
	return &Simulation{cfg: cfg, world: world}
}

// RandomSimulation builds a simulation over a fresh random world.
func RandomSimulation(cfg *config.Config, rng *rand.Rand) (*Simulation, error) {
	world, err := RandomWorld(cfg, rng)
	if err != nil {
		return nil, err
	}
	return &Simulation{cfg: cfg, world: world}, nil
}

func (s *Simulation) World() *World          { return &s.world }
func (s *Simulation) Config() *config.Config { return s.cfg }

// Age is the tick count since the last evolution round.
func (s *Simulation) Age() int { return s.age }

// Generation counts completed evolution rounds.
func (s *Simulation) Generation() int { return s.generation }

// SpawnFood drops an extra food item at a random spot.
func (s *Simulation) SpawnFood(rng *rand.Rand) {
	s.world.AddFood(RandomFood(rng))
}

// SpawnFoodAt drops an extra food item at the given position.
func (s *Simulation) SpawnFoodAt(x, y float32) {
	s.world.AddFood(NewFood(Vec2{X: x, Y: y}))
}

// SpawnAnimal adds a fresh random bird to the current generation.
func (s *Simulation) SpawnAnimal(rng *rand.Rand) error {
	a, err := RandomAnimal(s.cfg, rng)
	if err != nil {
		return err
	}
	s.world.AddAnimal(a)
	return nil
}

// Step advances one tick: collisions, brains, movement, then possibly an
// evolution round. Stats are non-nil only on the tick that evolved.
func (s *Simulation) Step(rng *rand.Rand) (*Stats, error) {
	s.processCollisions(rng)
	if err := s.processBrains(); err != nil {
		return nil, err
	}
	s.processMovements()
	return s.tryEvolving(rng)
}

// Train steps until the current generation completes and returns its
// statistics.
func (s *Simulation) Train(rng *rand.Rand) (Stats, error) {
	for {
		stats, err := s.Step(rng)
		if err != nil {
			return Stats{}, err
		}
		if stats != nil {
			return *stats, nil
		}
	}
}

func (s *Simulation) processCollisions(rng *rand.Rand) {
	collisionDistance := s.cfg.World.FoodSize + s.cfg.World.BirdSize
	animals := s.world.animals
	foods := s.world.foods

	for i := range animals {
		for j := range foods {
			if animals[i].position.Distance(foods[j].position) <= collisionDistance {
				animals[i].IncrementFoodEaten()
				foods[j].RandomizePosition(rng)
			}
		}
	}
}

func (s *Simulation) processBrains() error {
	foods := s.world.foods
	for i := range s.world.animals {
		if err := s.world.animals[i].ProcessBrain(s.cfg, foods); err != nil {
			return fmt.Errorf("animal %d: %w", i, err)
		}
	}
	return nil
}

func (s *Simulation) processMovements() {
	for i := range s.world.animals {
		s.world.animals[i].ProcessMovement()
	}
}

func (s *Simulation) tryEvolving(rng *rand.Rand) (*Stats, error) {
	s.age++
	if s.age <= s.cfg.Sim.GenerationLength {
		return nil, nil
	}

	stats, err := s.evolve(rng)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// evolve breeds the next generation from the current one's fitness and
// resets the world for it. The returned stats carry the number of the
// generation that just finished.
func (s *Simulation) evolve(rng *rand.Rand) (Stats, error) {
	s.age = 0
	s.generation++

	slog.Debug("evolving", "generation", s.generation)

	snapshot := make([]AnimalIndividual, len(s.world.animals))
	for i := range s.world.animals {
		snapshot[i] = IndividualFromAnimal(&s.world.animals[i])
	}

	if s.cfg.Genetic.Reverse {
		maxEaten := 0
		for i := range snapshot {
			if snapshot[i].foodEaten > maxEaten {
				maxEaten = snapshot[i].foodEaten
			}
		}
		for i := range snapshot {
			snapshot[i].InvertFitness(maxEaten)
		}
	}

	population := make([]genetic.Individual, len(snapshot))
	for i := range snapshot {
		population[i] = snapshot[i]
	}

	alg := genetic.NewAlgorithm(
		genetic.RouletteSelector{},
		genetic.UniformCrossover{Probability: 0.5},
		genetic.GaussianMutator{
			Probability: s.cfg.Genetic.MutationChance,
			Strength:    s.cfg.Genetic.MutationCoeff,
		},
		func(c genetic.Chromosome) (genetic.Individual, error) {
			return NewAnimalIndividual(c), nil
		},
	)

	evolved, stats, err := alg.Evolve(rng, population)
	if err != nil {
		return Stats{}, fmt.Errorf("evolving generation %d: %w", s.generation, err)
	}

	next := make([]Animal, 0, len(evolved))
	for i, ind := range evolved {
		animal, err := AnimalFromChromosome(s.cfg, rng, ind.Chromosome())
		if err != nil {
			return Stats{}, fmt.Errorf("rebuilding animal %d: %w", i, err)
		}
		next = append(next, animal)
	}
	s.world.SetAnimals(next)

	for i := range s.world.foods {
		s.world.foods[i].RandomizePosition(rng)
	}

	return Stats{Generation: s.generation - 1, Genetic: stats}, nil
}
