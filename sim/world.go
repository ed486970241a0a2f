package sim

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/flock/config"
)

// World holds every animal and food item. The slices are exposed directly
// so the simulation can mutate members in place.
type World struct {
	animals []Animal
	foods   []Food
}

// NewWorld wraps pre-built populations.
func NewWorld(animals []Animal, foods []Food) World {
	return World{animals: animals, foods: foods}
}

// RandomWorld populates a world per the config, animals first then foods.
func RandomWorld(cfg *config.Config, rng *rand.Rand) (World, error) {
	animals := make([]Animal, 0, cfg.World.NumAnimals)
	for i := 0; i < cfg.World.NumAnimals; i++ {
		a, err := RandomAnimal(cfg, rng)
		if err != nil {
			return World{}, fmt.Errorf("animal %d: %w", i, err)
		}
		animals = append(animals, a)
	}

	foods := make([]Food, 0, cfg.World.NumFoods)
	for i := 0; i < cfg.World.NumFoods; i++ {
		foods = append(foods, RandomFood(rng))
	}

	return World{animals: animals, foods: foods}, nil
}

func (w *World) Animals() []Animal { return w.animals }
func (w *World) Foods() []Food     { return w.foods }

// SetAnimals replaces the population wholesale after an evolution round.
func (w *World) SetAnimals(animals []Animal) { w.animals = animals }

// AddAnimal appends an extra bird, for interactive spawning.
func (w *World) AddAnimal(a Animal) { w.animals = append(w.animals, a) }

// AddFood appends an extra food item.
func (w *World) AddFood(f Food) { w.foods = append(w.foods, f) }
