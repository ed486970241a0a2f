package sim

import (
	"math/rand"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/genetic"
)

// AnimalIndividual adapts a bird for the genetic operators: fitness is the
// food count, the genome is the brain's flattened weights.
type AnimalIndividual struct {
	foodEaten  int
	chromosome genetic.Chromosome
}

// IndividualFromAnimal snapshots an animal's fitness and genome.
func IndividualFromAnimal(a *Animal) AnimalIndividual {
	return AnimalIndividual{foodEaten: a.FoodEaten(), chromosome: a.Chromosome()}
}

// NewAnimalIndividual wraps an evolved chromosome with zero fitness.
func NewAnimalIndividual(c genetic.Chromosome) AnimalIndividual {
	return AnimalIndividual{chromosome: c}
}

func (i AnimalIndividual) Fitness() float32               { return float32(i.foodEaten) }
func (i AnimalIndividual) Chromosome() genetic.Chromosome { return i.chromosome }

// InvertFitness flips the objective for reverse training, so the birds
// that ate least score highest.
func (i *AnimalIndividual) InvertFitness(maxFoodEaten int) {
	i.foodEaten = maxFoodEaten - i.foodEaten
}

// IntoAnimal materializes the next-generation bird from the genome.
func (i AnimalIndividual) IntoAnimal(cfg *config.Config, rng *rand.Rand) (Animal, error) {
	return AnimalFromChromosome(cfg, rng, i.chromosome)
}
