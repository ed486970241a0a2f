package genetic

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrParentLength reports parents of different gene counts.
var ErrParentLength = errors.New("genetic: parent chromosomes must have equal length")

// Crossover combines two parent chromosomes into a child.
type Crossover interface {
	Crossover(rng *rand.Rand, a, b Chromosome) (Chromosome, error)
}

// SinglePointCrossover cuts both parents at one random index, taking genes
// before the cut from a and the rest from b.
type SinglePointCrossover struct{}

// Crossover implements the Crossover interface.
func (SinglePointCrossover) Crossover(rng *rand.Rand, a, b Chromosome) (Chromosome, error) {
	if a.Len() != b.Len() {
		return Chromosome{}, fmt.Errorf("%w: %d vs %d", ErrParentLength, a.Len(), b.Len())
	}
	cut := int(rng.Float32() * float32(a.Len()))
	genes := make([]float32, a.Len())
	copy(genes, a.genes[:cut])
	copy(genes[cut:], b.genes[cut:])
	return Chromosome{genes: genes}, nil
}

// UniformCrossover keeps each of a's genes independently with Probability,
// otherwise takes b's.
type UniformCrossover struct {
	Probability float32
}

// Crossover implements the Crossover interface.
func (c UniformCrossover) Crossover(rng *rand.Rand, a, b Chromosome) (Chromosome, error) {
	if a.Len() != b.Len() {
		return Chromosome{}, fmt.Errorf("%w: %d vs %d", ErrParentLength, a.Len(), b.Len())
	}
	genes := make([]float32, a.Len())
	for i := range genes {
		if rng.Float32() < c.Probability {
			genes[i] = a.genes[i]
		} else {
			genes[i] = b.genes[i]
		}
	}
	return Chromosome{genes: genes}, nil
}
