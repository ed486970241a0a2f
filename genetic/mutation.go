package genetic

import "math/rand"

// Mutator perturbs a chromosome's genes in place.
type Mutator interface {
	Mutate(rng *rand.Rand, c Chromosome) error
}

// GaussianMutator adds a random delta of magnitude up to Strength to each
// gene with the given Probability. The sign is drawn independently of the
// magnitude.
type GaussianMutator struct {
	Probability float32
	Strength    float32
}

// Mutate implements Mutator. It never fails.
func (m GaussianMutator) Mutate(rng *rand.Rand, c Chromosome) error {
	genes := c.Genes()
	for i := range genes {
		if rng.Float32() < m.Probability {
			delta := rng.Float32() * m.Strength
			if rng.Float32() < 0.5 {
				genes[i] -= delta
			} else {
				genes[i] += delta
			}
		}
	}
	return nil
}

// UniformMutator replaces each gene with a fresh draw from [Min, Max) with
// the given Probability.
type UniformMutator struct {
	Probability float32
	Min         float32
	Max         float32
}

// Mutate implements Mutator. It never fails.
func (m UniformMutator) Mutate(rng *rand.Rand, c Chromosome) error {
	genes := c.Genes()
	for i := range genes {
		if rng.Float32() < m.Probability {
			genes[i] = m.Min + rng.Float32()*(m.Max-m.Min)
		}
	}
	return nil
}
