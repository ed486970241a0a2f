package genetic

import (
	"errors"
	"fmt"
	"math/rand"
)

// Chromosome errors.
var (
	ErrChromosomeSize  = errors.New("genetic: chromosome size must be greater than zero")
	ErrGeneRange       = errors.New("genetic: gene range minimum exceeds maximum")
	ErrChromosomeIndex = errors.New("genetic: chromosome index out of bounds")
)

// Chromosome is a flat gene buffer. Its length is fixed at construction;
// operators mutate genes in place but never resize.
type Chromosome struct {
	genes []float32
}

// NewChromosome wraps an existing gene slice without copying.
func NewChromosome(genes []float32) Chromosome {
	return Chromosome{genes: genes}
}

// RandomChromosome creates size genes drawn uniformly from [min, max).
func RandomChromosome(rng *rand.Rand, size int, min, max float32) (Chromosome, error) {
	if size == 0 {
		return Chromosome{}, ErrChromosomeSize
	}
	if min > max {
		return Chromosome{}, fmt.Errorf("%w: min %v, max %v", ErrGeneRange, min, max)
	}
	genes := make([]float32, size)
	for i := range genes {
		genes[i] = min + rng.Float32()*(max-min)
	}
	return Chromosome{genes: genes}, nil
}

// At returns the gene at position i.
func (c Chromosome) At(i int) (float32, error) {
	if i < 0 || i >= len(c.genes) {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrChromosomeIndex, i, len(c.genes))
	}
	return c.genes[i], nil
}

// Slice copies count genes starting at start into a new chromosome.
func (c Chromosome) Slice(start, count int) (Chromosome, error) {
	if start < 0 || start >= len(c.genes) || start+count > len(c.genes) {
		return Chromosome{}, fmt.Errorf("%w: slice [%d, %d) of length %d",
			ErrChromosomeIndex, start, start+count, len(c.genes))
	}
	genes := make([]float32, count)
	copy(genes, c.genes[start:start+count])
	return Chromosome{genes: genes}, nil
}

// Clone deep-copies the chromosome.
func (c Chromosome) Clone() Chromosome {
	genes := make([]float32, len(c.genes))
	copy(genes, c.genes)
	return Chromosome{genes: genes}
}

// Genes exposes the backing slice. Mutators edit it in place.
func (c Chromosome) Genes() []float32 { return c.genes }

// Len returns the gene count.
func (c Chromosome) Len() int { return len(c.genes) }
