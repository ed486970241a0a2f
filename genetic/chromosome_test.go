package genetic

import (
	"errors"
	"math/rand"
	"testing"
)

func TestRandomChromosome(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	c, err := RandomChromosome(rng, 50, -1, 1)
	if err != nil {
		t.Fatalf("RandomChromosome failed: %v", err)
	}
	if c.Len() != 50 {
		t.Errorf("Len = %d, want 50", c.Len())
	}
	for i, g := range c.Genes() {
		if g < -1 || g >= 1 {
			t.Errorf("gene %d = %v, want in [-1, 1)", i, g)
		}
	}
}

func TestRandomChromosomeErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	if _, err := RandomChromosome(rng, 0, -1, 1); !errors.Is(err, ErrChromosomeSize) {
		t.Errorf("size 0: got %v, want ErrChromosomeSize", err)
	}
	if _, err := RandomChromosome(rng, 5, 1, -1); !errors.Is(err, ErrGeneRange) {
		t.Errorf("min > max: got %v, want ErrGeneRange", err)
	}
}

func TestChromosomeAt(t *testing.T) {
	c := NewChromosome([]float32{0.1, 0.2, 0.3})

	got, err := c.At(1)
	if err != nil {
		t.Fatalf("At(1) failed: %v", err)
	}
	if got != 0.2 {
		t.Errorf("At(1) = %v, want 0.2", got)
	}

	if _, err := c.At(3); !errors.Is(err, ErrChromosomeIndex) {
		t.Errorf("At(3): got %v, want ErrChromosomeIndex", err)
	}
	if _, err := c.At(-1); !errors.Is(err, ErrChromosomeIndex) {
		t.Errorf("At(-1): got %v, want ErrChromosomeIndex", err)
	}
}

func TestChromosomeSlice(t *testing.T) {
	c := NewChromosome([]float32{1, 2, 3, 4, 5})

	s, err := c.Slice(1, 3)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	want := []float32{2, 3, 4}
	for i, g := range s.Genes() {
		if g != want[i] {
			t.Errorf("slice gene %d = %v, want %v", i, g, want[i])
		}
	}

	// Slices are copies, not views
	s.Genes()[0] = 99
	if got, _ := c.At(1); got != 2 {
		t.Error("modifying a slice changed the source chromosome")
	}

	if _, err := c.Slice(5, 0); !errors.Is(err, ErrChromosomeIndex) {
		t.Errorf("start at length: got %v, want ErrChromosomeIndex", err)
	}
	if _, err := c.Slice(3, 3); !errors.Is(err, ErrChromosomeIndex) {
		t.Errorf("overrunning count: got %v, want ErrChromosomeIndex", err)
	}
}

func TestChromosomeClone(t *testing.T) {
	c := NewChromosome([]float32{1, 2, 3})
	clone := c.Clone()

	clone.Genes()[0] = 42
	if got, _ := c.At(0); got != 1 {
		t.Error("clone shares storage with the original")
	}
}

func TestRandomChromosomeDeterministic(t *testing.T) {
	a, _ := RandomChromosome(rand.New(rand.NewSource(7)), 20, 0, 10)
	b, _ := RandomChromosome(rand.New(rand.NewSource(7)), 20, 0, 10)

	for i := range a.Genes() {
		if a.Genes()[i] != b.Genes()[i] {
			t.Fatalf("same seed produced different genes at %d", i)
		}
	}
}
