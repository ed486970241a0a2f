package genetic

import (
	"errors"
	"math/rand"
	"testing"
)

func TestCrossoverParentLength(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := NewChromosome([]float32{1, 2, 3})
	b := NewChromosome([]float32{1, 2})

	if _, err := (SinglePointCrossover{}).Crossover(rng, a, b); !errors.Is(err, ErrParentLength) {
		t.Errorf("single point: got %v, want ErrParentLength", err)
	}
	if _, err := (UniformCrossover{Probability: 0.5}).Crossover(rng, a, b); !errors.Is(err, ErrParentLength) {
		t.Errorf("uniform: got %v, want ErrParentLength", err)
	}
}

func TestSinglePointCrossover(t *testing.T) {
	const n = 20
	aGenes := make([]float32, n)
	bGenes := make([]float32, n)
	for i := range aGenes {
		aGenes[i] = 1
		bGenes[i] = 2
	}
	a, b := NewChromosome(aGenes), NewChromosome(bGenes)
	rng := rand.New(rand.NewSource(42))

	child, err := (SinglePointCrossover{}).Crossover(rng, a, b)
	if err != nil {
		t.Fatalf("Crossover failed: %v", err)
	}
	if child.Len() != n {
		t.Fatalf("child length = %d, want %d", child.Len(), n)
	}

	// The child must be a run of a's genes followed by a run of b's.
	genes := child.Genes()
	switched := false
	for i, g := range genes {
		switch g {
		case 1:
			if switched {
				t.Fatalf("gene %d from parent a after the cut", i)
			}
		case 2:
			switched = true
		default:
			t.Fatalf("gene %d = %v, from neither parent", i, g)
		}
	}

	// Parents are untouched
	if aGenes[0] != 1 || bGenes[n-1] != 2 {
		t.Error("crossover modified a parent")
	}
}

func TestUniformCrossoverExtremes(t *testing.T) {
	a := NewChromosome([]float32{1, 2, 3, 4})
	b := NewChromosome([]float32{5, 6, 7, 8})
	rng := rand.New(rand.NewSource(42))

	allA, err := (UniformCrossover{Probability: 1}).Crossover(rng, a, b)
	if err != nil {
		t.Fatal(err)
	}
	for i, g := range allA.Genes() {
		if g != a.Genes()[i] {
			t.Errorf("p=1: gene %d = %v, want parent a's %v", i, g, a.Genes()[i])
		}
	}

	allB, err := (UniformCrossover{Probability: 0}).Crossover(rng, a, b)
	if err != nil {
		t.Fatal(err)
	}
	for i, g := range allB.Genes() {
		if g != b.Genes()[i] {
			t.Errorf("p=0: gene %d = %v, want parent b's %v", i, g, b.Genes()[i])
		}
	}
}

func TestUniformCrossoverMixes(t *testing.T) {
	a := NewChromosome([]float32{1, 1, 1, 1, 1, 1, 1, 1})
	b := NewChromosome([]float32{2, 2, 2, 2, 2, 2, 2, 2})
	rng := rand.New(rand.NewSource(42))

	child, err := (UniformCrossover{Probability: 0.5}).Crossover(rng, a, b)
	if err != nil {
		t.Fatal(err)
	}
	for i, g := range child.Genes() {
		if g != 1 && g != 2 {
			t.Errorf("gene %d = %v, from neither parent", i, g)
		}
	}
}
