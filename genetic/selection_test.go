package genetic

import (
	"errors"
	"math/rand"
	"testing"
)

func population(fitness ...float32) []Individual {
	pop := make([]Individual, len(fitness))
	for i, f := range fitness {
		pop[i] = testIndividual{fitness: f}
	}
	return pop
}

func TestTournamentSelectorErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	if _, err := (TournamentSelector{Size: 3}).Select(rng, nil); !errors.Is(err, ErrEmptyPopulation) {
		t.Errorf("empty: got %v, want ErrEmptyPopulation", err)
	}
	if _, err := (TournamentSelector{Size: 0}).Select(rng, population(1)); !errors.Is(err, ErrTournamentSize) {
		t.Errorf("size 0: got %v, want ErrTournamentSize", err)
	}
}

func TestTournamentSelectorFullBracket(t *testing.T) {
	// With Size >= len every individual competes, so the winner is fixed.
	pop := population(3, 9, 5)
	rng := rand.New(rand.NewSource(42))

	sel := TournamentSelector{Size: 10}
	for i := 0; i < 20; i++ {
		idx, err := sel.Select(rng, pop)
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		if idx != 1 {
			t.Fatalf("winner = %d, want 1", idx)
		}
	}

	rev := TournamentSelector{Size: 10, Reversed: true}
	for i := 0; i < 20; i++ {
		idx, err := rev.Select(rng, pop)
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		if idx != 0 {
			t.Fatalf("reversed winner = %d, want 0", idx)
		}
	}
}

func TestRouletteSelectorErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	if _, err := (RouletteSelector{}).Select(rng, nil); !errors.Is(err, ErrEmptyPopulation) {
		t.Errorf("empty: got %v, want ErrEmptyPopulation", err)
	}
}

func TestRouletteSelectorZeroFitness(t *testing.T) {
	// All-zero fitness must still yield valid picks via the weight floor.
	pop := population(0, 0, 0)
	rng := rand.New(rand.NewSource(42))
	sel := RouletteSelector{}

	seen := make(map[int]bool)
	for i := 0; i < 300; i++ {
		idx, err := sel.Select(rng, pop)
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		if idx < 0 || idx >= len(pop) {
			t.Fatalf("index %d out of range", idx)
		}
		seen[idx] = true
	}
	if len(seen) != len(pop) {
		t.Errorf("only %d of %d indices ever selected", len(seen), len(pop))
	}
}

func TestRouletteSelectorProportional(t *testing.T) {
	pop := population(1, 99)
	rng := rand.New(rand.NewSource(42))
	sel := RouletteSelector{}

	var high int
	for i := 0; i < 1000; i++ {
		idx, err := sel.Select(rng, pop)
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		if idx == 1 {
			high++
		}
	}
	// Expected ~990 of 1000; allow generous slack.
	if high < 900 {
		t.Errorf("high-fitness individual selected %d/1000 times, want > 900", high)
	}
}

func TestSelectorsDeterministic(t *testing.T) {
	pop := population(2, 7, 4, 9, 1)

	for name, sel := range map[string]Selector{
		"tournament": TournamentSelector{Size: 2},
		"roulette":   RouletteSelector{},
	} {
		a := rand.New(rand.NewSource(5))
		b := rand.New(rand.NewSource(5))
		for i := 0; i < 50; i++ {
			ia, _ := sel.Select(a, pop)
			ib, _ := sel.Select(b, pop)
			if ia != ib {
				t.Fatalf("%s: same seed diverged at pick %d: %d vs %d", name, i, ia, ib)
			}
		}
	}
}
