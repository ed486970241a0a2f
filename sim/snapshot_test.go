package sim

import (
	"math/rand"
	"testing"
)

func TestSnapshotDetachedFromWorld(t *testing.T) {
	cfg := smallConfig()
	rng := rand.New(rand.NewSource(42))
	sim, err := RandomSimulation(cfg, rng)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sim.Step(rng); err != nil {
		t.Fatal(err)
	}

	snap := sim.Snapshot()
	if len(snap.Animals) != 5 || len(snap.Foods) != 8 {
		t.Fatalf("snapshot sizes %d/%d, want 5/8", len(snap.Animals), len(snap.Foods))
	}
	if snap.Age != 1 || snap.Generation != 0 {
		t.Errorf("snapshot age/generation = %d/%d, want 1/0", snap.Age, snap.Generation)
	}
	if got := len(snap.Animals[0].Vision); got != cfg.BrainEye.NumCells {
		t.Errorf("snapshot vision length = %d, want %d", got, cfg.BrainEye.NumCells)
	}

	before := snap.Animals[0].Position
	for i := 0; i < 3; i++ {
		if _, err := sim.Step(rng); err != nil {
			t.Fatal(err)
		}
	}
	if snap.Animals[0].Position != before {
		t.Error("snapshot mutated by stepping the live simulation")
	}
	if sim.World().Animals()[0].Position() == before {
		t.Error("live animal did not move")
	}

	snap.Animals[0].Vision[0] = 99
	if sim.World().Animals()[0].Vision()[0] == 99 {
		t.Error("snapshot vision aliases the live animal")
	}
}
