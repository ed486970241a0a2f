package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/genetic"
	"github.com/pthm-cable/flock/neural"
)

func TestBrainTopology(t *testing.T) {
	cfg := config.Default()

	got := BrainTopology(cfg)
	want := []int{cfg.BrainEye.NumCells, cfg.BrainEye.NumNeurons, 2}

	if len(got) != 3 {
		t.Fatalf("topology has %d layers, want 3", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("topology[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// tinyBrainConfig shrinks the network to one cell and one hidden neuron so
// response weights can be laid out by hand.
func tinyBrainConfig() *config.Config {
	cfg := config.Default()
	cfg.BrainEye.NumCells = 1
	cfg.BrainEye.NumNeurons = 1
	cfg.Sim.RotationAccelDeg = 30
	cfg.Recompute()
	return cfg
}

func TestBrainResponseMapping(t *testing.T) {
	cfg := tinyBrainConfig()

	tests := []struct {
		name         string
		weights      []float32
		wantSpeed    float32
		wantRotation float32
	}{
		{
			// Response (1, 0): pure turn, clamped to the rotation limit.
			name:         "full first output",
			weights:      []float32{0, 1, 0, 1, 0, 0},
			wantSpeed:    0,
			wantRotation: cfg.Derived.RotationAccelRad,
		},
		{
			// Response (0, 1): the opposite turn.
			name:         "full second output",
			weights:      []float32{0, 1, 0, 0, 0, 1},
			wantSpeed:    0,
			wantRotation: -cfg.Derived.RotationAccelRad,
		},
		{
			// Response (1, 1): pure acceleration, clamped to the speed limit.
			name:         "both outputs",
			weights:      []float32{0, 1, 0, 1, 0, 1},
			wantSpeed:    cfg.Sim.SpeedAccel,
			wantRotation: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brain, err := BrainFromChromosome(cfg, genetic.NewChromosome(tt.weights))
			if err != nil {
				t.Fatal(err)
			}

			speed, rotation, err := brain.Propagate([]float32{1})
			if err != nil {
				t.Fatal(err)
			}
			if speed != tt.wantSpeed {
				t.Errorf("speed = %v, want %v", speed, tt.wantSpeed)
			}
			if rotation != tt.wantRotation {
				t.Errorf("rotation = %v, want %v", rotation, tt.wantRotation)
			}
		})
	}
}

func TestBrainChromosomeRoundTrip(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(42))

	brain, err := RandomBrain(cfg, rng)
	if err != nil {
		t.Fatal(err)
	}

	rebuilt, err := BrainFromChromosome(cfg, brain.Chromosome())
	if err != nil {
		t.Fatal(err)
	}

	a, b := brain.Chromosome().Genes(), rebuilt.Chromosome().Genes()
	if len(a) != len(b) {
		t.Fatalf("weight counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("weight %d = %v, want %v", i, b[i], a[i])
		}
	}
}

func TestBrainFromChromosomeErrors(t *testing.T) {
	cfg := config.Default()
	need := neural.WeightCount(BrainTopology(cfg))

	short := genetic.NewChromosome(make([]float32, need-1))
	if _, err := BrainFromChromosome(cfg, short); !errors.Is(err, ErrInvalidChromosome) {
		t.Errorf("short chromosome err = %v, want ErrInvalidChromosome", err)
	}

	long := genetic.NewChromosome(make([]float32, need+1))
	if _, err := BrainFromChromosome(cfg, long); !errors.Is(err, ErrInvalidChromosome) {
		t.Errorf("long chromosome err = %v, want ErrInvalidChromosome", err)
	}
}

func TestBrainPropagateInputSize(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(42))

	brain, err := RandomBrain(cfg, rng)
	if err != nil {
		t.Fatal(err)
	}

	short := make([]float32, cfg.BrainEye.NumCells-1)
	if _, _, err := brain.Propagate(short); !errors.Is(err, ErrBrainInputSize) {
		t.Errorf("err = %v, want ErrBrainInputSize", err)
	}
}

func TestBrainOutputsWithinLimits(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		brain, err := RandomBrain(cfg, rng)
		if err != nil {
			t.Fatal(err)
		}

		vision := make([]float32, cfg.BrainEye.NumCells)
		for i := range vision {
			vision[i] = rng.Float32() * 2
		}

		speed, rotation, err := brain.Propagate(vision)
		if err != nil {
			t.Fatal(err)
		}
		if absf(speed) > cfg.Sim.SpeedAccel {
			t.Fatalf("trial %d: speed %v beyond accel %v", trial, speed, cfg.Sim.SpeedAccel)
		}
		if absf(rotation) > cfg.Derived.RotationAccelRad {
			t.Fatalf("trial %d: rotation %v beyond accel %v", trial, rotation, cfg.Derived.RotationAccelRad)
		}
	}
}
