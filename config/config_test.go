package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.World.NumFoods != 60 {
		t.Errorf("NumFoods = %d, want 60", cfg.World.NumFoods)
	}
	if cfg.World.NumAnimals != 40 {
		t.Errorf("NumAnimals = %d, want 40", cfg.World.NumAnimals)
	}
	if cfg.BrainEye.NumCells != 9 {
		t.Errorf("NumCells = %d, want 9", cfg.BrainEye.NumCells)
	}
	if cfg.BrainEye.NumNeurons != 9 {
		t.Errorf("NumNeurons = %d, want 9", cfg.BrainEye.NumNeurons)
	}
	if cfg.Sim.GenerationLength != 2500 {
		t.Errorf("GenerationLength = %d, want 2500", cfg.Sim.GenerationLength)
	}
	if cfg.Genetic.Reverse {
		t.Error("Reverse should default to false")
	}
}

func TestDerivedRadians(t *testing.T) {
	cfg := Default()

	wantFov := 225.0 * math.Pi / 180.0
	if math.Abs(float64(cfg.Derived.FovAngleRad)-wantFov) > 1e-5 {
		t.Errorf("FovAngleRad = %v, want %v", cfg.Derived.FovAngleRad, wantFov)
	}

	wantRot := 90.0 * math.Pi / 180.0
	if math.Abs(float64(cfg.Derived.RotationAccelRad)-wantRot) > 1e-5 {
		t.Errorf("RotationAccelRad = %v, want %v", cfg.Derived.RotationAccelRad, wantRot)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("world:\n  num_animals: 7\ngenetic:\n  reverse: true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Overridden fields
	if cfg.World.NumAnimals != 7 {
		t.Errorf("NumAnimals = %d, want 7", cfg.World.NumAnimals)
	}
	if !cfg.Genetic.Reverse {
		t.Error("Reverse should be overridden to true")
	}

	// Untouched fields keep defaults
	if cfg.World.NumFoods != 60 {
		t.Errorf("NumFoods = %d, want default 60", cfg.World.NumFoods)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.World.NumAnimals = 13
	cfg.Sim.GenerationLength = 100

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.World.NumAnimals != 13 {
		t.Errorf("NumAnimals = %d, want 13", loaded.World.NumAnimals)
	}
	if loaded.Sim.GenerationLength != 100 {
		t.Errorf("GenerationLength = %d, want 100", loaded.Sim.GenerationLength)
	}
}
