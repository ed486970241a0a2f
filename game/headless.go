package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/telemetry"
)

// RunHeadless trains generation after generation without opening a window.
// A generations limit of zero or less trains until the process is killed.
func RunHeadless(opts Options, generations int) error {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(opts.Seed))

	s, err := sim.RandomSimulation(cfg, rng)
	if err != nil {
		return fmt.Errorf("building world: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return err
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		return err
	}

	start := time.Now()
	for gen := 0; generations <= 0 || gen < generations; gen++ {
		stats, err := s.Train(rng)
		if err != nil {
			return fmt.Errorf("generation %d: %w", s.Generation(), err)
		}
		rec := telemetry.NewRecord(stats)
		if err := output.WriteRecord(rec); err != nil {
			return err
		}
		slog.Info("generation complete", "stats", stats)
	}

	slog.Info("training finished",
		"generations", generations,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
