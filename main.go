package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Train without graphics")
	generations := flag.Int("generations", 0, "Stop headless training after N generations (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV history and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:       rngSeed,
		ConfigPath: *configPath,
		OutputDir:  *outputDir,
	}

	if *headless {
		slog.Info("starting headless training",
			"seed", rngSeed,
			"generations", *generations,
		)
		if err := game.RunHeadless(opts, *generations); err != nil {
			slog.Error("headless training failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	g, err := game.New(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.UI.WindowWidth), int32(cfg.UI.WindowHeight), "Flock")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.UI.TargetFPS))

	slog.Info("starting", "seed", rngSeed, "birds", cfg.World.NumAnimals, "foods", cfg.World.NumFoods)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}
