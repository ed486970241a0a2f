// Package game drives the interactive simulation: it advances the world
// each frame, renders it through a toroidal camera, and applies actions
// coming back from the sidebar.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/pthm-cable/flock/camera"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/telemetry"
	"github.com/pthm-cable/flock/ui"
)

// SidebarWidth is the fixed width of the control sidebar in pixels.
const SidebarWidth = 320

// Options configures a new Game.
type Options struct {
	Seed       int64
	ConfigPath string
	OutputDir  string
}

// Game holds the interactive session: simulation, camera, telemetry, and
// the sidebar panels.
type Game struct {
	cfg *config.Config
	rng *rand.Rand
	sim *sim.Simulation

	camera  *camera.Camera
	history *telemetry.History
	output  *telemetry.OutputManager

	panel     *ui.ControlPanel
	hud       *ui.HUD
	stats     *ui.StatsPanel
	inspector *ui.Inspector

	opts Options

	paused   bool
	simSpeed float32
	stepDebt float32

	// Index into the current frame's animals, -1 when nothing is picked.
	selected int

	showVision bool
	showGrid   bool
	showStats  bool

	screenWidth  float32
	screenHeight float32

	// Sidebar results from the last Draw, applied at the top of the next
	// Update so simulation mutation stays out of the render pass.
	pending struct {
		state   ui.State
		actions ui.Actions
		valid   bool
	}
}

// New builds a game from the global config. No raylib calls happen here;
// the window can be opened before or after.
func New(opts Options) (*Game, error) {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(opts.Seed))

	s, err := sim.RandomSimulation(cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	w := float32(cfg.UI.WindowWidth)
	h := float32(cfg.UI.WindowHeight)
	sidebarX := int32(w) - SidebarWidth

	return &Game{
		cfg:          cfg,
		rng:          rng,
		sim:          s,
		camera:       camera.New(w-SidebarWidth, h),
		history:      &telemetry.History{},
		output:       output,
		panel:        ui.NewControlPanel(sidebarX, 0, SidebarWidth, cfg),
		hud:          ui.NewHUD(),
		stats:        ui.NewStatsPanel(sidebarX, 0, SidebarWidth, 150),
		inspector:    ui.NewInspector(sidebarX, 0, SidebarWidth),
		opts:         opts,
		simSpeed:     cfg.UI.SimSpeed,
		selected:     -1,
		showVision:   cfg.UI.ShowVision,
		showGrid:     cfg.UI.ShowGrid,
		showStats:    cfg.UI.ShowStats,
		screenWidth:  w,
		screenHeight: h,
	}, nil
}

// Update applies pending sidebar actions, handles input, and advances the
// simulation according to the current speed.
func (g *Game) Update() {
	if g.pending.valid {
		g.pending.valid = false
		g.applyPanel(g.pending.state, g.pending.actions)
	}

	g.handleResize()
	g.handleInput()

	if g.paused {
		return
	}

	g.stepDebt += g.simSpeed
	for g.stepDebt >= 1 {
		g.stepDebt--
		g.step()
		if g.paused {
			break
		}
	}
}

// Unload releases run outputs. Call once after the main loop exits.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}

func (g *Game) step() {
	stats, err := g.sim.Step(g.rng)
	if err != nil {
		slog.Error("simulation step failed", "error", err)
		g.paused = true
		return
	}
	if stats != nil {
		g.recordStats(*stats)
	}
}

func (g *Game) recordStats(s sim.Stats) {
	rec := telemetry.NewRecord(s)
	g.history.Append(rec)
	if err := g.output.WriteRecord(rec); err != nil {
		slog.Error("writing history record", "error", err)
	}
	slog.Info("generation complete", "stats", s)
}

// trainGenerations fast-forwards n full generations synchronously. The
// frame freezes until it finishes.
func (g *Game) trainGenerations(n int) {
	start := time.Now()
	for i := 0; i < n; i++ {
		stats, err := g.sim.Train(g.rng)
		if err != nil {
			slog.Error("training aborted", "generation", g.sim.Generation(), "error", err)
			return
		}
		g.recordStats(stats)
	}
	slog.Info("training finished", "generations", n, "elapsed", time.Since(start))
	g.stepDebt = 0
}

func (g *Game) resetWorld() {
	s, err := sim.RandomSimulation(g.cfg, g.rng)
	if err != nil {
		slog.Error("world reset failed", "error", err)
		return
	}
	g.sim = s
	g.history = &telemetry.History{}
	g.selected = -1
	g.stepDebt = 0
	slog.Info("world reset",
		"birds", g.cfg.World.NumAnimals,
		"foods", g.cfg.World.NumFoods)
}

func (g *Game) applyPanel(s ui.State, a ui.Actions) {
	g.paused = s.Paused
	g.simSpeed = s.SimSpeed
	g.showVision = s.ShowVision
	g.showGrid = s.ShowGrid
	g.showStats = s.ShowStats

	if a.Reset {
		g.resetWorld()
	}
	if a.SpawnBird {
		if err := g.sim.SpawnAnimal(g.rng); err != nil {
			slog.Error("spawning bird", "error", err)
		}
	}
	if a.SpawnFood {
		g.sim.SpawnFood(g.rng)
	}
	if a.Train {
		g.trainGenerations(a.TrainGenerations)
	}
	if a.ApplyConfig {
		g.panel.CommitDraft(g.cfg)
		g.resetWorld()
	}
	if a.SaveConfig {
		g.saveConfig()
	}
	if a.LoadConfig {
		g.loadConfig()
	}
	if a.ExportHistory {
		g.exportHistory()
	}
}

func (g *Game) saveConfig() {
	path := g.configPath()
	if err := g.cfg.WriteYAML(path); err != nil {
		slog.Error("saving config", "path", path, "error", err)
		return
	}
	slog.Info("config saved", "path", path)
}

func (g *Game) loadConfig() {
	path := g.configPath()
	loaded, err := config.Load(path)
	if err != nil {
		slog.Error("loading config", "path", path, "error", err)
		return
	}
	*g.cfg = *loaded
	g.panel.SyncDraft(g.cfg)
	g.resetWorld()
	slog.Info("config loaded", "path", path)
}

func (g *Game) exportHistory() {
	dir := g.output.Dir()
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, fmt.Sprintf("history-gen%04d.csv", g.sim.Generation()))
	if err := g.history.WriteCSV(path); err != nil {
		slog.Error("exporting history", "path", path, "error", err)
		return
	}
	slog.Info("history exported", "path", path, "generations", g.history.Len())
}

func (g *Game) configPath() string {
	if g.opts.ConfigPath != "" {
		return g.opts.ConfigPath
	}
	return "flock.yaml"
}

func (g *Game) viewportWidth() float32 {
	w := g.screenWidth - SidebarWidth
	if w < 1 {
		w = 1
	}
	return w
}
