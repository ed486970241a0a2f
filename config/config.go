// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World    WorldConfig    `yaml:"world"`
	BrainEye BrainEyeConfig `yaml:"brain_eye"`
	Sim      SimConfig      `yaml:"sim"`
	Genetic  GeneticConfig  `yaml:"genetic"`
	UI       UIConfig       `yaml:"ui"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world population and entity sizes.
// The world itself is always the unit square with toroidal wrapping.
type WorldConfig struct {
	NumFoods   int     `yaml:"num_foods"`
	NumAnimals int     `yaml:"num_animals"`
	FoodSize   float32 `yaml:"food_size"` // Collision radius of one food item
	BirdSize   float32 `yaml:"bird_size"` // Collision radius of one bird
}

// BrainEyeConfig holds eye geometry and brain topology parameters.
type BrainEyeConfig struct {
	FovRange    float32 `yaml:"fov_range"`     // How far the eye sees, in world units
	FovAngleDeg float32 `yaml:"fov_angle_deg"` // Total field of view in degrees
	NumCells    int     `yaml:"num_cells"`     // Photoreceptor cells (network inputs)
	NumNeurons  int     `yaml:"num_neurons"`   // Hidden layer size
}

// SimConfig holds movement and generation parameters.
type SimConfig struct {
	SpeedMin         float32 `yaml:"speed_min"`
	SpeedMax         float32 `yaml:"speed_max"`
	SpeedAccel       float32 `yaml:"speed_accel"`        // Max speed change per step
	RotationAccelDeg float32 `yaml:"rotation_accel_deg"` // Max heading change per step, degrees
	GenerationLength int     `yaml:"generation_length"`  // Steps between evolutions
}

// GeneticConfig holds evolution parameters.
type GeneticConfig struct {
	MutationChance float32 `yaml:"mutation_chance"`
	MutationCoeff  float32 `yaml:"mutation_coeff"`
	Reverse        bool    `yaml:"reverse"` // Select for the fewest meals instead of the most
}

// UIConfig holds display settings for the app shell.
type UIConfig struct {
	WindowWidth  int     `yaml:"window_width"`
	WindowHeight int     `yaml:"window_height"`
	TargetFPS    int     `yaml:"target_fps"`
	SimSpeed     float32 `yaml:"sim_speed"` // Simulation steps per frame multiplier
	ShowVision   bool    `yaml:"show_vision"`
	ShowStats    bool    `yaml:"show_stats"`
	ShowGrid     bool    `yaml:"show_grid"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FovAngleRad      float32 // BrainEye.FovAngleDeg in radians
	RotationAccelRad float32 // Sim.RotationAccelDeg in radians
}

const degToRad = 3.14159265358979323846 / 180.0

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a configuration built from the embedded defaults alone.
// Panics if the embedded defaults do not parse; that is a packaging error.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: bad embedded defaults: %v", err))
	}
	cfg.computeDerived()
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FovAngleRad = c.BrainEye.FovAngleDeg * degToRad
	c.Derived.RotationAccelRad = c.Sim.RotationAccelDeg * degToRad
}

// Recompute refreshes derived values after fields were edited in place,
// as the UI config sliders do.
func (c *Config) Recompute() {
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
