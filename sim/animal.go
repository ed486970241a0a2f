package sim

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/genetic"
)

// Animal is one bird: a position and heading on the torus, an eye, and a
// brain nudging speed and rotation each tick.
type Animal struct {
	position  Vec2
	rotation  float32
	speed     float32
	eye       Eye
	brain     Brain
	vision    []float32
	foodEaten int
}

func newAnimal(cfg *config.Config, rng *rand.Rand, brain Brain) Animal {
	return Animal{
		position: Vec2{X: rng.Float32(), Y: rng.Float32()},
		rotation: rng.Float32() * math.Pi,
		speed:    cfg.Sim.SpeedMax,
		eye:      EyeFromConfig(cfg),
		brain:    brain,
	}
}

// RandomAnimal spawns a bird at a uniform position with a heading in
// [0, pi) and a fresh random brain, moving at full speed.
func RandomAnimal(cfg *config.Config, rng *rand.Rand) (Animal, error) {
	brain, err := RandomBrain(cfg, rng)
	if err != nil {
		return Animal{}, err
	}
	return newAnimal(cfg, rng, brain), nil
}

// AnimalFromChromosome rebuilds a bird from evolved weights. Position,
// heading, and speed are rolled fresh; only the brain carries over.
func AnimalFromChromosome(cfg *config.Config, rng *rand.Rand, c genetic.Chromosome) (Animal, error) {
	brain, err := BrainFromChromosome(cfg, c)
	if err != nil {
		return Animal{}, err
	}
	return newAnimal(cfg, rng, brain), nil
}

// ProcessBrain senses the foods and applies the brain's response. Speed
// stays within [speed_min, speed_max]; rotation is reduced modulo 2 pi.
func (a *Animal) ProcessBrain(cfg *config.Config, foods []Food) error {
	a.vision = a.eye.ProcessVision(a.position, a.rotation, foods)

	speedDelta, rotationDelta, err := a.brain.Propagate(a.vision)
	if err != nil {
		return err
	}

	a.speed = clamp32(a.speed+speedDelta, cfg.Sim.SpeedMin, cfg.Sim.SpeedMax)
	a.rotation = float32(math.Mod(float64(a.rotation+rotationDelta), 2*math.Pi))
	return nil
}

// ProcessMovement advances the bird one tick along its heading, wrapping
// both coordinates into the unit square.
func (a *Animal) ProcessMovement() {
	next := a.position.Add(Heading(a.rotation).Scale(a.speed))
	a.position = Vec2{X: wrap(next.X, 0, 1), Y: wrap(next.Y, 0, 1)}
}

func (a *Animal) Position() Vec2    { return a.position }
func (a *Animal) Rotation() float32 { return a.rotation }
func (a *Animal) Speed() float32    { return a.speed }
func (a *Animal) FoodEaten() int    { return a.foodEaten }

// Vision returns the cell activations from the most recent ProcessBrain.
// It is nil before the first tick.
func (a *Animal) Vision() []float32 { return a.vision }

// Eye exposes the eye geometry for rendering vision cones.
func (a *Animal) Eye() Eye { return a.eye }

// SetPosition moves the bird, wrapping into the unit square.
func (a *Animal) SetPosition(p Vec2) {
	a.position = Vec2{X: wrap(p.X, 0, 1), Y: wrap(p.Y, 0, 1)}
}

// IncrementFoodEaten bumps the fitness counter after a collision.
func (a *Animal) IncrementFoodEaten() { a.foodEaten++ }

// Chromosome flattens the brain for the genetic operators.
func (a *Animal) Chromosome() genetic.Chromosome {
	return a.brain.Chromosome()
}

// Brain exposes the brain for inspection.
func (a *Animal) Brain() *Brain { return &a.brain }
