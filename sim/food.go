package sim

import "math/rand"

// Food is a stationary morsel. Eating never removes it; the simulation
// teleports it to a fresh random spot instead, so the food count stays
// constant for the whole run.
type Food struct {
	position Vec2
}

// NewFood places a food item at the given position.
func NewFood(position Vec2) Food {
	return Food{position: position}
}

// RandomFood places a food item uniformly in the unit square.
func RandomFood(rng *rand.Rand) Food {
	return Food{position: Vec2{X: rng.Float32(), Y: rng.Float32()}}
}

func (f Food) Position() Vec2 { return f.position }

func (f *Food) SetPosition(p Vec2) { f.position = p }

// RandomizePosition teleports the food to a fresh uniform spot.
func (f *Food) RandomizePosition(rng *rand.Rand) {
	f.position = Vec2{X: rng.Float32(), Y: rng.Float32()}
}
