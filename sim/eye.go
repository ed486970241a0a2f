package sim

import "github.com/pthm-cable/flock/config"

// Eye divides a bird's field of view into angular cells and measures, per
// cell, how much food falls inside it. Nearer food registers stronger.
type Eye struct {
	fovRange float32
	fovAngle float32
	numCells int
}

// NewEye builds an eye with explicit geometry. fovAngle is in radians.
func NewEye(fovRange, fovAngle float32, numCells int) Eye {
	return Eye{fovRange: fovRange, fovAngle: fovAngle, numCells: numCells}
}

// EyeFromConfig builds an eye from the brain_eye section.
func EyeFromConfig(cfg *config.Config) Eye {
	return Eye{
		fovRange: cfg.BrainEye.FovRange,
		fovAngle: cfg.Derived.FovAngleRad,
		numCells: cfg.BrainEye.NumCells,
	}
}

// ProcessVision scans foods and returns one accumulated energy value per
// cell. Bearings are measured from the +Y axis. Foods beyond fovRange or
// outside the angular window contribute nothing; multiple foods landing in
// the same cell sum their contributions.
func (e Eye) ProcessVision(position Vec2, rotation float32, foods []Food) []float32 {
	cells := make([]float32, e.numCells)

	for i := range foods {
		toFood := foods[i].Position().Sub(position)
		distance := toFood.Length()
		if distance > e.fovRange {
			continue
		}

		diff := normalizeAngle(toFood.Bearing() - rotation)

		half := e.fovAngle / 2
		if absf(diff) > half {
			continue
		}

		cell := int((diff + half) / e.fovAngle * float32(e.numCells))
		if cell > e.numCells-1 {
			cell = e.numCells - 1
		}
		cells[cell] += (e.fovRange - distance) / e.fovRange
	}

	return cells
}

func (e Eye) NumCells() int     { return e.numCells }
func (e Eye) FovRange() float32 { return e.fovRange }
func (e Eye) FovAngle() float32 { return e.fovAngle }
