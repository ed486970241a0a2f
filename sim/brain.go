package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/genetic"
	"github.com/pthm-cable/flock/neural"
)

// Brain failure modes. Errors from the neural layer are translated into
// this family at the boundary so callers never match on neural sentinels.
var (
	ErrInvalidBrainConfig  = errors.New("sim: invalid brain configuration")
	ErrInvalidChromosome   = errors.New("sim: chromosome does not fit brain topology")
	ErrBrainInputSize      = errors.New("sim: vision size does not match brain input")
	ErrBrainPropagation    = errors.New("sim: brain propagation failed")
	ErrInsufficientOutputs = errors.New("sim: brain produced fewer than two outputs")
	ErrBrain               = errors.New("sim: brain operation failed")
)

// Brain wraps the feed-forward network and turns its two raw outputs into
// bounded speed and rotation deltas.
type Brain struct {
	speedAccel    float32
	rotationAccel float32
	network       neural.Network
}

// BrainTopology returns the layer sizes for the configured eye: one input
// per vision cell, one hidden layer, and two outputs.
func BrainTopology(cfg *config.Config) []int {
	return []int{cfg.BrainEye.NumCells, cfg.BrainEye.NumNeurons, 2}
}

// RandomBrain draws a fresh network for the configured topology.
func RandomBrain(cfg *config.Config, rng *rand.Rand) (Brain, error) {
	network, err := neural.RandomNetwork(rng, BrainTopology(cfg))
	if err != nil {
		return Brain{}, fmt.Errorf("%w: %v", ErrInvalidBrainConfig, err)
	}
	return newBrain(cfg, network), nil
}

// BrainFromChromosome rebuilds a brain from flattened weights, typically
// produced by an earlier generation's genetic round.
func BrainFromChromosome(cfg *config.Config, c genetic.Chromosome) (Brain, error) {
	network, err := neural.NetworkFromWeights(BrainTopology(cfg), c.Genes())
	if err != nil {
		switch {
		case errors.Is(err, neural.ErrNotEnoughWeights), errors.Is(err, neural.ErrTooManyWeights):
			return Brain{}, fmt.Errorf("%w: %v", ErrInvalidChromosome, err)
		case errors.Is(err, neural.ErrLayerCount), errors.Is(err, neural.ErrLayerTopology):
			return Brain{}, fmt.Errorf("%w: %v", ErrInvalidBrainConfig, err)
		default:
			return Brain{}, fmt.Errorf("%w: %v", ErrBrain, err)
		}
	}
	return newBrain(cfg, network), nil
}

func newBrain(cfg *config.Config, network neural.Network) Brain {
	return Brain{
		speedAccel:    cfg.Sim.SpeedAccel,
		rotationAccel: cfg.Derived.RotationAccelRad,
		network:       network,
	}
}

// Propagate runs vision through the network and maps the response to a
// speed delta and a rotation delta, each clamped to its acceleration
// limit.
func (b *Brain) Propagate(vision []float32) (speed, rotation float32, err error) {
	response, err := b.network.Propagate(vision)
	if err != nil {
		switch {
		case errors.Is(err, neural.ErrNetworkInputSize):
			return 0, 0, fmt.Errorf("%w: %v", ErrBrainInputSize, err)
		case errors.Is(err, neural.ErrPropagation):
			return 0, 0, fmt.Errorf("%w: %v", ErrBrainPropagation, err)
		default:
			return 0, 0, fmt.Errorf("%w: %v", ErrBrain, err)
		}
	}
	if len(response) < 2 {
		return 0, 0, ErrInsufficientOutputs
	}

	r0 := clamp32(response[0], 0, 1) - 0.5
	r1 := clamp32(response[1], 0, 1) - 0.5

	speed = clamp32(r0+r1, -b.speedAccel, b.speedAccel)
	rotation = clamp32(r0-r1, -b.rotationAccel, b.rotationAccel)
	return speed, rotation, nil
}

// Chromosome flattens the network weights for the genetic operators.
func (b *Brain) Chromosome() genetic.Chromosome {
	return genetic.NewChromosome(b.network.Weights())
}

// Network exposes the underlying network for inspection.
func (b *Brain) Network() *neural.Network { return &b.network }
