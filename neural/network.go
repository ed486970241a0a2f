package neural

import (
	"errors"
	"fmt"
	"math/rand"
)

// Network errors.
var (
	ErrLayerCount           = errors.New("neural: topology needs at least two entries")
	ErrLayerTopology        = errors.New("neural: invalid layer topology")
	ErrTooManyWeights       = errors.New("neural: too many weights")
	ErrNetworkUninitialized = errors.New("neural: network has no layers")
	ErrNetworkInputSize     = errors.New("neural: input size does not match first layer")
	ErrPropagation          = errors.New("neural: propagation failed")
)

// Network chains layers so layer i feeds layer i+1.
type Network struct {
	layers []Layer
}

// RandomNetwork builds a randomly initialized network from a topology of
// per-layer sizes; topology[0] is the input arity, the rest are neuron
// counts.
func RandomNetwork(rng *rand.Rand, topology []int) (Network, error) {
	if len(topology) < 2 {
		return Network{}, fmt.Errorf("%w: got %d", ErrLayerCount, len(topology))
	}
	layers := make([]Layer, 0, len(topology)-1)
	for i := 0; i < len(topology)-1; i++ {
		layer, err := RandomLayer(rng, topology[i], topology[i+1])
		if err != nil {
			return Network{}, fmt.Errorf("%w: layer %d: %v", ErrLayerTopology, i, err)
		}
		layers = append(layers, layer)
	}
	return Network{layers: layers}, nil
}

// NetworkFromWeights rebuilds a network from the flattened form produced by
// Weights, consuming flat layer by layer. Every value must be consumed.
func NetworkFromWeights(topology []int, flat []float32) (Network, error) {
	if len(topology) < 2 {
		return Network{}, fmt.Errorf("%w: got %d", ErrLayerCount, len(topology))
	}
	layers := make([]Layer, 0, len(topology)-1)
	offset := 0
	for i := 0; i < len(topology)-1; i++ {
		layer, err := LayerFromWeights(topology[i], topology[i+1], flat[offset:])
		if err != nil {
			if errors.Is(err, ErrNotEnoughWeights) {
				return Network{}, fmt.Errorf("layer %d: %w", i, err)
			}
			return Network{}, fmt.Errorf("%w: layer %d: %v", ErrLayerTopology, i, err)
		}
		layers = append(layers, layer)
		offset += LayerWeightCount(topology[i], topology[i+1])
	}
	if offset != len(flat) {
		return Network{}, fmt.Errorf("%w: %d values left over", ErrTooManyWeights, len(flat)-offset)
	}
	return Network{layers: layers}, nil
}

// Propagate chains the input through every layer in order.
func (n Network) Propagate(inputs []float32) ([]float32, error) {
	if len(n.layers) == 0 {
		return nil, ErrNetworkUninitialized
	}
	if len(inputs) != n.InputSize() {
		return nil, fmt.Errorf("%w: got %d, first layer takes %d",
			ErrNetworkInputSize, len(inputs), n.InputSize())
	}
	current := inputs
	for i, layer := range n.layers {
		out, err := layer.Propagate(current)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %d: %v", ErrPropagation, i, err)
		}
		current = out
	}
	return current, nil
}

// Weights flattens every layer's neurons in declaration order, each neuron
// bias first. NetworkFromWeights consumes exactly this order; the genetic
// operators rely on the round trip being exact.
func (n Network) Weights() []float32 {
	var out []float32
	for _, layer := range n.layers {
		out = append(out, layer.Weights()...)
	}
	return out
}

// WeightCount is the flattened length implied by a topology.
func WeightCount(topology []int) int {
	count := 0
	for i := 0; i < len(topology)-1; i++ {
		count += LayerWeightCount(topology[i], topology[i+1])
	}
	return count
}

// InputSize returns the arity of the first layer, 0 if uninitialized.
func (n Network) InputSize() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[0].InputSize()
}

// OutputSize returns the width of the last layer, 0 if uninitialized.
func (n Network) OutputSize() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[len(n.layers)-1].OutputSize()
}

// Layers exposes the network's layers for inspection.
func (n Network) Layers() []Layer { return n.layers }
