package neural

import (
	"errors"
	"fmt"
	"math/rand"
)

// Layer errors.
var (
	ErrEmptyLayer       = errors.New("neural: layer must have at least one neuron")
	ErrMismatchedInputs = errors.New("neural: neurons in a layer must share one input size")
	ErrLayerInputSize   = errors.New("neural: input size does not match layer arity")
	ErrNotEnoughWeights = errors.New("neural: not enough weights")
)

// Layer is a non-empty set of neurons sharing one input arity.
type Layer struct {
	neurons []Neuron
}

// NewLayer validates that neurons is non-empty and uniform in input size.
func NewLayer(neurons []Neuron) (Layer, error) {
	if len(neurons) == 0 {
		return Layer{}, ErrEmptyLayer
	}
	arity := neurons[0].InputSize()
	for i := 1; i < len(neurons); i++ {
		if neurons[i].InputSize() != arity {
			return Layer{}, fmt.Errorf("%w: neuron 0 takes %d, neuron %d takes %d",
				ErrMismatchedInputs, arity, i, neurons[i].InputSize())
		}
	}
	return Layer{neurons: neurons}, nil
}

// RandomLayer creates outputSize random neurons of the given input size.
func RandomLayer(rng *rand.Rand, inputSize, outputSize int) (Layer, error) {
	if inputSize <= 0 {
		return Layer{}, fmt.Errorf("%w: input size %d", ErrLayerInputSize, inputSize)
	}
	neurons := make([]Neuron, outputSize)
	for i := range neurons {
		neurons[i] = RandomNeuron(rng, inputSize)
	}
	return NewLayer(neurons)
}

// Propagate feeds the same input vector through every neuron in order.
func (l Layer) Propagate(inputs []float32) ([]float32, error) {
	if len(inputs) != l.InputSize() {
		return nil, fmt.Errorf("%w: got %d inputs for arity %d",
			ErrLayerInputSize, len(inputs), l.InputSize())
	}
	outputs := make([]float32, len(l.neurons))
	for i, n := range l.neurons {
		out, err := n.Propagate(inputs)
		if err != nil {
			return nil, fmt.Errorf("%w: neuron %d: %v", ErrLayerInputSize, i, err)
		}
		outputs[i] = out
	}
	return outputs, nil
}

// Weights concatenates every neuron's serialized form in declaration order.
func (l Layer) Weights() []float32 {
	out := make([]float32, 0, LayerWeightCount(l.InputSize(), len(l.neurons)))
	for _, n := range l.neurons {
		out = append(out, n.Weights()...)
	}
	return out
}

// LayerFromWeights rebuilds a layer from flat, consuming one contiguous
// (inputSize+1)-sized chunk per neuron. Surplus values beyond the layer's
// need are ignored; the caller tracks consumption.
func LayerFromWeights(inputSize, outputSize int, flat []float32) (Layer, error) {
	perNeuron := inputSize + 1
	need := perNeuron * outputSize
	if len(flat) < need {
		return Layer{}, fmt.Errorf("%w: layer of %d neurons needs %d values, got %d",
			ErrNotEnoughWeights, outputSize, need, len(flat))
	}
	neurons := make([]Neuron, outputSize)
	for i := 0; i < outputSize; i++ {
		n, err := NeuronFromWeights(inputSize, flat[i*perNeuron:(i+1)*perNeuron])
		if err != nil {
			return Layer{}, err
		}
		neurons[i] = n
	}
	return NewLayer(neurons)
}

// LayerWeightCount is the serialized length of a layer:
// (inputSize+1) values per neuron.
func LayerWeightCount(inputSize, neuronCount int) int {
	return (inputSize + 1) * neuronCount
}

// InputSize returns the arity shared by the layer's neurons.
func (l Layer) InputSize() int {
	if len(l.neurons) == 0 {
		return 0
	}
	return l.neurons[0].InputSize()
}

// OutputSize returns the number of neurons, which is the output width.
func (l Layer) OutputSize() int { return len(l.neurons) }

// Neurons exposes the layer's neurons for inspection.
func (l Layer) Neurons() []Neuron { return l.neurons }
