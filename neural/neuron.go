// Package neural implements the layered feed-forward network driving each
// bird: ReLU neurons, layers sharing one input arity, and the canonical
// bias-then-weights flattening the genetic operators act on.
package neural

import (
	"errors"
	"fmt"
	"math/rand"
)

// Neuron errors.
var (
	ErrNeuronInputSize   = errors.New("neural: input count does not match weight count")
	ErrNeuronWeightCount = errors.New("neural: weight slice must hold bias plus one weight per input")
)

// Neuron is a single unit: one bias, one weight per input, ReLU activation.
type Neuron struct {
	bias    float32
	weights []float32
}

// NewNeuron builds a neuron from an explicit bias and weight vector.
func NewNeuron(bias float32, weights []float32) Neuron {
	return Neuron{bias: bias, weights: weights}
}

// RandomNeuron creates a neuron with weights and bias drawn uniformly from
// [-1, 1). Weights are drawn before the bias; seeded reproducibility depends
// on this order.
func RandomNeuron(rng *rand.Rand, inputSize int) Neuron {
	weights := make([]float32, inputSize)
	for i := range weights {
		weights[i] = randWeight(rng)
	}
	bias := randWeight(rng)
	return Neuron{bias: bias, weights: weights}
}

// Propagate computes relu(dot(weights, inputs) + bias).
func (n Neuron) Propagate(inputs []float32) (float32, error) {
	if len(inputs) != len(n.weights) {
		return 0, fmt.Errorf("%w: got %d inputs for %d weights",
			ErrNeuronInputSize, len(inputs), len(n.weights))
	}
	sum := n.bias
	for i, w := range n.weights {
		sum += w * inputs[i]
	}
	return relu(sum), nil
}

// Weights returns the serialized form [bias, w0, w1, ...].
func (n Neuron) Weights() []float32 {
	out := make([]float32, 0, len(n.weights)+1)
	out = append(out, n.bias)
	return append(out, n.weights...)
}

// NeuronFromWeights rebuilds a neuron from its serialized form: exactly
// inputSize+1 values, bias first.
func NeuronFromWeights(inputSize int, flat []float32) (Neuron, error) {
	if len(flat) != inputSize+1 {
		return Neuron{}, fmt.Errorf("%w: got %d values for input size %d",
			ErrNeuronWeightCount, len(flat), inputSize)
	}
	weights := make([]float32, inputSize)
	copy(weights, flat[1:])
	return Neuron{bias: flat[0], weights: weights}, nil
}

// Bias returns the neuron's bias term.
func (n Neuron) Bias() float32 { return n.bias }

// InputSize returns the number of inputs the neuron accepts.
func (n Neuron) InputSize() int { return len(n.weights) }

// relu is max(0, x).
func relu(x float32) float32 {
	if x < 0 {
		return 0
	}
	return x
}

// randWeight draws uniformly from [-1, 1).
func randWeight(rng *rand.Rand) float32 {
	return rng.Float32()*2 - 1
}
