package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/minigrad/internal/autodiff"
)

// Layer is a row of neurons that all read the same input vector.
type Layer struct {
	inFeatures  int
	outFeatures int
	nonLinear   bool
	neurons     []*Neuron
}

// NewLayer creates a layer mapping inFeatures inputs to outFeatures outputs.
func NewLayer(inFeatures, outFeatures int, nonLinear bool, rng *rand.Rand) *Layer {
	neurons := make([]*Neuron, outFeatures)
	for i := range neurons {
		neurons[i] = NewNeuron(inFeatures, nonLinear, rng)
	}
	return &Layer{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		nonLinear:   nonLinear,
		neurons:     neurons,
	}
}

// Forward returns one output per neuron.
func (l *Layer) Forward(x []*autodiff.Value) []*autodiff.Value {
	out := make([]*autodiff.Value, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = n.Forward(x)
	}
	return out
}

// Parameters returns every neuron's parameters, neuron by neuron.
func (l *Layer) Parameters() []*autodiff.Value {
	params := make([]*autodiff.Value, 0, l.outFeatures*(l.inFeatures+1))
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// ZeroGrad resets the gradients of all parameters.
func (l *Layer) ZeroGrad() {
	zeroGrad(l.Parameters())
}

// Neurons returns the layer's neurons.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// InFeatures returns the number of input features.
func (l *Layer) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of outputs.
func (l *Layer) OutFeatures() int {
	return l.outFeatures
}

// NonLinear reports whether the layer's neurons apply tanh.
func (l *Layer) NonLinear() bool {
	return l.nonLinear
}

// String implements fmt.Stringer.
func (l *Layer) String() string {
	return fmt.Sprintf("Layer(%d, %d, %t)", l.inFeatures, l.outFeatures, l.nonLinear)
}
