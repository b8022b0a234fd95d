package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/minigrad/internal/autodiff"
)

// Neuron computes tanh(Σ wᵢxᵢ + b), or the raw sum in linear mode.
//
// Weights are drawn from U(-1, 1); the bias starts at 0.
type Neuron struct {
	weights   []*autodiff.Value
	bias      *autodiff.Value
	nonLinear bool
}

// NewNeuron creates a neuron with nIn weights.
//
// Set nonLinear to false for output neurons whose raw value feeds a loss.
func NewNeuron(nIn int, nonLinear bool, rng *rand.Rand) *Neuron {
	return &Neuron{
		weights:   Uniform(nIn, initBound, rng),
		bias:      autodiff.New(0),
		nonLinear: nonLinear,
	}
}

// Forward computes the neuron output for x.
//
// x must have one entry per weight. A mismatch is not detected: extra inputs
// are ignored and missing ones panic with an index error.
func (n *Neuron) Forward(x []*autodiff.Value) *autodiff.Value {
	act := n.bias
	for i, w := range n.weights {
		act = w.Mul(x[i]).Add(act)
	}

	if n.nonLinear {
		return act.Tanh()
	}
	return act
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*autodiff.Value {
	params := make([]*autodiff.Value, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}

// ZeroGrad resets the gradients of all parameters.
func (n *Neuron) ZeroGrad() {
	zeroGrad(n.Parameters())
}

// Weights returns the weight leaves.
func (n *Neuron) Weights() []*autodiff.Value {
	return n.weights
}

// Bias returns the bias leaf.
func (n *Neuron) Bias() *autodiff.Value {
	return n.bias
}

// NonLinear reports whether tanh is applied to the output.
func (n *Neuron) NonLinear() bool {
	return n.nonLinear
}

// String implements fmt.Stringer.
func (n *Neuron) String() string {
	return fmt.Sprintf("Neuron(nIn=%d, nonLinear=%t)", len(n.weights), n.nonLinear)
}
