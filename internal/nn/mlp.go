package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/minigrad/internal/autodiff"
)

// MLP is a multi-layer perceptron.
//
// sizes lists the width of every stage including the input, so sizes
// [2, 4, 4, 1] builds three layers: 2→4 and 4→4 with tanh, then 4→1 linear.
//
// Example:
//
//	model := nn.NewMLP([]int{2, 4, 4, 1}, nn.NewRand(42))
//	out := model.Forward(nn.Inputs([]float64{0, 1}))
//	loss := nn.MSELoss(out, []float64{1})
//	model.ZeroGrad()
//	loss.Backward()
type MLP struct {
	sizes  []int
	layers []*Layer
}

// NewMLP creates an MLP from a list of stage widths.
func NewMLP(sizes []int, rng *rand.Rand) *MLP {
	layers := make([]*Layer, 0, max(len(sizes)-1, 0))
	for i := 0; i+1 < len(sizes); i++ {
		last := i == len(sizes)-2
		layers = append(layers, NewLayer(sizes[i], sizes[i+1], !last, rng))
	}
	return &MLP{
		sizes:  append([]int(nil), sizes...),
		layers: layers,
	}
}

// Forward feeds x through every layer in order.
func (m *MLP) Forward(x []*autodiff.Value) []*autodiff.Value {
	out := x
	for _, l := range m.layers {
		out = l.Forward(out)
	}
	return out
}

// Parameters returns every layer's parameters, layer by layer.
func (m *MLP) Parameters() []*autodiff.Value {
	var params []*autodiff.Value
	for _, l := range m.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// ZeroGrad resets the gradients of all parameters.
func (m *MLP) ZeroGrad() {
	zeroGrad(m.Parameters())
}

// Layers returns the layers in forward order.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// Sizes returns a copy of the stage widths.
func (m *MLP) Sizes() []int {
	return append([]int(nil), m.sizes...)
}

// String implements fmt.Stringer.
func (m *MLP) String() string {
	return fmt.Sprintf("MLP(%v)", m.sizes)
}
