package ops

import "math"

// TanhOp represents the hyperbolic tangent activation.
type TanhOp struct {
	output float64
}

// NewTanhOp creates a new TanhOp for input x.
func NewTanhOp(x float64) *TanhOp {
	return &TanhOp{output: math.Tanh(x)}
}

// Name returns "tanh".
func (op *TanhOp) Name() string { return "tanh" }

// Forward returns tanh(x).
func (op *TanhOp) Forward() float64 {
	return op.output
}

// Backward computes the gradient for tanh.
//
// d(tanh(x))/dx = 1 - tanh²(x), reusing the cached output.
func (op *TanhOp) Backward(outputGrad float64) []float64 {
	return []float64{(1 - op.output*op.output) * outputGrad}
}
