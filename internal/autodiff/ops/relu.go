package ops

// ReLUOp represents a ReLU (Rectified Linear Unit) activation: output = max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
type ReLUOp struct {
	input float64
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(x float64) *ReLUOp {
	return &ReLUOp{input: x}
}

// Name returns "relu".
func (op *ReLUOp) Name() string { return "relu" }

// Forward returns max(0, x).
func (op *ReLUOp) Forward() float64 {
	if op.input > 0 {
		return op.input
	}
	return 0
}

// Backward masks the gradient where the input was not positive.
func (op *ReLUOp) Backward(outputGrad float64) []float64 {
	if op.input > 0 {
		return []float64{outputGrad}
	}
	return []float64{0}
}
