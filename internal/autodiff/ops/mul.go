package ops

// MulOp represents multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct {
	a, b float64
}

// NewMulOp creates a new MulOp.
func NewMulOp(a, b float64) *MulOp {
	return &MulOp{a: a, b: b}
}

// Name returns "*".
func (op *MulOp) Name() string { return "*" }

// Forward returns a * b.
func (op *MulOp) Forward() float64 {
	return op.a * op.b
}

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad float64) []float64 {
	return []float64{op.b * outputGrad, op.a * outputGrad}
}
