package ops

// AddOp represents addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1
//   - d(a+b)/db = 1
type AddOp struct {
	a, b float64
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b float64) *AddOp {
	return &AddOp{a: a, b: b}
}

// Name returns "+".
func (op *AddOp) Name() string { return "+" }

// Forward returns a + b.
func (op *AddOp) Forward() float64 {
	return op.a + op.b
}

// Backward passes the gradient through unchanged to both inputs.
func (op *AddOp) Backward(outputGrad float64) []float64 {
	return []float64{outputGrad, outputGrad}
}
