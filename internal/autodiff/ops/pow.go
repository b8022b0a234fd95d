package ops

import (
	"math"
	"strconv"
)

// PowOp raises a value to a fixed real exponent: output = x^e.
//
// The exponent is a constant, not a graph node, so only x receives a gradient:
//
//	d(x^e)/dx = e * x^(e-1)
//
// Domain errors (negative base with fractional exponent, zero base with
// negative exponent) produce NaN or Inf as math.Pow does.
type PowOp struct {
	base     float64
	exponent float64
}

// NewPowOp creates a new PowOp.
func NewPowOp(base, exponent float64) *PowOp {
	return &PowOp{base: base, exponent: exponent}
}

// Name returns "**" followed by the exponent, e.g. "**2" or "**-1".
func (op *PowOp) Name() string {
	return "**" + strconv.FormatFloat(op.exponent, 'g', -1, 64)
}

// Exponent returns the captured exponent.
func (op *PowOp) Exponent() float64 {
	return op.exponent
}

// Forward returns base^exponent.
func (op *PowOp) Forward() float64 {
	return math.Pow(op.base, op.exponent)
}

// Backward computes the power-rule gradient.
func (op *PowOp) Backward(outputGrad float64) []float64 {
	local := op.exponent * math.Pow(op.base, op.exponent-1)
	return []float64{local * outputGrad}
}
