package autodiff

import "github.com/born-ml/minigrad/internal/autodiff/ops"

// Add returns v + other.
func (v *Value) Add(other *Value) *Value {
	return newNode(ops.NewAddOp(v.data, other.data), v, other)
}

// Mul returns v * other.
func (v *Value) Mul(other *Value) *Value {
	return newNode(ops.NewMulOp(v.data, other.data), v, other)
}

// Pow returns v raised to a constant exponent.
//
// The exponent is not part of the graph and receives no gradient.
func (v *Value) Pow(exponent float64) *Value {
	return newNode(ops.NewPowOp(v.data, exponent), v)
}

// Tanh applies the hyperbolic tangent.
func (v *Value) Tanh() *Value {
	return newNode(ops.NewTanhOp(v.data), v)
}

// ReLU applies max(0, v).
func (v *Value) ReLU() *Value {
	return newNode(ops.NewReLUOp(v.data), v)
}

// The operators below are compositions of the primitives above and carry no
// gradient rules of their own.

// Neg returns -v, computed as v * -1.
func (v *Value) Neg() *Value {
	return v.MulScalar(-1)
}

// Sub returns v - other, computed as v + (-other).
func (v *Value) Sub(other *Value) *Value {
	return v.Add(other.Neg())
}

// Div returns v / other, computed as v * other^-1.
//
// A zero divisor yields ±Inf or NaN; it is not treated as an error.
func (v *Value) Div(other *Value) *Value {
	return v.Mul(other.Pow(-1))
}

// AddScalar returns v + x. Also serves as the commuted form x + v.
func (v *Value) AddScalar(x float64) *Value {
	return v.Add(New(x))
}

// MulScalar returns v * x. Also serves as the commuted form x * v.
func (v *Value) MulScalar(x float64) *Value {
	return v.Mul(New(x))
}

// SubScalar returns v - x.
func (v *Value) SubScalar(x float64) *Value {
	return v.Sub(New(x))
}

// DivScalar returns v / x.
func (v *Value) DivScalar(x float64) *Value {
	return v.Div(New(x))
}

// RSub returns x - v.
func (v *Value) RSub(x float64) *Value {
	return New(x).Sub(v)
}

// RDiv returns x / v.
func (v *Value) RDiv(x float64) *Value {
	return New(x).Div(v)
}

// Sum adds values left to right. It returns a zero leaf for an empty input and
// the value itself for a single input.
func Sum(values ...*Value) *Value {
	if len(values) == 0 {
		return New(0)
	}
	total := values[0]
	for _, v := range values[1:] {
		total = total.Add(v)
	}
	return total
}
