// Package autodiff implements reverse-mode automatic differentiation over scalars.
//
// A Value is one node of a computation graph. Operators such as Add, Mul and
// Tanh never modify their operands; each call creates a new Value that records
// its inputs together with an ops.Operation describing how to route gradient
// back to them. Calling Backward on the final node fills in Grad for every
// node it depends on.
//
// Usage:
//
//	x := autodiff.New(-4)
//	y := x.MulScalar(2).AddScalar(2).Add(x)
//	y.Backward()
//	fmt.Println(x.Grad()) // dy/dx = 3
//
// Gradients accumulate. Reusing leaves across several forward passes keeps
// adding into the same accumulators until ZeroGrad is called.
package autodiff

import (
	"fmt"

	"github.com/born-ml/minigrad/internal/autodiff/ops"
)

// Value is a scalar node in the computation graph.
//
// Node identity matters: two Values holding the same number are distinct graph
// participants, and all bookkeeping during the backward pass is keyed by
// pointer.
type Value struct {
	data   float64
	grad   float64
	inputs []*Value      // Operands in operator order (may repeat, e.g. x*x)
	op     ops.Operation // nil for leaves
}

// New creates a leaf Value wrapping x.
func New(x float64) *Value {
	return &Value{data: x}
}

// Scalar is an alias for New, typically used for constants.
func Scalar(x float64) *Value {
	return New(x)
}

// newNode builds the result node of op applied to inputs.
func newNode(op ops.Operation, inputs ...*Value) *Value {
	return &Value{
		data:   op.Forward(),
		inputs: inputs,
		op:     op,
	}
}

// Data returns the forward-computed value.
func (v *Value) Data() float64 {
	return v.data
}

// SetData overwrites the value of a leaf.
//
// Intended for optimizers updating parameters between forward passes. Nodes
// already built from v keep the value they were computed with.
func (v *Value) SetData(x float64) {
	v.data = x
}

// Grad returns the accumulated gradient of the last backward pass(es).
func (v *Value) Grad() float64 {
	return v.grad
}

// SetGrad overwrites the gradient accumulator.
//
// This is typically called by gradient clipping between the backward pass and
// the optimizer step.
func (v *Value) SetGrad(g float64) {
	v.grad = g
}

// ZeroGrad resets the gradient accumulator to 0.
func (v *Value) ZeroGrad() {
	v.grad = 0
}

// IsLeaf reports whether v was created by New rather than by an operator.
func (v *Value) IsLeaf() bool {
	return v.op == nil
}

// Op returns the label of the operator that produced v, or "" for leaves.
func (v *Value) Op() string {
	if v.op == nil {
		return ""
	}
	return v.op.Name()
}

// Children returns the distinct operands v was built from, in first-use order.
//
// The returned slice is a copy; the graph itself cannot be modified through it.
func (v *Value) Children() []*Value {
	if len(v.inputs) == 0 {
		return nil
	}
	children := make([]*Value, 0, len(v.inputs))
	for _, in := range v.inputs {
		if !containsValue(children, in) {
			children = append(children, in)
		}
	}
	return children
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return fmt.Sprintf("Value(data=%g)", v.data)
}

// propagate pushes v's accumulated gradient onto its inputs.
func (v *Value) propagate() {
	if v.op == nil {
		return
	}
	contributions := v.op.Backward(v.grad)
	for i, in := range v.inputs {
		in.grad += contributions[i]
	}
}

// containsValue reports whether target is in values by identity.
// Operators have at most two inputs, so a linear scan is enough.
func containsValue(values []*Value, target *Value) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
