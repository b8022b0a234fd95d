// Package nn implements neural network modules on top of the scalar autodiff engine.
//
// This package provides building blocks for small feed-forward networks:
//   - Module interface: parameter listing and gradient reset
//   - Neuron: weighted sum plus bias, optionally squashed with tanh
//   - Layer: a row of neurons sharing the same inputs
//   - MLP: layers chained in sequence, linear on the last layer
//   - MSELoss: mean squared error built from engine operators
//
// Every parameter is an *autodiff.Value leaf. Forward passes build a fresh
// graph each call; gradients land on the shared parameter leaves and
// accumulate until ZeroGrad is called.
package nn

import (
	"github.com/born-ml/minigrad/internal/autodiff"
)

// Module is the base interface for all neural network components.
type Module interface {
	// Parameters returns all trainable parameters in a stable order.
	//
	// The order is fixed for the lifetime of the module so optimizers can keep
	// per-parameter state across steps.
	Parameters() []*autodiff.Value

	// ZeroGrad resets the gradient of every parameter to 0.
	//
	// Call this before each backward pass; gradients otherwise accumulate.
	ZeroGrad()
}

// zeroGrad resets the gradients of params.
func zeroGrad(params []*autodiff.Value) {
	for _, p := range params {
		p.ZeroGrad()
	}
}

// Inputs wraps raw features as leaf values.
func Inputs(xs []float64) []*autodiff.Value {
	values := make([]*autodiff.Value, len(xs))
	for i, x := range xs {
		values[i] = autodiff.New(x)
	}
	return values
}
