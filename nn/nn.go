// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neurons, layers and multi-layer perceptrons built on
// scalar autodiff values.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/minigrad/autodiff"
//	    "github.com/born-ml/minigrad/nn"
//	)
//
//	func main() {
//	    model := nn.NewMLP([]int{2, 4, 4, 1}, nn.NewRand(42))
//
//	    pred := model.Forward(nn.Inputs([]float64{0, 1}))
//	    loss := nn.MSELoss(pred, []float64{1})
//
//	    model.ZeroGrad()
//	    loss.Backward()
//	}
//
// Hidden layers apply tanh; the output layer is linear.
package nn

import (
	"math/rand"

	"github.com/born-ml/minigrad/autodiff"
	"github.com/born-ml/minigrad/internal/nn"
)

// Module is implemented by every unit that owns parameters.
type Module = nn.Module

// Neuron computes tanh(w·x + b), or w·x + b when linear.
type Neuron = nn.Neuron

// Layer is a row of neurons sharing one input vector.
type Layer = nn.Layer

// MLP chains layers; the last layer is linear.
type MLP = nn.MLP

// ErrStateDict is returned when parameters do not fit a model.
var ErrStateDict = nn.ErrStateDict

// NewNeuron creates a neuron with nIn weights drawn from U(-1, 1) and a zero bias.
func NewNeuron(nIn int, nonLinear bool, rng *rand.Rand) *Neuron {
	return nn.NewNeuron(nIn, nonLinear, rng)
}

// NewLayer creates a layer of outFeatures neurons, each reading inFeatures inputs.
func NewLayer(inFeatures, outFeatures int, nonLinear bool, rng *rand.Rand) *Layer {
	return nn.NewLayer(inFeatures, outFeatures, nonLinear, rng)
}

// NewMLP creates a network with layer widths sizes, e.g. []int{2, 4, 4, 1}.
func NewMLP(sizes []int, rng *rand.Rand) *MLP {
	return nn.NewMLP(sizes, rng)
}

// NewRand returns a seeded random source for reproducible initialization.
func NewRand(seed int64) *rand.Rand {
	return nn.NewRand(seed)
}

// Inputs wraps raw features as leaf values.
func Inputs(xs []float64) []*autodiff.Value {
	return nn.Inputs(xs)
}

// MSELoss computes the mean squared error between predictions and targets.
func MSELoss(predictions []*autodiff.Value, targets []float64) *autodiff.Value {
	return nn.MSELoss(predictions, targets)
}

// SaveMLP writes the model to a SafeTensors file with extra metadata.
func SaveMLP(path string, m *MLP, extra map[string]string) error {
	return nn.SaveMLP(path, m, extra)
}

// LoadMLP reads a model written by SaveMLP and returns it with the file metadata.
func LoadMLP(path string) (*MLP, map[string]string, error) {
	return nn.LoadMLP(path)
}
