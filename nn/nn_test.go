// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/nn"
	"github.com/born-ml/minigrad/optim"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	rng := nn.NewRand(1)

	tests := []struct {
		name   string
		module nn.Module
		params int
	}{
		{"Neuron", nn.NewNeuron(3, true, rng), 4},
		{"Layer", nn.NewLayer(3, 2, true, rng), 8},
		{"MLP", nn.NewMLP([]int{3, 2, 1}, rng), 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.module.Parameters(), tt.params)

			for _, p := range tt.module.Parameters() {
				p.SetGrad(1)
			}
			tt.module.ZeroGrad()
			for _, p := range tt.module.Parameters() {
				assert.Equal(t, 0.0, p.Grad())
			}
		})
	}
}

// TestPublicTrainingLoop runs a few optimizer steps through the public API only.
func TestPublicTrainingLoop(t *testing.T) {
	model := nn.NewMLP([]int{2, 4, 1}, nn.NewRand(3))
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
	x, y := []float64{0.5, -0.5}, []float64{0.25}

	loss := func() float64 { return nn.MSELoss(model.Forward(nn.Inputs(x)), y).Data() }
	initial := loss()

	for range 20 {
		l := nn.MSELoss(model.Forward(nn.Inputs(x)), y)
		opt.ZeroGrad()
		l.Backward()
		optim.ClipGradNorm(model.Parameters(), 1)
		opt.Step()
	}

	require.Less(t, loss(), initial)
}
