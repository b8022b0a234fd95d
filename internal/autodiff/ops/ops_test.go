package ops_test

import (
	"math"
	"testing"

	"github.com/born-ml/minigrad/internal/autodiff/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOperations_ForwardBackward checks each primitive against its closed-form derivative.
func TestOperations_ForwardBackward(t *testing.T) {
	tests := []struct {
		name      string
		op        ops.Operation
		label     string
		forward   float64
		outGrad   float64
		wantGrads []float64
	}{
		{"add", ops.NewAddOp(3, -1), "+", 2, 0.5, []float64{0.5, 0.5}},
		{"mul", ops.NewMulOp(3, -2), "*", -6, 2, []float64{-4, 6}},
		{"pow square", ops.NewPowOp(3, 2), "**2", 9, 1, []float64{6}},
		{"pow reciprocal", ops.NewPowOp(2, -1), "**-1", 0.5, 1, []float64{-0.25}},
		{"pow fractional", ops.NewPowOp(4, 0.5), "**0.5", 2, 2, []float64{0.5}},
		{"relu positive", ops.NewReLUOp(1.5), "relu", 1.5, 3, []float64{3}},
		{"relu negative", ops.NewReLUOp(-1.5), "relu", 0, 3, []float64{0}},
		{"relu zero", ops.NewReLUOp(0), "relu", 0, 3, []float64{0}},
		{"tanh zero", ops.NewTanhOp(0), "tanh", 0, 1, []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.label, tt.op.Name())
			assert.InDelta(t, tt.forward, tt.op.Forward(), 1e-12)

			grads := tt.op.Backward(tt.outGrad)
			require.Len(t, grads, len(tt.wantGrads))
			for i, want := range tt.wantGrads {
				assert.InDelta(t, want, grads[i], 1e-12, "input %d", i)
			}
		})
	}
}

// TestTanhOp_Derivative tests d(tanh)/dx = 1 - tanh²(x).
func TestTanhOp_Derivative(t *testing.T) {
	for _, x := range []float64{-3, -0.5, 0.25, 2} {
		op := ops.NewTanhOp(x)
		assert.Equal(t, math.Tanh(x), op.Forward())
		assert.Equal(t, 1-math.Tanh(x)*math.Tanh(x), op.Backward(1)[0])
	}
}

// TestPowOp_DomainFollowsFloatSemantics tests that invalid domains produce NaN/Inf instead of panicking.
func TestPowOp_DomainFollowsFloatSemantics(t *testing.T) {
	assert.True(t, math.IsInf(ops.NewPowOp(0, -1).Forward(), 1))
	assert.True(t, math.IsNaN(ops.NewPowOp(-8, 1.0/3).Forward()))
	assert.Equal(t, 0.5, ops.NewPowOp(4, 0.5).Exponent())
}
