package optim

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"gonum.org/v1/gonum/floats"
)

// GradNorm returns the global L2 norm of the parameter gradients.
func GradNorm(params []*autodiff.Value) float64 {
	return floats.Norm(grads(params), 2)
}

// ClipGradNorm rescales gradients so their global L2 norm is at most maxNorm.
//
// Returns the norm before clipping. A non-positive maxNorm only measures.
func ClipGradNorm(params []*autodiff.Value, maxNorm float64) float64 {
	g := grads(params)
	norm := floats.Norm(g, 2)
	if maxNorm <= 0 || norm <= maxNorm {
		return norm
	}

	floats.Scale(maxNorm/norm, g)
	for i, p := range params {
		p.SetGrad(g[i])
	}
	return norm
}

func grads(params []*autodiff.Value) []float64 {
	g := make([]float64, len(params))
	for i, p := range params {
		g[i] = p.Grad()
	}
	return g
}
