package nn

import (
	"math/rand"

	"github.com/born-ml/minigrad/internal/autodiff"
)

// Weight initialization range. Weights are drawn from U(-initBound, initBound).
const initBound = 1.0

// Uniform returns n leaves drawn from U(-bound, bound) using rng.
//
// rng is explicit so that tests and training runs are reproducible from a seed.
func Uniform(n int, bound float64, rng *rand.Rand) []*autodiff.Value {
	values := make([]*autodiff.Value, n)
	for i := range values {
		values[i] = autodiff.New((rng.Float64()*2.0 - 1.0) * bound)
	}
	return values
}

// NewRand returns a generator seeded with seed.
func NewRand(seed int64) *rand.Rand {
	//nolint:gosec // G404: weight init, not crypto.
	return rand.New(rand.NewSource(seed))
}
