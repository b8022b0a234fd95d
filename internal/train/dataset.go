package train

import "github.com/born-ml/minigrad/internal/config"

// Sample is one input/target pair.
type Sample = config.Sample

// XOR returns the four-point toy dataset: the target is 1 exactly when the first input is 0.
func XOR() []Sample {
	return []Sample{
		{Input: []float64{0, 1}, Target: []float64{1}},
		{Input: []float64{1, 1}, Target: []float64{0}},
		{Input: []float64{0, 0}, Target: []float64{1}},
		{Input: []float64{1, 0}, Target: []float64{0}},
	}
}
