package nn

import "github.com/born-ml/minigrad/internal/autodiff"

// MSELoss computes Mean Squared Error loss.
//
// Loss = Σ (targets[i] - predictions[i])² / n
//
// The loss is an ordinary graph node, so calling Backward on it reaches every
// parameter that contributed to predictions. Predictions and targets are paired
// up to the shorter length.
func MSELoss(predictions []*autodiff.Value, targets []float64) *autodiff.Value {
	n := min(len(predictions), len(targets))
	if n == 0 {
		return autodiff.New(0)
	}

	terms := make([]*autodiff.Value, n)
	for i := range n {
		terms[i] = predictions[i].RSub(targets[i]).Pow(2)
	}
	return autodiff.Sum(terms...).DivScalar(float64(n))
}
