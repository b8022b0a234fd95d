package nn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/minigrad/internal/serialization"
)

// ErrStateDict is returned when a state dictionary does not fit a module.
var ErrStateDict = errors.New("state dict mismatch")

// StateDict returns the layer's parameters as a [out, in] weight matrix and
// an [out] bias vector. Values are copied.
func (l *Layer) StateDict() map[string]*serialization.Tensor {
	weight := make([]float64, 0, l.outFeatures*l.inFeatures)
	bias := make([]float64, 0, l.outFeatures)
	for _, n := range l.neurons {
		for _, w := range n.weights {
			weight = append(weight, w.Data())
		}
		bias = append(bias, n.bias.Data())
	}

	return map[string]*serialization.Tensor{
		"weight": {Shape: []int{l.outFeatures, l.inFeatures}, Data: weight},
		"bias":   {Shape: []int{l.outFeatures}, Data: bias},
	}
}

// LoadStateDict copies values from stateDict into the layer's parameters.
//
// Gradients are left untouched. Nothing is written unless both tensors fit.
func (l *Layer) LoadStateDict(stateDict map[string]*serialization.Tensor) error {
	weight, err := lookup(stateDict, "weight", l.outFeatures, l.inFeatures)
	if err != nil {
		return err
	}
	bias, err := lookup(stateDict, "bias", l.outFeatures)
	if err != nil {
		return err
	}

	for i, n := range l.neurons {
		for j, w := range n.weights {
			w.SetData(weight.Data[i*l.inFeatures+j])
		}
		n.bias.SetData(bias.Data[i])
	}
	return nil
}

// StateDict returns every layer's tensors prefixed with "layers.{i}.".
func (m *MLP) StateDict() map[string]*serialization.Tensor {
	stateDict := make(map[string]*serialization.Tensor, 2*len(m.layers))
	for i, l := range m.layers {
		for name, t := range l.StateDict() {
			stateDict[layerPrefix(i)+name] = t
		}
	}
	return stateDict
}

// LoadStateDict loads parameters from a state dictionary produced by StateDict.
//
// Keys that belong to no layer are rejected.
func (m *MLP) LoadStateDict(stateDict map[string]*serialization.Tensor) error {
	perLayer := make([]map[string]*serialization.Tensor, len(m.layers))
	for i := range perLayer {
		perLayer[i] = make(map[string]*serialization.Tensor, 2)
	}

	for key, t := range stateDict {
		matched := false
		for i := range m.layers {
			if name, ok := strings.CutPrefix(key, layerPrefix(i)); ok {
				perLayer[i][name] = t
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf("%w: unexpected key %q", ErrStateDict, key)
		}
	}

	for i, l := range m.layers {
		if err := l.LoadStateDict(perLayer[i]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

func layerPrefix(i int) string {
	return fmt.Sprintf("layers.%d.", i)
}

// lookup fetches name from stateDict and checks its shape.
func lookup(stateDict map[string]*serialization.Tensor, name string, shape ...int) (*serialization.Tensor, error) {
	t, ok := stateDict[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrStateDict, name)
	}
	if !equalShape(t.Shape, shape) || len(t.Data) != t.NumElements() {
		return nil, fmt.Errorf("%w: %s shape mismatch: expected %v, got %v (%d values)",
			ErrStateDict, name, shape, t.Shape, len(t.Data))
	}
	return t, nil
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
