package nn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/minigrad/internal/serialization"
)

// Metadata keys written by SaveMLP.
const (
	MetaModelType = "model_type"
	MetaSizes     = "sizes"
)

// SaveMLP writes the model parameters and architecture to a SafeTensors file.
//
// extra is merged into the file metadata; the architecture keys take precedence.
func SaveMLP(path string, m *MLP, extra map[string]string) error {
	metadata := make(map[string]string, len(extra)+2)
	for k, v := range extra {
		metadata[k] = v
	}
	metadata[MetaModelType] = "MLP"
	metadata[MetaSizes] = formatSizes(m.sizes)

	if err := serialization.WriteSafeTensors(path, m.StateDict(), metadata); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// LoadMLP rebuilds a model saved with SaveMLP.
//
// Returns the model and the file metadata.
func LoadMLP(path string) (*MLP, map[string]string, error) {
	stateDict, metadata, err := serialization.ReadSafeTensors(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}

	if metadata[MetaModelType] != "MLP" {
		return nil, nil, fmt.Errorf("%w: model_type %q", ErrStateDict, metadata[MetaModelType])
	}
	sizes, err := parseSizes(metadata[MetaSizes])
	if err != nil {
		return nil, nil, err
	}

	// Initial values are overwritten by the load below.
	m := NewMLP(sizes, NewRand(0))
	if err := m.LoadStateDict(stateDict); err != nil {
		return nil, nil, err
	}
	return m, metadata, nil
}

func formatSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

func parseSizes(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: sizes %q", ErrStateDict, s)
	}
	sizes := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: sizes %q", ErrStateDict, s)
		}
		sizes[i] = n
	}
	return sizes, nil
}
