package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// ValidateTensorName rejects names that are empty, oversized, reserved or
// contain control characters.
func ValidateTensorName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidTensorName)
	case len(name) > MaxTensorNameLen:
		return fmt.Errorf("%w: length %d > max %d", ErrInvalidTensorName, len(name), MaxTensorNameLen)
	case name == MetadataKey:
		return fmt.Errorf("%w: %q is reserved", ErrInvalidTensorName, name)
	case strings.ContainsAny(name, "\x00\n\r"):
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidTensorName, name)
	}
	return nil
}

// ValidateTensorOffsets checks that every tensor lies inside the data section,
// matches its shape, and does not overlap another tensor.
func ValidateTensorOffsets(tensors map[string]TensorMeta, dataSize int64) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return tensors[names[i]].DataOffsets[0] < tensors[names[j]].DataOffsets[0]
	})

	for i, name := range names {
		meta := tensors[name]
		begin, end := meta.DataOffsets[0], meta.DataOffsets[1]

		if begin < 0 || end < begin {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  name,
				Details: fmt.Sprintf("offsets [%d, %d)", begin, end),
			}
		}
		if end > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  name,
				Details: fmt.Sprintf("end %d > data_size %d", end, dataSize),
			}
		}

		elements := int64(1)
		for _, d := range meta.Shape {
			if d < 0 {
				return &ValidationError{Type: "invalid_shape", Tensor: name, Details: fmt.Sprintf("shape %v", meta.Shape)}
			}
			elements *= d
		}
		if elements*float64Size != end-begin {
			return &ValidationError{
				Type:    "size_mismatch",
				Tensor:  name,
				Details: fmt.Sprintf("shape %v needs %d bytes, got %d", meta.Shape, elements*float64Size, end-begin),
			}
		}

		if i < len(names)-1 {
			next := tensors[names[i+1]]
			if end > next.DataOffsets[0] {
				return &ValidationError{
					Type:    "offset_overlap",
					Tensor:  name,
					Tensor2: names[i+1],
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						begin, end, next.DataOffsets[0], next.DataOffsets[1]),
				}
			}
		}
	}

	return nil
}
