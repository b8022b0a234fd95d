package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// ReadSafeTensors reads a SafeTensors file written by WriteSafeTensors.
//
// Returns the tensors and the string metadata (including the checksum entry).
func ReadSafeTensors(path string) (map[string]*Tensor, map[string]string, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ReadStateDict(file)
}

// ReadStateDict decodes a SafeTensors document from r.
//
// The header is validated before any tensor is decoded. When the metadata
// carries a checksum, the data section must match it.
func ReadStateDict(r io.Reader) (map[string]*Tensor, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	tensors, metadata, err := parseHeader(headerBytes)
	if err != nil {
		return nil, nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tensor data: %w", err)
	}

	if err := ValidateTensorOffsets(tensors, int64(len(data))); err != nil {
		return nil, nil, err
	}
	if sum, ok := metadata[ChecksumKey]; ok {
		if err := ValidateChecksum(data, sum); err != nil {
			return nil, nil, err
		}
	}

	state := make(map[string]*Tensor, len(tensors))
	for name, meta := range tensors {
		state[name] = decodeTensor(meta, data)
	}
	return state, metadata, nil
}

// parseHeader splits the JSON header into tensor entries and metadata.
func parseHeader(headerBytes []byte) (map[string]TensorMeta, map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	metadata := make(map[string]string)
	tensors := make(map[string]TensorMeta, len(raw))
	for name, entry := range raw {
		if name == MetadataKey {
			if err := json.Unmarshal(entry, &metadata); err != nil {
				return nil, nil, fmt.Errorf("%w: metadata: %w", ErrInvalidHeader, err)
			}
			continue
		}

		if err := ValidateTensorName(name); err != nil {
			return nil, nil, err
		}

		var meta TensorMeta
		if err := json.Unmarshal(entry, &meta); err != nil {
			return nil, nil, fmt.Errorf("%w: tensor %q: %w", ErrInvalidHeader, name, err)
		}
		if meta.DType != DTypeF64 {
			return nil, nil, fmt.Errorf("%w: tensor %q has dtype %q", ErrUnsupportedDType, name, meta.DType)
		}
		tensors[name] = meta
	}

	return tensors, metadata, nil
}

// decodeTensor copies one tensor out of the data section.
func decodeTensor(meta TensorMeta, data []byte) *Tensor {
	shape := make([]int, len(meta.Shape))
	for i, d := range meta.Shape {
		shape[i] = int(d)
	}

	begin, end := meta.DataOffsets[0], meta.DataOffsets[1]
	values := make([]float64, (end-begin)/float64Size)
	for i := range values {
		bits := binary.LittleEndian.Uint64(data[begin+int64(i*float64Size):])
		values[i] = math.Float64frombits(bits)
	}

	return &Tensor{Shape: shape, Data: values}
}
