package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
)

// Writer writes state dictionaries in SafeTensors format.
type Writer struct {
	w      io.Writer
	closer io.Closer
	closed bool
}

// NewWriter wraps w. Close is a no-op for writers created this way.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// NewFileWriter creates path and returns a Writer that owns the file.
func NewFileWriter(path string) (*Writer, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &Writer{w: file, closer: file}, nil
}

// WriteSafeTensors writes state to a new file at path.
func WriteSafeTensors(path string, state map[string]*Tensor, metadata map[string]string) error {
	writer, err := NewFileWriter(path)
	if err != nil {
		return err
	}

	if err := writer.WriteStateDict(state, metadata); err != nil {
		_ = writer.Close() // Best effort close
		return err
	}
	return writer.Close()
}

// WriteStateDict writes a complete SafeTensors document.
//
// Tensors are written in alphabetical order by name. metadata may be nil; the
// data checksum is always added under ChecksumKey.
func (w *Writer) WriteStateDict(state map[string]*Tensor, metadata map[string]string) error {
	if w.closed {
		return ErrWriterClosed
	}

	names := make([]string, 0, len(state))
	for name, t := range state {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		if t.NumElements() != len(t.Data) {
			return fmt.Errorf("%w: %q has shape %v but %d values", ErrShapeMismatch, name, t.Shape, len(t.Data))
		}
		names = append(names, name)
	}
	sort.Strings(names)

	data, header := encodeTensors(names, state)

	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	meta[ChecksumKey] = ComputeChecksum(data)
	header[MetadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	if err := binary.Write(w.w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}

	return nil
}

// Close closes the underlying file, if the writer owns one.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// encodeTensors lays out tensor data back to back and builds the header entries.
func encodeTensors(names []string, state map[string]*Tensor) ([]byte, map[string]any) {
	header := make(map[string]any, len(names)+1)

	var size int
	for _, name := range names {
		size += len(state[name].Data) * float64Size
	}
	data := make([]byte, size)

	var offset int64
	for _, name := range names {
		t := state[name]
		shape := make([]int64, len(t.Shape))
		for i, d := range t.Shape {
			shape[i] = int64(d)
		}

		end := offset + int64(len(t.Data)*float64Size)
		header[name] = TensorMeta{
			DType:       DTypeF64,
			Shape:       shape,
			DataOffsets: [2]int64{offset, end},
		}

		for i, x := range t.Data {
			binary.LittleEndian.PutUint64(data[offset+int64(i*float64Size):], math.Float64bits(x))
		}
		offset = end
	}

	return data, header
}
