package serialization

// Format constants.
const (
	DTypeF64    = "F64"          // The only dtype written and accepted
	MetadataKey = "__metadata__" // Header entry holding string metadata
	ChecksumKey = "sha256"       // Metadata entry holding the data digest
	float64Size = 8
)

// Validation limits for resource protection.
const (
	MaxHeaderSize    = 16 * 1024 * 1024 // 16MB - maximum JSON header size
	MaxTensorNameLen = 1024             // Maximum tensor name length
)

// Tensor is a named block of float64 parameters with a row-major shape.
type Tensor struct {
	Shape []int
	Data  []float64
}

// NumElements returns the product of the shape dimensions.
func (t *Tensor) NumElements() int {
	n := 1
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// TensorMeta describes one tensor in the SafeTensors header.
type TensorMeta struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}
