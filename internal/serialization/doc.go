// Package serialization saves and loads model parameters in SafeTensors format.
//
// Layout:
//
//	[8 bytes: header size (uint64 LE)]
//	[header size bytes: JSON header]
//	[tensor data: little-endian float64, tensors in name order]
//
// The JSON header maps each tensor name to its dtype ("F64"), shape and
// [begin, end) byte offsets inside the data section. The optional
// "__metadata__" entry carries string metadata; the writer always adds a
// "sha256" entry with the hex digest of the data section, and the reader
// verifies it when present.
//
// Example usage:
//
//	state := map[string]*serialization.Tensor{
//	    "layers.0.weight": {Shape: []int{4, 2}, Data: w},
//	}
//	if err := serialization.WriteSafeTensors("model.safetensors", state, nil); err != nil {
//	    return err
//	}
//
//	state, metadata, err := serialization.ReadSafeTensors("model.safetensors")
package serialization
