// Copyright 2026 RIME ML Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/rime-ml/rime/internal/tensor"
)

// Type aliases for the public API.

// Float is a constraint for the real-valued precisions the kernels accept.
type Float = tensor.Float

// Complex is a constraint for the complex precisions the kernels emit.
type Complex = tensor.Complex

// Element is a constraint for any type a RawTensor can hold.
type Element = tensor.Element

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32    DataType = tensor.Float32
	Float64    DataType = tensor.Float64
	Complex64  DataType = tensor.Complex64
	Complex128 DataType = tensor.Complex128
)

// Shape represents the dimensions of a tensor.
// Example: Shape{20, 14, 64} represents a 3D tensor with extents 20×14×64.
type Shape = tensor.Shape

// RawTensor is the flat, dtype-tagged array kernels consume and produce.
type RawTensor = tensor.RawTensor

// ErrTypePairing reports a float/complex precision pairing the kernels do
// not support.
var ErrTypePairing = tensor.ErrTypePairing

// NewRaw creates a zeroed RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromSlice creates a RawTensor backed by a copy of the given slice.
//
// Example:
//
//	lm, err := tensor.FromSlice([]float64{0.1, -0.2}, tensor.Shape{1, 2})
func FromSlice[T Element](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// ComplexFor returns the complex data type paired with the given float data
// type, or ErrTypePairing.
func ComplexFor(ft DataType) (DataType, error) {
	return tensor.ComplexFor(ft)
}
