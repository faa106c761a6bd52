// Package tensor provides the flat tensor carrier consumed by the RIME kernels.
package tensor

import (
	"errors"
	"fmt"
)

// ErrTypePairing reports a float/complex precision pairing that the kernels
// do not support.
var ErrTypePairing = errors.New("unsupported float/complex type pairing")

// Float is a constraint for the real-valued precisions the kernels accept.
type Float interface {
	~float32 | ~float64
}

// Complex is a constraint for the complex precisions the kernels emit.
// Each Float precision pairs with exactly one Complex precision; see ComplexFor.
type Complex interface {
	~complex64 | ~complex128
}

// Element is a constraint for any type a RawTensor can hold.
type Element interface {
	Float | Complex
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Complex64
	Complex128
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a real floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// ComplexFor returns the complex data type whose components have the same
// precision as the given float data type. float32 pairs with complex64 and
// float64 with complex128; any other pairing is a configuration error and is
// rejected before computation starts.
func ComplexFor(ft DataType) (DataType, error) {
	switch ft {
	case Float32:
		return Complex64, nil
	case Float64:
		return Complex128, nil
	default:
		return 0, fmt.Errorf("%w: no complex type pairs with %s", ErrTypePairing, ft)
	}
}

// inferDataType infers DataType from a generic element type.
func inferDataType[T Element](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	default:
		panic("unsupported type")
	}
}
