package rime

import (
	"math"
	"math/cmplx"

	"github.com/rime-ml/rime/internal/tensor"
)

// Scalar math parameterized over the kernel precision FT. Each helper rounds
// its result to FT, so a float32 instantiation carries every intermediate at
// float32 precision; the float64 instantiation is plain float64 math.

func sqrtF[FT tensor.Float](x FT) FT {
	return FT(math.Sqrt(float64(x)))
}

func sincosF[FT tensor.Float](x FT) (sin, cos FT) {
	s, c := math.Sincos(float64(x))
	return FT(s), FT(c)
}

func powF[FT tensor.Float](x, y FT) FT {
	return FT(math.Pow(float64(x), float64(y)))
}

func clampF[FT tensor.Float](x, lo, hi FT) FT {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// csqrtF is the principal complex square root at CT precision.
func csqrtF[CT tensor.Complex](z CT) CT {
	switch v := any(z).(type) {
	case complex64:
		return any(complex64(cmplx.Sqrt(complex128(v)))).(CT)
	case complex128:
		return any(cmplx.Sqrt(v)).(CT)
	default:
		panic("unsupported complex type")
	}
}

// complexF builds a CT from FT components. The paired conversions are exact.
func complexF[FT tensor.Float, CT tensor.Complex](re, im FT) CT {
	return makeComplex[CT](float64(re), float64(im))
}

// partsF splits a CT into FT components. Exact for the paired precisions.
func partsF[FT tensor.Float, CT tensor.Complex](z CT) (re, im FT) {
	c := toComplex128(z)
	return FT(real(c)), FT(imag(c))
}

// makeComplex builds a CT value from float64 components, rounding to CT's
// component precision.
func makeComplex[CT tensor.Complex](re, im float64) CT {
	var z CT
	switch p := any(&z).(type) {
	case *complex64:
		*p = complex(float32(re), float32(im))
	case *complex128:
		*p = complex(re, im)
	default:
		panic("unsupported complex type")
	}
	return z
}

func toComplex128[CT tensor.Complex](z CT) complex128 {
	switch v := any(z).(type) {
	case complex64:
		return complex128(v)
	case complex128:
		return v
	default:
		panic("unsupported complex type")
	}
}
