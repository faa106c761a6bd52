package rime

import (
	"fmt"

	"github.com/rime-ml/rime/internal/parallel"
	"github.com/rime-ml/rime/internal/tensor"
)

// BSqrtDims fixes the extents of one brightness-square-root invocation.
type BSqrtDims struct {
	NSrc  int // Number of sources
	NTime int // Number of time samples
	NChan int // Number of frequency channels
}

func (d BSqrtDims) validate() error {
	for _, c := range []struct {
		name string
		n    int
	}{{"nsrc", d.NSrc}, {"ntime", d.NTime}, {"nchan", d.NChan}} {
		if c.n < 0 {
			return &DimensionError{Op: "bsqrt", Arg: c.name, Want: 0, Got: c.n}
		}
	}
	return nil
}

// OutputShape returns the shape of the B-sqrt output. The polarization axis
// is fastest-varying, giving npolchan = 4·nchan entries per (source, time).
func (d BSqrtDims) OutputShape() tensor.Shape {
	return tensor.Shape{d.NSrc, d.NTime, d.NChan, EBeamNPol}
}

// BSqrt computes the square root of the brightness matrix for every
// (source, time, channel) tuple.
//
// stokes is [nsrc, ntime, 4] holding (I, Q, U, V), alpha is [nsrc, ntime]
// spectral indices, frequency is [nchan] in Hz. Each Stokes vector is scaled
// by the power law (f / refFreq)^alpha, assembled into the brightness matrix
//
//	B = [[I+Q, U+iV], [U-iV, I-Q]]
//
// and the principal matrix square root of B is written out as four complex
// values (B00, B01, B10, B11), polarization fastest, matching the
// [nsrc, ntime, npolchan] layout with npolchan = 4·nchan.
func BSqrt[FT tensor.Float, CT tensor.Complex](stokes, alpha, frequency []FT, refFreq FT, dims BSqrtDims, cfg parallel.Config) ([]CT, error) {
	if err := dims.validate(); err != nil {
		return nil, err
	}
	if len(stokes) != 4*dims.NSrc*dims.NTime {
		return nil, &DimensionError{Op: "bsqrt", Arg: "stokes", Want: 4 * dims.NSrc * dims.NTime, Got: len(stokes)}
	}
	if len(alpha) != dims.NSrc*dims.NTime {
		return nil, &DimensionError{Op: "bsqrt", Arg: "alpha", Want: dims.NSrc * dims.NTime, Got: len(alpha)}
	}
	if len(frequency) != dims.NChan {
		return nil, &DimensionError{Op: "bsqrt", Arg: "frequency", Want: dims.NChan, Got: len(frequency)}
	}
	if !(refFreq > 0) {
		return nil, fmt.Errorf("bsqrt: reference frequency must be positive, got %v", refFreq)
	}

	nchan := dims.NChan
	out := make([]CT, dims.NSrc*dims.NTime*nchan*EBeamNPol)

	// Scaling runs at FT precision and the matrix algebra at CT precision, so
	// the single-precision instantiation never widens intermediates.
	parallel.ForEach2(dims.NSrc, dims.NTime, func(s, t int) {
		st := s*dims.NTime + t
		i := stokes[4*st]
		q := stokes[4*st+1]
		u := stokes[4*st+2]
		v := stokes[4*st+3]
		a := alpha[st]

		for c := 0; c < nchan; c++ {
			power := powF(frequency[c]/refFreq, a)

			b00 := complexF[FT, CT]((i+q)*power, 0)
			b01 := complexF[FT, CT](u*power, v*power)
			b10 := complexF[FT, CT](u*power, -v*power)
			b11 := complexF[FT, CT]((i-q)*power, 0)

			// Principal square root of a 2x2 matrix:
			// R = (B + sqrt(det B)·Id) / sqrt(tr B + 2 sqrt(det B)).
			sd := csqrtF(b00*b11 - b01*b10)
			tr := csqrtF(b00 + b11 + sd + sd)

			var r00, r01, r10, r11, zero CT
			if tr != zero {
				r00 = (b00 + sd) / tr
				r01 = b01 / tr
				r10 = b10 / tr
				r11 = (b11 + sd) / tr
			}

			base := (st*nchan + c) * EBeamNPol
			out[base] = r00
			out[base+1] = r01
			out[base+2] = r10
			out[base+3] = r11
		}
	}, cfg)

	return out, nil
}
