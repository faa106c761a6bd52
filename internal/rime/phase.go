package rime

import (
	"math"

	"github.com/rime-ml/rime/internal/parallel"
	"github.com/rime-ml/rime/internal/tensor"
)

// SpeedOfLight is the speed of light in a vacuum, in metres per second.
const SpeedOfLight = 2.99792458e8

// PhaseDims fixes the extents of one phase-kernel invocation.
type PhaseDims struct {
	NSrc  int // Number of sources
	NTime int // Number of time samples
	NA    int // Number of antennas
	NChan int // Number of frequency channels
}

func (d PhaseDims) validate() error {
	for _, c := range []struct {
		name string
		n    int
	}{{"nsrc", d.NSrc}, {"ntime", d.NTime}, {"na", d.NA}, {"nchan", d.NChan}} {
		if c.n < 0 {
			return &DimensionError{Op: "phase", Arg: c.name, Want: 0, Got: c.n}
		}
	}
	return nil
}

// OutputShape returns the shape of the complex phase output. Shape is a pure
// function of the declared extents, never of input values.
func (d PhaseDims) OutputShape() tensor.Shape {
	return tensor.Shape{d.NSrc, d.NTime, d.NA, d.NChan}
}

// Phase computes the RIME phase term
//
//	exp(-2πi (u·l + v·m + w·n) f / c),  n = sqrt(1 - l² - m²) - 1
//
// for every (source, time, antenna, channel) tuple.
//
// lm is [nsrc, 2] direction cosines, uvw is [ntime, na, 3] baseline
// coordinates in metres, frequency is [nchan] in Hz; all three are flat
// row-major slices. The output is flat row-major [nsrc, ntime, na, nchan].
//
// Directions with l²+m² > 1 (below the horizon) are not rejected; n follows
// IEEE semantics and NaN propagates into the affected outputs.
func Phase[FT tensor.Float, CT tensor.Complex](lm, uvw, frequency []FT, dims PhaseDims, cfg parallel.Config) ([]CT, error) {
	if err := dims.validate(); err != nil {
		return nil, err
	}
	if len(lm) != 2*dims.NSrc {
		return nil, &DimensionError{Op: "phase", Arg: "lm", Want: 2 * dims.NSrc, Got: len(lm)}
	}
	if len(uvw) != 3*dims.NTime*dims.NA {
		return nil, &DimensionError{Op: "phase", Arg: "uvw", Want: 3 * dims.NTime * dims.NA, Got: len(uvw)}
	}
	if len(frequency) != dims.NChan {
		return nil, &DimensionError{Op: "phase", Arg: "frequency", Want: dims.NChan, Got: len(frequency)}
	}

	nbl := dims.NTime * dims.NA
	nchan := dims.NChan
	out := make([]CT, dims.NSrc*nbl*nchan)

	// All intermediates are held at FT precision, so float32 inputs yield the
	// same rounding a native single-precision pipeline would.
	parallel.ForEach2(dims.NSrc, nbl, func(s, b int) {
		l := lm[2*s]
		m := lm[2*s+1]
		n := sqrtF(1-l*l-m*m) - 1

		u := uvw[3*b]
		v := uvw[3*b+1]
		w := uvw[3*b+2]

		// Phase angle per unit frequency; only the frequency factor varies
		// along the channel axis.
		p := FT(-2*math.Pi/SpeedOfLight) * (u*l + v*m + w*n)

		base := (s*nbl + b) * nchan
		for c := 0; c < nchan; c++ {
			sin, cos := sincosF(p * frequency[c])
			out[base+c] = complexF[FT, CT](cos, sin)
		}
	}, cfg)

	return out, nil
}
