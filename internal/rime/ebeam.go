package rime

import (
	"fmt"
	"sort"

	"github.com/rime-ml/rime/internal/parallel"
	"github.com/rime-ml/rime/internal/tensor"
)

// EBeamNPol is the number of polarization products handled by the E-beam
// kernel: the four interferometric correlations.
const EBeamNPol = 4

// ConstData describes the dimensional extents of one E-beam invocation:
// the problem sizes and the beam-cube grid resolution. It is built once per
// invocation from the host runtime's declared tensor shapes, is read-only
// for the kernel's lifetime, and owns no resources.
type ConstData struct {
	NSrc     int // Number of sources
	NTime    int // Number of time samples
	NA       int // Number of antennas
	NChan    int // Number of frequency channels
	NPolChan int // Combined channel x polarization entries; always NChan·EBeamNPol
	BeamLW   int // Beam grid width along l
	BeamMH   int // Beam grid height along m
	BeamNUD  int // Beam grid depth along frequency
}

// NewConstData builds a ConstData, enforcing the dimensional invariants:
// counts are non-negative, npolchan equals nchan·EBeamNPol, and every beam
// grid axis has at least one sample.
func NewConstData(nsrc, ntime, na, nchan, npolchan, beamLW, beamMH, beamNUD int) (ConstData, error) {
	for _, c := range []struct {
		name string
		n    int
	}{{"nsrc", nsrc}, {"ntime", ntime}, {"na", na}, {"nchan", nchan}} {
		if c.n < 0 {
			return ConstData{}, &DimensionError{Op: "ebeam", Arg: c.name, Want: 0, Got: c.n}
		}
	}
	if npolchan != nchan*EBeamNPol {
		return ConstData{}, &DimensionError{Op: "ebeam", Arg: "npolchan", Want: nchan * EBeamNPol, Got: npolchan}
	}
	for _, c := range []struct {
		name string
		n    int
	}{{"beam_lw", beamLW}, {"beam_mh", beamMH}, {"beam_nud", beamNUD}} {
		if c.n < 1 {
			return ConstData{}, &DimensionError{Op: "ebeam", Arg: c.name, Want: 1, Got: c.n}
		}
	}

	return ConstData{
		NSrc:     nsrc,
		NTime:    ntime,
		NA:       na,
		NChan:    nchan,
		NPolChan: npolchan,
		BeamLW:   beamLW,
		BeamMH:   beamMH,
		BeamNUD:  beamNUD,
	}, nil
}

// OutputShape returns the shape of the interpolated Jones output.
func (cd ConstData) OutputShape() tensor.Shape {
	return tensor.Shape{cd.NSrc, cd.NTime, cd.NA, cd.NChan, EBeamNPol}
}

// EBeam interpolates the per-antenna primary beam response for every
// (source, time, antenna, channel) tuple.
//
// Inputs, all flat row-major:
//
//	lm               [nsrc, 2]                     source direction cosines
//	pointErrors      [ntime, na, nchan, 2]         pointing errors in (l, m)
//	antennaScaling   [na, nchan, 2]                beam scaling in (l, m)
//	parallacticAngle [ntime, na]                   radians
//	beamExtents      [6]                           lLow, mLow, fLow, lHigh, mHigh, fHigh
//	beamFreqMap      [beam_nud]                    grid frequencies, ascending
//	eBeam            [beam_lw, beam_mh, beam_nud, 4] beam cube samples
//
// The source direction is rotated by the parallactic angle, offset by the
// pointing error, scaled per antenna, clamped into the extent box, and
// mapped to fractional grid coordinates. The channel frequency is bisected
// into beamFreqMap, and the cube is interpolated bilinearly in (l, m) at the
// two bracketing frequency planes, blended linearly in frequency, per
// polarization on real and imaginary parts independently.
//
// The output is flat row-major [nsrc, ntime, na, nchan, 4].
func EBeam[FT tensor.Float, CT tensor.Complex](
	lm, pointErrors, antennaScaling, parallacticAngle []FT,
	beamExtents, beamFreqMap []FT, eBeam []CT,
	frequency []FT, cd ConstData, cfg parallel.Config,
) ([]CT, error) {
	for _, c := range []struct {
		arg  string
		want int
		got  int
	}{
		{"lm", 2 * cd.NSrc, len(lm)},
		{"point_errors", cd.NTime * cd.NA * cd.NChan * 2, len(pointErrors)},
		{"antenna_scaling", cd.NA * cd.NChan * 2, len(antennaScaling)},
		{"parallactic_angle", cd.NTime * cd.NA, len(parallacticAngle)},
		{"beam_extents", 6, len(beamExtents)},
		{"beam_freq_map", cd.BeamNUD, len(beamFreqMap)},
		{"e_beam", cd.BeamLW * cd.BeamMH * cd.BeamNUD * EBeamNPol, len(eBeam)},
		{"frequency", cd.NChan, len(frequency)},
	} {
		if c.got != c.want {
			return nil, &DimensionError{Op: "ebeam", Arg: c.arg, Want: c.want, Got: c.got}
		}
	}

	lLow, mLow := beamExtents[0], beamExtents[1]
	lHigh, mHigh := beamExtents[3], beamExtents[4]
	if lHigh <= lLow || mHigh <= mLow {
		return nil, fmt.Errorf("ebeam: beam_extents not increasing: l [%v, %v], m [%v, %v]",
			lLow, lHigh, mLow, mHigh)
	}
	lScale := FT(cd.BeamLW-1) / (lHigh - lLow)
	mScale := FT(cd.BeamMH-1) / (mHigh - mLow)

	// Frequency grid position per channel is the same for every (src, time,
	// antenna); precompute the bracketing plane and blend weight.
	gchan := make([]freqGridPos[FT], cd.NChan)
	for c := range gchan {
		gchan[c] = findFreqPos(beamFreqMap, frequency[c])
	}

	nchan := cd.NChan
	nsample := cd.NTime * cd.NA
	out := make([]CT, cd.NSrc*nsample*nchan*EBeamNPol)

	// Cube strides for [beam_lw, beam_mh, beam_nud, 4].
	dStride := EBeamNPol
	mStride := cd.BeamNUD * dStride
	lStride := cd.BeamMH * mStride

	// Interpolation arithmetic runs at FT precision throughout; the float32
	// instantiation rounds every intermediate to single precision.
	parallel.ForEach2(cd.NSrc, nsample, func(s, ta int) {
		l0 := lm[2*s]
		m0 := lm[2*s+1]

		sinPA, cosPA := sincosF(parallacticAngle[ta])
		lr := l0*cosPA - m0*sinPA
		mr := l0*sinPA + m0*cosPA

		a := ta % cd.NA

		for c := 0; c < nchan; c++ {
			// Pointing-corrected, antenna-scaled grid position.
			le := lr + pointErrors[(ta*nchan+c)*2]
			me := mr + pointErrors[(ta*nchan+c)*2+1]
			le *= antennaScaling[(a*nchan+c)*2]
			me *= antennaScaling[(a*nchan+c)*2+1]

			gl := clampF((le-lLow)*lScale, 0, FT(cd.BeamLW-1))
			gm := clampF((me-mLow)*mScale, 0, FT(cd.BeamMH-1))

			li := int(gl)
			mi := int(gm)
			lf := gl - FT(li)
			mf := gm - FT(mi)
			l1 := min(li+1, cd.BeamLW-1)
			m1 := min(mi+1, cd.BeamMH-1)

			fg := gchan[c]

			base := ((s*nsample+ta)*nchan + c) * EBeamNPol
			for p := 0; p < EBeamNPol; p++ {
				reLo, imLo := bilinearF(eBeam, li*lStride, l1*lStride, mi*mStride, m1*mStride,
					fg.low*dStride+p, lf, mf)
				reHi, imHi := bilinearF(eBeam, li*lStride, l1*lStride, mi*mStride, m1*mStride,
					fg.high*dStride+p, lf, mf)
				re := (1-fg.frac)*reLo + fg.frac*reHi
				im := (1-fg.frac)*imLo + fg.frac*imHi
				out[base+p] = complexF[FT, CT](re, im)
			}
		}
	}, cfg)

	return out, nil
}

// freqGridPos is a bracketing pair of beam frequency planes and the linear
// blend weight of the upper plane.
type freqGridPos[FT tensor.Float] struct {
	low, high int
	frac      FT
}

// findFreqPos bisects f into the ascending grid, clamping beyond its ends.
func findFreqPos[FT tensor.Float](grid []FT, f FT) freqGridPos[FT] {
	n := len(grid)
	i := sort.Search(n, func(k int) bool { return grid[k] >= f })
	switch {
	case i <= 0:
		return freqGridPos[FT]{low: 0, high: 0}
	case i >= n:
		return freqGridPos[FT]{low: n - 1, high: n - 1}
	}
	lo, hi := grid[i-1], grid[i]
	var frac FT
	if hi > lo {
		frac = (f - lo) / (hi - lo)
	}
	return freqGridPos[FT]{low: i - 1, high: i, frac: frac}
}

// bilinearF interpolates one cube plane at fractional (l, m) offsets for a
// fixed (frequency, polarization) offset, returning FT components.
func bilinearF[FT tensor.Float, CT tensor.Complex](cube []CT, l0, l1, m0, m1, off int, lf, mf FT) (re, im FT) {
	r00, i00 := partsF[FT](cube[l0+m0+off])
	r10, i10 := partsF[FT](cube[l1+m0+off])
	r01, i01 := partsF[FT](cube[l0+m1+off])
	r11, i11 := partsF[FT](cube[l1+m1+off])

	w00 := (1 - lf) * (1 - mf)
	w10 := lf * (1 - mf)
	w01 := (1 - lf) * mf
	w11 := lf * mf

	re = w00*r00 + w10*r10 + w01*r01 + w11*r11
	im = w00*i00 + w10*i10 + w01*i01 + w11*i11
	return re, im
}
