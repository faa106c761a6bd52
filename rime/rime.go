// Copyright 2026 RIME ML Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package rime

import (
	"github.com/rime-ml/rime/internal/parallel"
	"github.com/rime-ml/rime/internal/rime"
	"github.com/rime-ml/rime/internal/tensor"
)

// Physical and layout constants.
const (
	// SpeedOfLight is the speed of light in a vacuum, in metres per second.
	SpeedOfLight = rime.SpeedOfLight

	// EBeamNPol is the number of polarization products the E-beam kernel
	// handles.
	EBeamNPol = rime.EBeamNPol
)

// Operator names, as declared toward the host runtime.
const (
	OpPhase = rime.OpPhase
	OpBSqrt = rime.OpBSqrt
	OpEBeam = rime.OpEBeam
)

// Errors.
var (
	ErrDimensionMismatch = rime.ErrDimensionMismatch
	ErrUnknownOp         = rime.ErrUnknownOp
	ErrBadInputCount     = rime.ErrBadInputCount
)

// DimensionError reports an input array whose length disagrees with the
// declared extents.
type DimensionError = rime.DimensionError

// Config controls how kernels fan work out over goroutines.
type Config = parallel.Config

// DefaultConfig returns a Config sized to the host CPU.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// PhaseDims fixes the extents of one phase-kernel invocation.
type PhaseDims = rime.PhaseDims

// BSqrtDims fixes the extents of one brightness-square-root invocation.
type BSqrtDims = rime.BSqrtDims

// ConstData describes the dimensional extents of one E-beam invocation.
type ConstData = rime.ConstData

// NewConstData builds a ConstData, enforcing npolchan == nchan·EBeamNPol and
// the remaining dimensional invariants.
func NewConstData(nsrc, ntime, na, nchan, npolchan, beamLW, beamMH, beamNUD int) (ConstData, error) {
	return rime.NewConstData(nsrc, ntime, na, nchan, npolchan, beamLW, beamMH, beamNUD)
}

// Phase computes the RIME phase term for every (source, time, antenna,
// channel) tuple. See the internal kernel for the full contract.
func Phase[FT tensor.Float, CT tensor.Complex](lm, uvw, frequency []FT, dims PhaseDims, cfg Config) ([]CT, error) {
	return rime.Phase[FT, CT](lm, uvw, frequency, dims, cfg)
}

// BSqrt computes the square root of the brightness matrix for every
// (source, time, channel) tuple.
func BSqrt[FT tensor.Float, CT tensor.Complex](stokes, alpha, frequency []FT, refFreq FT, dims BSqrtDims, cfg Config) ([]CT, error) {
	return rime.BSqrt[FT, CT](stokes, alpha, frequency, refFreq, dims, cfg)
}

// EBeam interpolates the per-antenna primary beam response for every
// (source, time, antenna, channel) tuple.
func EBeam[FT tensor.Float, CT tensor.Complex](
	lm, pointErrors, antennaScaling, parallacticAngle []FT,
	beamExtents, beamFreqMap []FT, eBeam []CT,
	frequency []FT, cd ConstData, cfg Config,
) ([]CT, error) {
	return rime.EBeam(lm, pointErrors, antennaScaling, parallacticAngle,
		beamExtents, beamFreqMap, eBeam, frequency, cd, cfg)
}

// OpHandler executes one kernel over RawTensor inputs.
type OpHandler = rime.OpHandler

// Context provides execution context for kernel handlers.
type Context = rime.Context

// NewContext returns a Context with default parallel configuration.
func NewContext() *Context {
	return rime.NewContext()
}

// Registry maps operator names to kernel handlers.
type Registry = rime.Registry

// NewRegistry creates a registry with all RIME operators bound.
func NewRegistry() *Registry {
	return rime.NewRegistry()
}
