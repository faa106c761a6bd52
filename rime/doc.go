// Copyright 2026 RIME ML Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package rime exposes the Radio Interferometer Measurement Equation kernels.
//
// # Overview
//
// Three stateless, data-parallel kernels are provided:
//
//   - Phase: the per-(source, time, antenna, channel) complex fringe term
//     exp(-2πi (u·l + v·m + w·n) f / c).
//   - BSqrt: the square root of the per-source brightness matrix under a
//     spectral power law.
//   - EBeam: the per-antenna primary beam response, interpolated from a
//     beam cube at pointing-corrected source positions.
//
// Each kernel exists as a typed generic function and as a named operator in
// a Registry, which dispatches RawTensor inputs to the float32/complex64 or
// float64/complex128 instantiation based on input dtype.
//
// # Basic usage
//
//	ctx := rime.NewContext()
//	reg := rime.NewRegistry()
//	outs, err := reg.Execute(ctx, rime.OpPhase, []*tensor.RawTensor{lm, uvw, frequency})
//
// Or, fully typed:
//
//	dims := rime.PhaseDims{NSrc: 20, NTime: 29, NA: 14, NChan: 64}
//	phase, err := rime.Phase[float64, complex128](lm, uvw, frequency, dims, rime.DefaultConfig())
package rime
