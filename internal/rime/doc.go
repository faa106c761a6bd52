// Package rime implements terms of the Radio Interferometer Measurement
// Equation as stateless, data-parallel numeric kernels.
//
// Each kernel is a pure transform from flat input arrays to one output
// array: the phase kernel computes the per-(source, time, antenna, channel)
// complex fringe term, the B-sqrt kernel the square root of the brightness
// matrix under a spectral power law, and the E-beam kernel the interpolated
// per-antenna primary beam response. Kernels hold no cross-call state and may
// run concurrently over disjoint output regions.
//
// Kernels come in two forms: typed generic functions parameterized over a
// float precision FT and its paired complex precision CT, and RawTensor
// handlers bound by name in a Registry for dispatch by a host runtime.
package rime
