// Copyright 2026 RIME ML Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the flat tensor carrier the RIME kernels exchange
// with a host tensor runtime.
//
// # Overview
//
// A RawTensor is a dense, row-major host array tagged with a Shape and a
// DataType. The host runtime owns shape inference, device placement, and
// allocation policy; this package only carries typed flat memory into and
// out of kernels.
//
// # Precision pairing
//
// Kernels are parameterized by a real float precision FT and a complex
// output precision CT. Exactly two pairings are supported:
//
//	float32 -> complex64
//	float64 -> complex128
//
// ComplexFor maps a float DataType to its paired complex DataType and
// reports ErrTypePairing for anything else; the check runs before any
// computation starts.
package tensor
