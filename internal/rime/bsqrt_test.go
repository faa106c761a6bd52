package rime

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rime-ml/rime/internal/parallel"
)

func TestBSqrtUnpolarizedIsScaledIdentity(t *testing.T) {
	// With Q=U=V=0 the brightness matrix is I·Id, whose square root is
	// sqrt(I·power)·Id.
	dims := BSqrtDims{NSrc: 1, NTime: 1, NChan: 1}
	stokes := []float64{4, 0, 0, 0}
	alpha := []float64{0}
	frequency := []float64{1.4e9}

	out, err := BSqrt[float64, complex128](stokes, alpha, frequency, 1.4e9, dims, seqConfig())
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.InDelta(t, 2.0, real(out[0]), 1e-12) // B00
	assert.InDelta(t, 0.0, real(out[1]), 1e-12) // B01
	assert.InDelta(t, 0.0, real(out[2]), 1e-12) // B10
	assert.InDelta(t, 2.0, real(out[3]), 1e-12) // B11
}

func TestBSqrtPowerLaw(t *testing.T) {
	// alpha=1 and f = 2·refFreq doubles the brightness, so the square root
	// scales by sqrt(2).
	dims := BSqrtDims{NSrc: 1, NTime: 1, NChan: 1}

	out, err := BSqrt[float64, complex128](
		[]float64{1, 0, 0, 0}, []float64{1}, []float64{2e9}, 1e9, dims, seqConfig())
	require.NoError(t, err)

	assert.InDelta(t, math.Sqrt2, real(out[0]), 1e-12)
	assert.InDelta(t, math.Sqrt2, real(out[3]), 1e-12)
}

func TestBSqrtSquaresToBrightness(t *testing.T) {
	// For physical Stokes vectors (I >= |(Q,U,V)|) the output squares back
	// to the brightness matrix.
	rng := rand.New(rand.NewSource(49))
	dims := BSqrtDims{NSrc: 5, NTime: 3, NChan: 4}

	stokes := make([]float64, 4*dims.NSrc*dims.NTime)
	alpha := make([]float64, dims.NSrc*dims.NTime)
	for st := range alpha {
		stokes[4*st] = 2 + rng.Float64() // I
		stokes[4*st+1] = rng.Float64() - 0.5
		stokes[4*st+2] = rng.Float64() - 0.5
		stokes[4*st+3] = rng.Float64() - 0.5
		alpha[st] = rng.Float64() - 0.5
	}
	frequency := channelFreqs(dims.NChan)
	refFreq := 1.4e9

	out, err := BSqrt[float64, complex128](stokes, alpha, frequency, refFreq, dims, seqConfig())
	require.NoError(t, err)

	for st := range alpha {
		i, q := stokes[4*st], stokes[4*st+1]
		u, v := stokes[4*st+2], stokes[4*st+3]
		for c := 0; c < dims.NChan; c++ {
			power := math.Pow(frequency[c]/refFreq, alpha[st])
			b00 := complex((i+q)*power, 0)
			b01 := complex(u*power, v*power)
			b10 := complex(u*power, -v*power)
			b11 := complex((i-q)*power, 0)

			base := (st*dims.NChan + c) * EBeamNPol
			r00, r01 := out[base], out[base+1]
			r10, r11 := out[base+2], out[base+3]

			assertComplexDelta(t, b00, r00*r00+r01*r10, 1e-10)
			assertComplexDelta(t, b01, r00*r01+r01*r11, 1e-10)
			assertComplexDelta(t, b10, r10*r00+r11*r10, 1e-10)
			assertComplexDelta(t, b11, r10*r01+r11*r11, 1e-10)
		}
	}
}

func assertComplexDelta(t *testing.T, want, got complex128, tol float64) {
	t.Helper()
	assert.InDelta(t, real(want), real(got), tol)
	assert.InDelta(t, imag(want), imag(got), tol)
}

func TestBSqrtFloat32(t *testing.T) {
	// The single-precision instantiation computes in single precision; this
	// unpolarized case is exact there.
	dims := BSqrtDims{NSrc: 1, NTime: 1, NChan: 1}

	out, err := BSqrt[float32, complex64](
		[]float32{4, 0, 0, 0}, []float32{0}, []float32{1.4e9}, 1.4e9, dims, seqConfig())
	require.NoError(t, err)

	require.Equal(t, complex64(2), out[0])
	require.Equal(t, complex64(0), out[1])
	require.Equal(t, complex64(0), out[2])
	require.Equal(t, complex64(2), out[3])
}

func TestBSqrtZeroBrightness(t *testing.T) {
	// An all-zero Stokes vector yields a zero matrix, not NaN.
	dims := BSqrtDims{NSrc: 1, NTime: 1, NChan: 1}

	out, err := BSqrt[float64, complex128](
		[]float64{0, 0, 0, 0}, []float64{0}, []float64{1e9}, 1e9, dims, seqConfig())
	require.NoError(t, err)

	for i, z := range out {
		require.Equal(t, complex(0, 0), z, "element %d", i)
	}
}

func TestBSqrtOutputShape(t *testing.T) {
	dims := BSqrtDims{NSrc: 20, NTime: 29, NChan: 16}
	require.Equal(t, []int{20, 29, 16, 4}, []int(dims.OutputShape()))
}

func TestBSqrtValidation(t *testing.T) {
	dims := BSqrtDims{NSrc: 2, NTime: 2, NChan: 2}
	stokes := make([]float64, 16)
	alpha := make([]float64, 4)
	frequency := make([]float64, 2)

	_, err := BSqrt[float64, complex128](stokes[:15], alpha, frequency, 1e9, dims, seqConfig())
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = BSqrt[float64, complex128](stokes, alpha[:3], frequency, 1e9, dims, seqConfig())
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = BSqrt[float64, complex128](stokes, alpha, frequency[:1], 1e9, dims, seqConfig())
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = BSqrt[float64, complex128](stokes, alpha, frequency, 0, dims, seqConfig())
	require.Error(t, err)
}

func TestBSqrtParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(50))
	dims := BSqrtDims{NSrc: 8, NTime: 4, NChan: 16}

	stokes := make([]float64, 4*dims.NSrc*dims.NTime)
	alpha := make([]float64, dims.NSrc*dims.NTime)
	for st := range alpha {
		stokes[4*st] = 1 + rng.Float64()
		alpha[st] = rng.Float64()
	}
	frequency := channelFreqs(dims.NChan)

	seq, err := BSqrt[float64, complex128](stokes, alpha, frequency, 1.4e9, dims, seqConfig())
	require.NoError(t, err)

	par, err := BSqrt[float64, complex128](stokes, alpha, frequency, 1.4e9, dims,
		parallel.Config{Enabled: true, NumWorkers: 8, MinChunkSize: 1})
	require.NoError(t, err)
	require.Equal(t, seq, par)
}
