package tensor

import (
	"errors"
	"testing"
)

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		want  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Complex64, 8},
		{Complex128, 16},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.want {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.want)
		}
	}
}

func TestComplexFor(t *testing.T) {
	ct, err := ComplexFor(Float32)
	if err != nil || ct != Complex64 {
		t.Errorf("ComplexFor(Float32) = %v, %v; want Complex64, nil", ct, err)
	}

	ct, err = ComplexFor(Float64)
	if err != nil || ct != Complex128 {
		t.Errorf("ComplexFor(Float64) = %v, %v; want Complex128, nil", ct, err)
	}
}

func TestComplexForRejectsNonFloat(t *testing.T) {
	for _, dt := range []DataType{Complex64, Complex128} {
		if _, err := ComplexFor(dt); !errors.Is(err, ErrTypePairing) {
			t.Errorf("ComplexFor(%s) error = %v, want ErrTypePairing", dt, err)
		}
	}
}

func TestIsFloat(t *testing.T) {
	if !Float32.IsFloat() || !Float64.IsFloat() {
		t.Error("float dtypes not reported as float")
	}
	if Complex64.IsFloat() || Complex128.IsFloat() {
		t.Error("complex dtypes reported as float")
	}
}
