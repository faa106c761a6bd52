package tensor

import "testing"

func TestNewRawZeroed(t *testing.T) {
	r, err := NewRaw(Shape{2, 3}, Float64)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	if r.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", r.NumElements())
	}
	if r.ByteSize() != 48 {
		t.Errorf("ByteSize() = %d, want 48", r.ByteSize())
	}
	for i, v := range r.AsFloat64() {
		if v != 0 {
			t.Errorf("element %d = %v, want 0", i, v)
		}
	}
}

func TestNewRawRejectsInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, -1}, Float32); err == nil {
		t.Error("NewRaw with negative dimension succeeded, want error")
	}
}

func TestZeroSizedTensor(t *testing.T) {
	r, err := NewRaw(Shape{0, 3}, Float32)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	if r.NumElements() != 0 {
		t.Errorf("NumElements() = %d, want 0", r.NumElements())
	}
	if got := r.AsFloat32(); len(got) != 0 {
		t.Errorf("AsFloat32() has %d elements, want 0", len(got))
	}

	fs, err := FromSlice([]complex128{}, Shape{0, 2, 2})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if got := fs.AsComplex128(); len(got) != 0 {
		t.Errorf("AsComplex128() has %d elements, want 0", len(got))
	}
}

func TestFromSlice(t *testing.T) {
	data := []complex64{1 + 2i, 3 - 4i, 5i, 7}
	r, err := FromSlice(data, Shape{2, 2})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	if r.DType() != Complex64 {
		t.Errorf("DType() = %s, want complex64", r.DType())
	}
	got := r.AsComplex64()
	for i := range data {
		if got[i] != data[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], data[i])
		}
	}

	// The tensor owns a copy.
	data[0] = 99
	if got[0] == 99 {
		t.Error("FromSlice shares memory with the source slice")
	}
}

func TestFromSliceLengthMismatch(t *testing.T) {
	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2}); err == nil {
		t.Error("FromSlice with short data succeeded, want error")
	}
}

func TestTypedViewPanicsOnWrongDType(t *testing.T) {
	r, err := NewRaw(Shape{4}, Float32)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("AsComplex128 on float32 tensor did not panic")
		}
	}()
	r.AsComplex128()
}

func TestClone(t *testing.T) {
	r, err := FromSlice([]float64{1, 2, 3, 4}, Shape{4})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	c := r.Clone()
	c.AsFloat64()[0] = 42
	if r.AsFloat64()[0] != 1 {
		t.Error("Clone shares memory with original")
	}
	if !c.Shape().Equal(r.Shape()) || c.DType() != r.DType() {
		t.Error("Clone changed shape or dtype")
	}
}
