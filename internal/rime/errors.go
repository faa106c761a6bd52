package rime

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrUnknownOp         = errors.New("unknown operator")
	ErrBadInputCount     = errors.New("wrong number of inputs")
)

// DimensionError reports an input array whose length disagrees with the
// declared extents. Kernels reject these before any computation; output is
// never truncated or padded.
type DimensionError struct {
	Op   string // Kernel name (e.g., "phase")
	Arg  string // Offending input (e.g., "uvw")
	Want int    // Expected length or value
	Got  int    // Actual length or value
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s: expected %d, got %d", e.Op, e.Arg, e.Want, e.Got)
}

// Unwrap makes DimensionError match ErrDimensionMismatch via errors.Is.
func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}
