package rime

import (
	"fmt"

	"github.com/rime-ml/rime/internal/parallel"
	"github.com/rime-ml/rime/internal/tensor"
)

// Operator names, as declared toward the host runtime.
const (
	OpPhase = "RimePhase"
	OpBSqrt = "RimeBSqrt"
	OpEBeam = "RimeEBeam"
)

// OpHandler executes one kernel over RawTensor inputs and returns its
// output tensors.
type OpHandler func(ctx *Context, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error)

// Context provides execution context for kernel handlers.
type Context struct {
	Parallel parallel.Config
}

// NewContext returns a Context with default parallel configuration.
func NewContext() *Context {
	return &Context{Parallel: parallel.DefaultConfig()}
}

// Registry maps operator names to handler functions. Handlers inspect the
// float precision FT of their inputs, derive the paired complex precision CT,
// and dispatch to the matching kernel instantiation; an unpairable input
// dtype is rejected before any computation.
type Registry struct {
	handlers map[string]OpHandler
}

// NewRegistry creates a registry with all RIME operators bound.
func NewRegistry() *Registry {
	r := &Registry{
		handlers: make(map[string]OpHandler),
	}

	r.Register(OpPhase, phaseHandler)
	r.Register(OpBSqrt, bsqrtHandler)
	r.Register(OpEBeam, ebeamHandler)

	return r
}

// Register adds a custom operator handler.
func (r *Registry) Register(name string, handler OpHandler) {
	r.handlers[name] = handler
}

// Get returns the handler for an operator name.
func (r *Registry) Get(name string) (OpHandler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Execute runs an operator with the given inputs.
func (r *Registry) Execute(ctx *Context, name string, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOp, name)
	}
	return handler(ctx, inputs)
}

// SupportedOps returns a list of all bound operator names.
func (r *Registry) SupportedOps() []string {
	ops := make([]string, 0, len(r.handlers))
	for op := range r.handlers {
		ops = append(ops, op)
	}
	return ops
}

// floatType validates that every input shares one real float dtype and that
// the dtype pairs with a complex output type.
func floatType(op string, inputs []*tensor.RawTensor) (tensor.DataType, error) {
	ft := inputs[0].DType()
	if _, err := tensor.ComplexFor(ft); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	for i, in := range inputs {
		if in.DType() != ft {
			return 0, fmt.Errorf("%s: input %d has dtype %s, want %s", op, i, in.DType(), ft)
		}
	}
	return ft, nil
}

func wantRank(op, arg string, t *tensor.RawTensor, rank int) error {
	if len(t.Shape()) != rank {
		return &DimensionError{Op: op, Arg: arg + " rank", Want: rank, Got: len(t.Shape())}
	}
	return nil
}

// wantShape validates a tensor's full per-axis shape against the extents
// derived from the dimension-defining inputs. A flattened length check is not
// enough: permuted axes can share an element count.
func wantShape(op, arg string, t *tensor.RawTensor, want tensor.Shape) error {
	if !t.Shape().Equal(want) {
		return fmt.Errorf("%s: %s: %w: shape %v, want %v", op, arg, ErrDimensionMismatch, t.Shape(), want)
	}
	return nil
}

// phaseHandler dispatches the phase kernel: inputs (lm, uvw, frequency),
// output (complex_phase).
func phaseHandler(ctx *Context, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 3 {
		return nil, fmt.Errorf("%s: %w: expected 3, got %d", OpPhase, ErrBadInputCount, len(inputs))
	}
	lm, uvw, frequency := inputs[0], inputs[1], inputs[2]

	ft, err := floatType(OpPhase, inputs)
	if err != nil {
		return nil, err
	}
	if err := wantRank("phase", "lm", lm, 2); err != nil {
		return nil, err
	}
	if err := wantRank("phase", "uvw", uvw, 3); err != nil {
		return nil, err
	}
	if err := wantRank("phase", "frequency", frequency, 1); err != nil {
		return nil, err
	}

	if lm.Shape()[1] != 2 {
		return nil, &DimensionError{Op: "phase", Arg: "lm axis 1", Want: 2, Got: lm.Shape()[1]}
	}
	if uvw.Shape()[2] != 3 {
		return nil, &DimensionError{Op: "phase", Arg: "uvw axis 2", Want: 3, Got: uvw.Shape()[2]}
	}

	dims := PhaseDims{
		NSrc:  lm.Shape()[0],
		NTime: uvw.Shape()[0],
		NA:    uvw.Shape()[1],
		NChan: frequency.Shape()[0],
	}

	if ft == tensor.Float32 {
		return phaseTyped[float32, complex64](ctx, lm.AsFloat32(), uvw.AsFloat32(), frequency.AsFloat32(), dims)
	}
	return phaseTyped[float64, complex128](ctx, lm.AsFloat64(), uvw.AsFloat64(), frequency.AsFloat64(), dims)
}

func phaseTyped[FT tensor.Float, CT tensor.Complex](ctx *Context, lm, uvw, frequency []FT, dims PhaseDims) ([]*tensor.RawTensor, error) {
	out, err := Phase[FT, CT](lm, uvw, frequency, dims, ctx.Parallel)
	if err != nil {
		return nil, err
	}
	raw, err := tensor.FromSlice(out, dims.OutputShape())
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{raw}, nil
}

// bsqrtHandler dispatches the brightness-square-root kernel: inputs
// (stokes, alpha, frequency, ref_freq), output (b_sqrt).
func bsqrtHandler(ctx *Context, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 4 {
		return nil, fmt.Errorf("%s: %w: expected 4, got %d", OpBSqrt, ErrBadInputCount, len(inputs))
	}
	stokes, alpha, frequency, refFreq := inputs[0], inputs[1], inputs[2], inputs[3]

	ft, err := floatType(OpBSqrt, inputs)
	if err != nil {
		return nil, err
	}
	if err := wantRank("bsqrt", "stokes", stokes, 3); err != nil {
		return nil, err
	}
	if err := wantRank("bsqrt", "alpha", alpha, 2); err != nil {
		return nil, err
	}
	if err := wantRank("bsqrt", "frequency", frequency, 1); err != nil {
		return nil, err
	}
	if refFreq.NumElements() != 1 {
		return nil, &DimensionError{Op: "bsqrt", Arg: "ref_freq", Want: 1, Got: refFreq.NumElements()}
	}

	if stokes.Shape()[2] != 4 {
		return nil, &DimensionError{Op: "bsqrt", Arg: "stokes axis 2", Want: 4, Got: stokes.Shape()[2]}
	}

	dims := BSqrtDims{
		NSrc:  stokes.Shape()[0],
		NTime: stokes.Shape()[1],
		NChan: frequency.Shape()[0],
	}

	if err := wantShape("bsqrt", "alpha", alpha, tensor.Shape{dims.NSrc, dims.NTime}); err != nil {
		return nil, err
	}

	if ft == tensor.Float32 {
		return bsqrtTyped[float32, complex64](ctx, stokes.AsFloat32(), alpha.AsFloat32(),
			frequency.AsFloat32(), refFreq.AsFloat32()[0], dims)
	}
	return bsqrtTyped[float64, complex128](ctx, stokes.AsFloat64(), alpha.AsFloat64(),
		frequency.AsFloat64(), refFreq.AsFloat64()[0], dims)
}

func bsqrtTyped[FT tensor.Float, CT tensor.Complex](ctx *Context, stokes, alpha, frequency []FT, refFreq FT, dims BSqrtDims) ([]*tensor.RawTensor, error) {
	out, err := BSqrt[FT, CT](stokes, alpha, frequency, refFreq, dims, ctx.Parallel)
	if err != nil {
		return nil, err
	}
	raw, err := tensor.FromSlice(out, dims.OutputShape())
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{raw}, nil
}

// ebeamHandler dispatches the E-beam kernel: inputs (lm, frequency,
// point_errors, antenna_scaling, parallactic_angle, beam_extents,
// beam_freq_map, e_beam), output (e_jones). ConstData is rebuilt from the
// declared tensor shapes on every call.
func ebeamHandler(ctx *Context, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 8 {
		return nil, fmt.Errorf("%s: %w: expected 8, got %d", OpEBeam, ErrBadInputCount, len(inputs))
	}
	lm, frequency := inputs[0], inputs[1]
	pointErrors, antennaScaling, parallacticAngle := inputs[2], inputs[3], inputs[4]
	beamExtents, beamFreqMap, eBeam := inputs[5], inputs[6], inputs[7]

	ft, err := floatType(OpEBeam, inputs[:7])
	if err != nil {
		return nil, err
	}
	ct, err := tensor.ComplexFor(ft)
	if err != nil {
		return nil, err
	}
	if eBeam.DType() != ct {
		return nil, fmt.Errorf("%s: %w: e_beam dtype %s does not pair with %s",
			OpEBeam, tensor.ErrTypePairing, eBeam.DType(), ft)
	}
	for _, c := range []struct {
		arg  string
		t    *tensor.RawTensor
		rank int
	}{
		{"lm", lm, 2},
		{"frequency", frequency, 1},
		{"point_errors", pointErrors, 4},
		{"antenna_scaling", antennaScaling, 3},
		{"parallactic_angle", parallacticAngle, 2},
		{"beam_extents", beamExtents, 1},
		{"beam_freq_map", beamFreqMap, 1},
		{"e_beam", eBeam, 4},
	} {
		if err := wantRank("ebeam", c.arg, c.t, c.rank); err != nil {
			return nil, err
		}
	}

	if eBeam.Shape()[3] != EBeamNPol {
		return nil, &DimensionError{Op: "ebeam", Arg: "e_beam pol axis", Want: EBeamNPol, Got: eBeam.Shape()[3]}
	}

	nchan := frequency.Shape()[0]
	cd, err := NewConstData(
		lm.Shape()[0],
		parallacticAngle.Shape()[0],
		parallacticAngle.Shape()[1],
		nchan,
		nchan*EBeamNPol,
		eBeam.Shape()[0],
		eBeam.Shape()[1],
		eBeam.Shape()[2],
	)
	if err != nil {
		return nil, err
	}

	for _, c := range []struct {
		arg  string
		t    *tensor.RawTensor
		want tensor.Shape
	}{
		{"lm", lm, tensor.Shape{cd.NSrc, 2}},
		{"point_errors", pointErrors, tensor.Shape{cd.NTime, cd.NA, cd.NChan, 2}},
		{"antenna_scaling", antennaScaling, tensor.Shape{cd.NA, cd.NChan, 2}},
		{"beam_extents", beamExtents, tensor.Shape{6}},
		{"beam_freq_map", beamFreqMap, tensor.Shape{cd.BeamNUD}},
	} {
		if err := wantShape("ebeam", c.arg, c.t, c.want); err != nil {
			return nil, err
		}
	}

	if ft == tensor.Float32 {
		return ebeamTyped[float32, complex64](ctx,
			lm.AsFloat32(), pointErrors.AsFloat32(), antennaScaling.AsFloat32(),
			parallacticAngle.AsFloat32(), beamExtents.AsFloat32(), beamFreqMap.AsFloat32(),
			eBeam.AsComplex64(), frequency.AsFloat32(), cd)
	}
	return ebeamTyped[float64, complex128](ctx,
		lm.AsFloat64(), pointErrors.AsFloat64(), antennaScaling.AsFloat64(),
		parallacticAngle.AsFloat64(), beamExtents.AsFloat64(), beamFreqMap.AsFloat64(),
		eBeam.AsComplex128(), frequency.AsFloat64(), cd)
}

func ebeamTyped[FT tensor.Float, CT tensor.Complex](ctx *Context,
	lm, pointErrors, antennaScaling, parallacticAngle, beamExtents, beamFreqMap []FT,
	eBeam []CT, frequency []FT, cd ConstData,
) ([]*tensor.RawTensor, error) {
	out, err := EBeam(lm, pointErrors, antennaScaling, parallacticAngle,
		beamExtents, beamFreqMap, eBeam, frequency, cd, ctx.Parallel)
	if err != nil {
		return nil, err
	}
	raw, err := tensor.FromSlice(out, cd.OutputShape())
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{raw}, nil
}
