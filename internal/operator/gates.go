package operator

import (
	"fmt"
	"math"

	"github.com/spinor-ml/spinor/internal/qmath"
	"github.com/spinor-ml/spinor/internal/queuing"
	"github.com/spinor-ml/spinor/internal/wires"
)

func mat2(a, b, c, d complex128) *qmath.Matrix {
	m := qmath.NewMatrix(2)
	m.Set(0, 0, a)
	m.Set(0, 1, b)
	m.Set(1, 0, c)
	m.Set(1, 1, d)
	return m
}

// involutoryPow implements Pow for self-inverse gates: even integer powers
// reduce to nothing, odd ones to a single copy.
func involutoryPow(op Operator, z float64) ([]Operator, error) {
	if math.Abs(z-math.Round(z)) > 1e-9 {
		return nil, fmt.Errorf("%w: %s raised to non-integer power %v", ErrPowUndefined, op.Name(), z)
	}
	if int(math.Round(z))%2 == 0 {
		return []Operator{}, nil
	}
	return []Operator{op.Copy()}, nil
}

// observablesEqual compares two operators by name, wires and parameters.
func observablesEqual(a, b Operator) bool {
	if a.Name() != b.Name() || !a.Wires().Equal(b.Wires()) {
		return false
	}
	ad, bd := a.Data(), b.Data()
	if len(ad) != len(bd) {
		return false
	}
	for i := range ad {
		if math.Abs(ad[i]-bd[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func undefinedErr(sentinel error, name string) error {
	return fmt.Errorf("%w: operator %s", sentinel, name)
}

// PauliX is the bit-flip gate σ_x. It is both an Operation and an
// Observable.
type PauliX struct{ gateCore }

// NewPauliX creates a PauliX on the given wire and records it on the
// active queuing context.
func NewPauliX(wire string) *PauliX {
	op := &PauliX{newGateCore("PauliX", wires.New(wire))}
	queueSelf(op)
	return op
}

func (p *PauliX) IsHermitian() bool  { return true }
func (p *PauliX) HasMatrix() bool    { return true }
func (p *PauliX) Basis() string      { return "X" }
func (p *PauliX) GradMethod() string { return "" }

func (p *PauliX) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	return expandIfNeeded(mat2(0, 1, 1, 0), p.wires, wireOrder)
}

func (p *PauliX) Eigvals() ([]complex128, error) {
	return []complex128{1, -1}, nil
}

func (p *PauliX) DiagonalizingGates() ([]Operator, error) {
	return []Operator{NewHadamard(p.wires[0])}, nil
}

func (p *PauliX) Decomposition() ([]Operator, error) {
	return nil, undefinedErr(ErrDecompositionUndefined, p.Name())
}

func (p *PauliX) Generator() (Operator, error) {
	return nil, undefinedErr(ErrGeneratorUndefined, p.Name())
}

func (p *PauliX) ParameterFrequencies() ([][]float64, error) {
	return parameterFrequenciesFromGenerator(p)
}

func (p *PauliX) Adjoint() (Operator, error)        { return p.Copy(), nil }
func (p *PauliX) Pow(z float64) ([]Operator, error) { return involutoryPow(p, z) }
func (p *PauliX) Copy() Operator                    { return &PauliX{p.clone()} }
func (p *PauliX) Compare(other Operator) bool       { return observablesEqual(p, other) }
func (p *PauliX) Inv() Operation                    { p.inverse = !p.inverse; return p }
func (p *PauliX) Queue(ctx *queuing.Context)        { ctx.Append(p) }

// PauliY is the gate σ_y. It is both an Operation and an Observable.
type PauliY struct{ gateCore }

// NewPauliY creates a PauliY on the given wire and records it on the
// active queuing context.
func NewPauliY(wire string) *PauliY {
	op := &PauliY{newGateCore("PauliY", wires.New(wire))}
	queueSelf(op)
	return op
}

func (p *PauliY) IsHermitian() bool  { return true }
func (p *PauliY) HasMatrix() bool    { return true }
func (p *PauliY) Basis() string      { return "Y" }
func (p *PauliY) GradMethod() string { return "" }

func (p *PauliY) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	return expandIfNeeded(mat2(0, -1i, 1i, 0), p.wires, wireOrder)
}

func (p *PauliY) Eigvals() ([]complex128, error) {
	return []complex128{1, -1}, nil
}

func (p *PauliY) DiagonalizingGates() ([]Operator, error) {
	w := p.wires[0]
	return []Operator{NewPauliZ(w), NewPhaseShift(math.Pi/2, w), NewHadamard(w)}, nil
}

func (p *PauliY) Decomposition() ([]Operator, error) {
	return nil, undefinedErr(ErrDecompositionUndefined, p.Name())
}

func (p *PauliY) Generator() (Operator, error) {
	return nil, undefinedErr(ErrGeneratorUndefined, p.Name())
}

func (p *PauliY) ParameterFrequencies() ([][]float64, error) {
	return parameterFrequenciesFromGenerator(p)
}

func (p *PauliY) Adjoint() (Operator, error)        { return p.Copy(), nil }
func (p *PauliY) Pow(z float64) ([]Operator, error) { return involutoryPow(p, z) }
func (p *PauliY) Copy() Operator                    { return &PauliY{p.clone()} }
func (p *PauliY) Compare(other Operator) bool       { return observablesEqual(p, other) }
func (p *PauliY) Inv() Operation                    { p.inverse = !p.inverse; return p }
func (p *PauliY) Queue(ctx *queuing.Context)        { ctx.Append(p) }

// PauliZ is the phase-flip gate σ_z. It is both an Operation and an
// Observable.
type PauliZ struct{ gateCore }

// NewPauliZ creates a PauliZ on the given wire and records it on the
// active queuing context.
func NewPauliZ(wire string) *PauliZ {
	op := &PauliZ{newGateCore("PauliZ", wires.New(wire))}
	queueSelf(op)
	return op
}

func (p *PauliZ) IsHermitian() bool  { return true }
func (p *PauliZ) HasMatrix() bool    { return true }
func (p *PauliZ) Basis() string      { return "Z" }
func (p *PauliZ) GradMethod() string { return "" }

func (p *PauliZ) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	return expandIfNeeded(mat2(1, 0, 0, -1), p.wires, wireOrder)
}

func (p *PauliZ) Eigvals() ([]complex128, error) {
	return []complex128{1, -1}, nil
}

func (p *PauliZ) DiagonalizingGates() ([]Operator, error) {
	return []Operator{}, nil
}

func (p *PauliZ) Decomposition() ([]Operator, error) {
	return nil, undefinedErr(ErrDecompositionUndefined, p.Name())
}

func (p *PauliZ) Generator() (Operator, error) {
	return nil, undefinedErr(ErrGeneratorUndefined, p.Name())
}

func (p *PauliZ) ParameterFrequencies() ([][]float64, error) {
	return parameterFrequenciesFromGenerator(p)
}

func (p *PauliZ) Adjoint() (Operator, error)        { return p.Copy(), nil }
func (p *PauliZ) Pow(z float64) ([]Operator, error) { return involutoryPow(p, z) }
func (p *PauliZ) Copy() Operator                    { return &PauliZ{p.clone()} }
func (p *PauliZ) Compare(other Operator) bool       { return observablesEqual(p, other) }
func (p *PauliZ) Inv() Operation                    { p.inverse = !p.inverse; return p }
func (p *PauliZ) Queue(ctx *queuing.Context)        { ctx.Append(p) }

// Hadamard is the basis-change gate H. It is both an Operation and an
// Observable.
type Hadamard struct{ gateCore }

// NewHadamard creates a Hadamard on the given wire and records it on the
// active queuing context.
func NewHadamard(wire string) *Hadamard {
	op := &Hadamard{newGateCore("Hadamard", wires.New(wire))}
	queueSelf(op)
	return op
}

func (h *Hadamard) IsHermitian() bool  { return true }
func (h *Hadamard) HasMatrix() bool    { return true }
func (h *Hadamard) Basis() string      { return "" }
func (h *Hadamard) GradMethod() string { return "" }

func (h *Hadamard) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	s := complex(1/math.Sqrt2, 0)
	return expandIfNeeded(mat2(s, s, s, -s), h.wires, wireOrder)
}

func (h *Hadamard) Eigvals() ([]complex128, error) {
	return []complex128{1, -1}, nil
}

func (h *Hadamard) DiagonalizingGates() ([]Operator, error) {
	return []Operator{NewRY(-math.Pi/4, h.wires[0])}, nil
}

func (h *Hadamard) Decomposition() ([]Operator, error) {
	return nil, undefinedErr(ErrDecompositionUndefined, h.Name())
}

func (h *Hadamard) Generator() (Operator, error) {
	return nil, undefinedErr(ErrGeneratorUndefined, h.Name())
}

func (h *Hadamard) ParameterFrequencies() ([][]float64, error) {
	return parameterFrequenciesFromGenerator(h)
}

func (h *Hadamard) Adjoint() (Operator, error)        { return h.Copy(), nil }
func (h *Hadamard) Pow(z float64) ([]Operator, error) { return involutoryPow(h, z) }
func (h *Hadamard) Copy() Operator                    { return &Hadamard{h.clone()} }
func (h *Hadamard) Compare(other Operator) bool       { return observablesEqual(h, other) }
func (h *Hadamard) Inv() Operation                    { h.inverse = !h.inverse; return h }
func (h *Hadamard) Queue(ctx *queuing.Context)        { ctx.Append(h) }
