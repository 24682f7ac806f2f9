package operator

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/spinor-ml/spinor/internal/qmath"
	"github.com/spinor-ml/spinor/internal/queuing"
	"github.com/spinor-ml/spinor/internal/wires"
)

// rotationEigvals returns the spectrum exp(∓iθ/2) shared by the
// single-qubit rotations.
func rotationEigvals(theta float64) []complex128 {
	return []complex128{cmplx.Exp(complex(0, -theta/2)), cmplx.Exp(complex(0, theta/2))}
}

// angle returns the effective rotation angle: the stored parameter,
// negated when the gate is inverted. Negating the angle is the conjugate
// transpose for every parametric gate in this file.
func (g *gateCore) angle() float64 {
	if g.inverse {
		return -g.data[0]
	}
	return g.data[0]
}

// RX is the single-qubit X rotation exp(-iθX/2).
type RX struct{ gateCore }

// NewRX creates an RX with angle theta on the given wire and records it on
// the active queuing context.
func NewRX(theta float64, wire string) *RX {
	op := &RX{newGateCore("RX", wires.New(wire), theta)}
	queueSelf(op)
	return op
}

func (r *RX) IsHermitian() bool  { return false }
func (r *RX) HasMatrix() bool    { return true }
func (r *RX) Basis() string      { return "X" }
func (r *RX) GradMethod() string { return "A" }

func (r *RX) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	theta := r.angle()
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return expandIfNeeded(mat2(c, s, s, c), r.wires, wireOrder)
}

func (r *RX) Eigvals() ([]complex128, error) {
	return rotationEigvals(r.angle()), nil
}

func (r *RX) DiagonalizingGates() ([]Operator, error) {
	return nil, undefinedErr(ErrDiagonalizingGatesUndefined, r.Name())
}

func (r *RX) Decomposition() ([]Operator, error) {
	return nil, undefinedErr(ErrDecompositionUndefined, r.Name())
}

func (r *RX) Generator() (Operator, error) {
	return NewScaled(-0.5, NewPauliX(r.wires[0])), nil
}

func (r *RX) ParameterFrequencies() ([][]float64, error) {
	return parameterFrequenciesFromGenerator(r)
}

func (r *RX) Adjoint() (Operator, error) {
	return NewRX(-r.data[0], r.wires[0]), nil
}

func (r *RX) Pow(z float64) ([]Operator, error) {
	return []Operator{NewRX(z*r.data[0], r.wires[0])}, nil
}

func (r *RX) Copy() Operator             { return &RX{r.clone()} }
func (r *RX) Inv() Operation             { r.inverse = !r.inverse; return r }
func (r *RX) Queue(ctx *queuing.Context) { ctx.Append(r) }

// RY is the single-qubit Y rotation exp(-iθY/2).
type RY struct{ gateCore }

// NewRY creates an RY with angle theta on the given wire and records it on
// the active queuing context.
func NewRY(theta float64, wire string) *RY {
	op := &RY{newGateCore("RY", wires.New(wire), theta)}
	queueSelf(op)
	return op
}

func (r *RY) IsHermitian() bool  { return false }
func (r *RY) HasMatrix() bool    { return true }
func (r *RY) Basis() string      { return "Y" }
func (r *RY) GradMethod() string { return "A" }

func (r *RY) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	theta := r.angle()
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return expandIfNeeded(mat2(c, -s, s, c), r.wires, wireOrder)
}

func (r *RY) Eigvals() ([]complex128, error) {
	return rotationEigvals(r.angle()), nil
}

func (r *RY) DiagonalizingGates() ([]Operator, error) {
	return nil, undefinedErr(ErrDiagonalizingGatesUndefined, r.Name())
}

func (r *RY) Decomposition() ([]Operator, error) {
	return nil, undefinedErr(ErrDecompositionUndefined, r.Name())
}

func (r *RY) Generator() (Operator, error) {
	return NewScaled(-0.5, NewPauliY(r.wires[0])), nil
}

func (r *RY) ParameterFrequencies() ([][]float64, error) {
	return parameterFrequenciesFromGenerator(r)
}

func (r *RY) Adjoint() (Operator, error) {
	return NewRY(-r.data[0], r.wires[0]), nil
}

func (r *RY) Pow(z float64) ([]Operator, error) {
	return []Operator{NewRY(z*r.data[0], r.wires[0])}, nil
}

func (r *RY) Copy() Operator             { return &RY{r.clone()} }
func (r *RY) Inv() Operation             { r.inverse = !r.inverse; return r }
func (r *RY) Queue(ctx *queuing.Context) { ctx.Append(r) }

// RZ is the single-qubit Z rotation exp(-iθZ/2).
type RZ struct{ gateCore }

// NewRZ creates an RZ with angle theta on the given wire and records it on
// the active queuing context.
func NewRZ(theta float64, wire string) *RZ {
	op := &RZ{newGateCore("RZ", wires.New(wire), theta)}
	queueSelf(op)
	return op
}

func (r *RZ) IsHermitian() bool  { return false }
func (r *RZ) HasMatrix() bool    { return true }
func (r *RZ) Basis() string      { return "Z" }
func (r *RZ) GradMethod() string { return "A" }

func (r *RZ) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	theta := r.angle()
	m := mat2(cmplx.Exp(complex(0, -theta/2)), 0, 0, cmplx.Exp(complex(0, theta/2)))
	return expandIfNeeded(m, r.wires, wireOrder)
}

func (r *RZ) Eigvals() ([]complex128, error) {
	return rotationEigvals(r.angle()), nil
}

func (r *RZ) DiagonalizingGates() ([]Operator, error) {
	return []Operator{}, nil
}

func (r *RZ) Decomposition() ([]Operator, error) {
	return nil, undefinedErr(ErrDecompositionUndefined, r.Name())
}

func (r *RZ) Generator() (Operator, error) {
	return NewScaled(-0.5, NewPauliZ(r.wires[0])), nil
}

func (r *RZ) ParameterFrequencies() ([][]float64, error) {
	return parameterFrequenciesFromGenerator(r)
}

func (r *RZ) Adjoint() (Operator, error) {
	return NewRZ(-r.data[0], r.wires[0]), nil
}

func (r *RZ) Pow(z float64) ([]Operator, error) {
	return []Operator{NewRZ(z*r.data[0], r.wires[0])}, nil
}

func (r *RZ) Copy() Operator             { return &RZ{r.clone()} }
func (r *RZ) Inv() Operation             { r.inverse = !r.inverse; return r }
func (r *RZ) Queue(ctx *queuing.Context) { ctx.Append(r) }

// PhaseShift is the single-qubit phase gate diag(1, exp(iφ)).
type PhaseShift struct{ gateCore }

// NewPhaseShift creates a PhaseShift with angle phi on the given wire and
// records it on the active queuing context.
func NewPhaseShift(phi float64, wire string) *PhaseShift {
	op := &PhaseShift{newGateCore("PhaseShift", wires.New(wire), phi)}
	queueSelf(op)
	return op
}

func (p *PhaseShift) IsHermitian() bool  { return false }
func (p *PhaseShift) HasMatrix() bool    { return true }
func (p *PhaseShift) Basis() string      { return "Z" }
func (p *PhaseShift) GradMethod() string { return "A" }

func (p *PhaseShift) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	m := mat2(1, 0, 0, cmplx.Exp(complex(0, p.angle())))
	return expandIfNeeded(m, p.wires, wireOrder)
}

func (p *PhaseShift) Eigvals() ([]complex128, error) {
	return []complex128{1, cmplx.Exp(complex(0, p.angle()))}, nil
}

func (p *PhaseShift) DiagonalizingGates() ([]Operator, error) {
	return []Operator{}, nil
}

func (p *PhaseShift) Decomposition() ([]Operator, error) {
	return nil, undefinedErr(ErrDecompositionUndefined, p.Name())
}

func (p *PhaseShift) Generator() (Operator, error) {
	proj, err := NewProjector([]int{1}, p.wires.Clone())
	if err != nil {
		return nil, fmt.Errorf("%w: operator %s: %v", ErrGeneratorUndefined, p.Name(), err)
	}
	return NewScaled(1.0, proj), nil
}

func (p *PhaseShift) ParameterFrequencies() ([][]float64, error) {
	return parameterFrequenciesFromGenerator(p)
}

func (p *PhaseShift) Adjoint() (Operator, error) {
	return NewPhaseShift(-p.data[0], p.wires[0]), nil
}

func (p *PhaseShift) Pow(z float64) ([]Operator, error) {
	return []Operator{NewPhaseShift(z*p.data[0], p.wires[0])}, nil
}

func (p *PhaseShift) Copy() Operator             { return &PhaseShift{p.clone()} }
func (p *PhaseShift) Inv() Operation             { p.inverse = !p.inverse; return p }
func (p *PhaseShift) Queue(ctx *queuing.Context) { ctx.Append(p) }
