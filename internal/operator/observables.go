package operator

import (
	"fmt"
	"math"

	"github.com/spinor-ml/spinor/internal/qmath"
	"github.com/spinor-ml/spinor/internal/queuing"
	"github.com/spinor-ml/spinor/internal/wires"
)

// Projector is the rank-1 observable |s⟩⟨s| onto a computational basis
// state. Observable only; it cannot be applied as a gate.
type Projector struct {
	gateCore
	state []int
}

// NewProjector creates a projector onto the basis state given as a bit
// sequence, one bit per wire, and records it on the active queuing
// context.
func NewProjector(state []int, w wires.Wires) (*Projector, error) {
	if len(state) != w.Len() {
		return nil, fmt.Errorf("%w: projector basis state has %d bits for %d wires", ErrValidation, len(state), w.Len())
	}
	for _, b := range state {
		if b != 0 && b != 1 {
			return nil, fmt.Errorf("%w: projector basis state must contain only 0 and 1, got %d", ErrValidation, b)
		}
	}
	op := &Projector{
		gateCore: newGateCore("Projector", w),
		state:    append([]int(nil), state...),
	}
	queueSelf(op)
	return op, nil
}

// State returns the basis state bits the projector selects.
func (p *Projector) State() []int { return p.state }

func (p *Projector) IsHermitian() bool { return true }
func (p *Projector) HasMatrix() bool   { return true }

// basisIndex folds the state bits into a basis index, first wire most
// significant.
func (p *Projector) basisIndex() int {
	idx := 0
	for _, b := range p.state {
		idx = idx<<1 | b
	}
	return idx
}

func (p *Projector) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	dim := 1 << len(p.state)
	m := qmath.NewMatrix(dim)
	k := p.basisIndex()
	m.Set(k, k, 1)
	return expandIfNeeded(m, p.wires, wireOrder)
}

func (p *Projector) Eigvals() ([]complex128, error) {
	dim := 1 << len(p.state)
	vals := make([]complex128, dim)
	vals[p.basisIndex()] = 1
	return vals, nil
}

func (p *Projector) DiagonalizingGates() ([]Operator, error) {
	return []Operator{}, nil
}

func (p *Projector) Decomposition() ([]Operator, error) {
	return nil, undefinedErr(ErrDecompositionUndefined, p.Name())
}

func (p *Projector) Generator() (Operator, error) {
	return nil, undefinedErr(ErrGeneratorUndefined, p.Name())
}

func (p *Projector) Adjoint() (Operator, error) { return p.Copy(), nil }

// Pow of a projector is the projector itself for any positive power.
func (p *Projector) Pow(z float64) ([]Operator, error) {
	if z <= 0 {
		return nil, fmt.Errorf("%w: %s raised to power %v", ErrPowUndefined, p.Name(), z)
	}
	return []Operator{p.Copy()}, nil
}

func (p *Projector) Copy() Operator {
	return &Projector{gateCore: p.clone(), state: append([]int(nil), p.state...)}
}

func (p *Projector) Compare(other Operator) bool {
	o, ok := other.(*Projector)
	if !ok {
		return false
	}
	if !observablesEqual(p, other) || len(p.state) != len(o.state) {
		return false
	}
	for i := range p.state {
		if p.state[i] != o.state[i] {
			return false
		}
	}
	return true
}

func (p *Projector) QueueCategory() queuing.Category { return queuing.CategoryNone }
func (p *Projector) Queue(ctx *queuing.Context)      { ctx.Append(p) }

// Hermitian is an observable defined by an explicit hermitian matrix.
type Hermitian struct {
	gateCore
	matrix *qmath.Matrix
}

// NewHermitian creates an observable from a hermitian matrix acting on the
// given wires and records it on the active queuing context.
func NewHermitian(m *qmath.Matrix, w wires.Wires) (*Hermitian, error) {
	if m.Dim() != 1<<w.Len() {
		return nil, fmt.Errorf("%w: matrix dimension %d does not match %d wires", ErrValidation, m.Dim(), w.Len())
	}
	if !m.IsHermitian(1e-10) {
		return nil, fmt.Errorf("%w: matrix is not hermitian", ErrValidation)
	}
	op := &Hermitian{gateCore: newGateCore("Hermitian", w), matrix: m.Clone()}
	queueSelf(op)
	return op, nil
}

func (h *Hermitian) IsHermitian() bool { return true }
func (h *Hermitian) HasMatrix() bool   { return true }

func (h *Hermitian) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	return expandIfNeeded(h.matrix.Clone(), h.wires, wireOrder)
}

func (h *Hermitian) Eigvals() ([]complex128, error) {
	vals, err := qmath.EigvalsHermitian(h.matrix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEigvalsUndefined, err)
	}
	out := make([]complex128, len(vals))
	for i, v := range vals {
		out[i] = complex(v, 0)
	}
	return out, nil
}

func (h *Hermitian) DiagonalizingGates() ([]Operator, error) {
	return nil, undefinedErr(ErrDiagonalizingGatesUndefined, h.Name())
}

func (h *Hermitian) Decomposition() ([]Operator, error) {
	return nil, undefinedErr(ErrDecompositionUndefined, h.Name())
}

func (h *Hermitian) Generator() (Operator, error) {
	return nil, undefinedErr(ErrGeneratorUndefined, h.Name())
}

func (h *Hermitian) Adjoint() (Operator, error) { return h.Copy(), nil }

func (h *Hermitian) Pow(z float64) ([]Operator, error) {
	if math.Abs(z-1) < 1e-9 {
		return []Operator{h.Copy()}, nil
	}
	return nil, fmt.Errorf("%w: %s raised to power %v", ErrPowUndefined, h.Name(), z)
}

func (h *Hermitian) Copy() Operator {
	return &Hermitian{gateCore: h.clone(), matrix: h.matrix.Clone()}
}

func (h *Hermitian) Compare(other Operator) bool {
	o, ok := other.(*Hermitian)
	if !ok {
		return false
	}
	return h.wires.Equal(o.wires) && h.matrix.EqualApprox(o.matrix, 1e-9)
}

func (h *Hermitian) QueueCategory() queuing.Category { return queuing.CategoryNone }
func (h *Hermitian) Queue(ctx *queuing.Context)      { ctx.Append(h) }
