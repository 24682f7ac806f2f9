package operator

import (
	"fmt"
	"strings"

	"github.com/spinor-ml/spinor/internal/qmath"
	"github.com/spinor-ml/spinor/internal/queuing"
	"github.com/spinor-ml/spinor/internal/wires"
)

// Scaled is the observable c·O for a real coefficient c.
type Scaled struct {
	coeff float64
	base  Operator
}

// NewScaled creates the scalar multiple of an operator, taking ownership of
// it on the active queuing context.
func NewScaled(coeff float64, base Operator) *Scaled {
	op := &Scaled{coeff: coeff, base: base}
	if ctx := queuing.Active(); ctx != nil {
		ctx.Append(op, base)
	}
	return op
}

// Coeff returns the scalar coefficient.
func (s *Scaled) Coeff() float64 { return s.coeff }

// Base returns the scaled operator.
func (s *Scaled) Base() Operator { return s.base }

func (s *Scaled) Name() string {
	return fmt.Sprintf("%g*%s", s.coeff, s.base.Name())
}

func (s *Scaled) Wires() wires.Wires           { return s.base.Wires() }
func (s *Scaled) SetWires(w wires.Wires) error { return s.base.SetWires(w) }
func (s *Scaled) NumWires() int                { return s.base.NumWires() }
func (s *Scaled) Data() []float64              { return s.base.Data() }
func (s *Scaled) SetData(data []float64) error { return s.base.SetData(data) }
func (s *Scaled) NumParams() int               { return s.base.NumParams() }
func (s *Scaled) BatchSize() int               { return s.base.BatchSize() }
func (s *Scaled) NdimParams() []int            { return s.base.NdimParams() }
func (s *Scaled) IsHermitian() bool            { return s.base.IsHermitian() }
func (s *Scaled) HasMatrix() bool              { return s.base.HasMatrix() }

func (s *Scaled) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	m, err := s.base.Matrix(wireOrder)
	if err != nil {
		return nil, err
	}
	return m.Scale(complex(s.coeff, 0)), nil
}

func (s *Scaled) Eigvals() ([]complex128, error) {
	vals, err := s.base.Eigvals()
	if err != nil {
		return nil, err
	}
	out := make([]complex128, len(vals))
	for i, v := range vals {
		out[i] = complex(s.coeff, 0) * v
	}
	return out, nil
}

func (s *Scaled) DiagonalizingGates() ([]Operator, error) {
	return s.base.DiagonalizingGates()
}

func (s *Scaled) Decomposition() ([]Operator, error) {
	return nil, undefinedErr(ErrDecompositionUndefined, s.Name())
}

func (s *Scaled) Generator() (Operator, error) {
	return nil, undefinedErr(ErrGeneratorUndefined, s.Name())
}

func (s *Scaled) Adjoint() (Operator, error) {
	adj, err := s.base.Adjoint()
	if err != nil {
		return nil, err
	}
	return NewScaled(s.coeff, adj), nil
}

func (s *Scaled) Pow(z float64) ([]Operator, error) {
	return nil, fmt.Errorf("%w: %s", ErrPowUndefined, s.Name())
}

func (s *Scaled) Label(decimals int, baseLabel string) string {
	return s.base.Label(decimals, baseLabel)
}

func (s *Scaled) Copy() Operator {
	return &Scaled{coeff: s.coeff, base: s.base.Copy()}
}

func (s *Scaled) Compare(other Operator) bool {
	o, ok := other.(*Scaled)
	if !ok {
		return false
	}
	if s.coeff != o.coeff {
		return false
	}
	return observablesEqual(s.base, o.base)
}

func (s *Scaled) QueueCategory() queuing.Category { return queuing.CategoryNone }
func (s *Scaled) Queue(ctx *queuing.Context)      { ctx.Append(s, s.base) }

// Prod is the tensor product of operators acting on pairwise disjoint
// wires. The factor order fixes the wire order of the composite.
type Prod struct {
	factors []Operator
}

// NewProd creates a tensor product observable, taking ownership of its
// factors on the active queuing context. Factors must act on pairwise
// disjoint wires.
func NewProd(factors ...Operator) (*Prod, error) {
	seen := wires.Wires{}
	for _, f := range factors {
		if !seen.Disjoint(f.Wires()) {
			return nil, fmt.Errorf("%w: tensor factors share wires %s", ErrValidation, seen.Shared(f.Wires()))
		}
		seen = seen.Concat(f.Wires())
	}
	op := &Prod{factors: factors}
	if ctx := queuing.Active(); ctx != nil {
		ctx.Append(op, itemsOf(factors)...)
	}
	return op, nil
}

// Factors returns the tensor factors in order.
func (p *Prod) Factors() []Operator { return p.factors }

func (p *Prod) Name() string {
	names := make([]string, len(p.factors))
	for i, f := range p.factors {
		names[i] = f.Name()
	}
	return strings.Join(names, " @ ")
}

func (p *Prod) Wires() wires.Wires {
	out := wires.Wires{}
	for _, f := range p.factors {
		out = out.Concat(f.Wires())
	}
	return out
}

func (p *Prod) SetWires(w wires.Wires) error {
	if w.Len() != p.NumWires() {
		return fmt.Errorf("%w: %s acts on %d wires, got %d", ErrValidation, p.Name(), p.NumWires(), w.Len())
	}
	offset := 0
	for _, f := range p.factors {
		n := f.NumWires()
		if err := f.SetWires(w[offset : offset+n]); err != nil {
			return err
		}
		offset += n
	}
	return nil
}

func (p *Prod) NumWires() int {
	n := 0
	for _, f := range p.factors {
		n += f.NumWires()
	}
	return n
}

func (p *Prod) Data() []float64 {
	var out []float64
	for _, f := range p.factors {
		out = append(out, f.Data()...)
	}
	return out
}

func (p *Prod) SetData(data []float64) error {
	if len(data) != p.NumParams() {
		return fmt.Errorf("%w: %s takes %d parameters, got %d", ErrValidation, p.Name(), p.NumParams(), len(data))
	}
	offset := 0
	for _, f := range p.factors {
		n := f.NumParams()
		if err := f.SetData(data[offset : offset+n]); err != nil {
			return err
		}
		offset += n
	}
	return nil
}

func (p *Prod) NumParams() int {
	n := 0
	for _, f := range p.factors {
		n += f.NumParams()
	}
	return n
}

func (p *Prod) BatchSize() int { return 0 }

func (p *Prod) NdimParams() []int {
	var out []int
	for _, f := range p.factors {
		out = append(out, f.NdimParams()...)
	}
	return out
}

func (p *Prod) IsHermitian() bool {
	for _, f := range p.factors {
		if !f.IsHermitian() {
			return false
		}
	}
	return true
}

func (p *Prod) HasMatrix() bool {
	for _, f := range p.factors {
		if !f.HasMatrix() {
			return false
		}
	}
	return true
}

func (p *Prod) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	m := qmath.Eye(1)
	for _, f := range p.factors {
		fm, err := f.Matrix(nil)
		if err != nil {
			return nil, err
		}
		m = m.Kron(fm)
	}
	return expandIfNeeded(m, p.Wires(), wireOrder)
}

func (p *Prod) Eigvals() ([]complex128, error) {
	vals := []complex128{1}
	for _, f := range p.factors {
		fv, err := f.Eigvals()
		if err != nil {
			return nil, err
		}
		next := make([]complex128, 0, len(vals)*len(fv))
		for _, a := range vals {
			for _, b := range fv {
				next = append(next, a*b)
			}
		}
		vals = next
	}
	return vals, nil
}

func (p *Prod) DiagonalizingGates() ([]Operator, error) {
	var out []Operator
	for _, f := range p.factors {
		g, err := f.DiagonalizingGates()
		if err != nil {
			return nil, err
		}
		out = append(out, g...)
	}
	return out, nil
}

func (p *Prod) Decomposition() ([]Operator, error) {
	return nil, undefinedErr(ErrDecompositionUndefined, p.Name())
}

func (p *Prod) Generator() (Operator, error) {
	return nil, undefinedErr(ErrGeneratorUndefined, p.Name())
}

func (p *Prod) Adjoint() (Operator, error) {
	adj := make([]Operator, len(p.factors))
	for i, f := range p.factors {
		a, err := f.Adjoint()
		if err != nil {
			return nil, err
		}
		adj[i] = a
	}
	return NewProd(adj...)
}

func (p *Prod) Pow(z float64) ([]Operator, error) {
	return nil, fmt.Errorf("%w: %s", ErrPowUndefined, p.Name())
}

func (p *Prod) Label(decimals int, baseLabel string) string {
	if baseLabel != "" {
		return baseLabel
	}
	labels := make([]string, len(p.factors))
	for i, f := range p.factors {
		labels[i] = f.Label(decimals, "")
	}
	return strings.Join(labels, "@")
}

func (p *Prod) Copy() Operator {
	factors := make([]Operator, len(p.factors))
	for i, f := range p.factors {
		factors[i] = f.Copy()
	}
	return &Prod{factors: factors}
}

func (p *Prod) Compare(other Operator) bool {
	o, ok := other.(*Prod)
	if !ok || len(p.factors) != len(o.factors) {
		return false
	}
	for i := range p.factors {
		if !observablesEqual(p.factors[i], o.factors[i]) {
			return false
		}
	}
	return true
}

func (p *Prod) QueueCategory() queuing.Category { return queuing.CategoryNone }
func (p *Prod) Queue(ctx *queuing.Context)      { ctx.Append(p, itemsOf(p.factors)...) }

func itemsOf(ops []Operator) []queuing.Item {
	items := make([]queuing.Item, len(ops))
	for i, op := range ops {
		items[i] = op
	}
	return items
}
