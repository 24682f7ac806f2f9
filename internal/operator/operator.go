// Package operator defines the quantum operator abstraction: the Operator
// interface, the Operation and Observable capability interfaces, a library
// of concrete gates, and composite observables (scalar multiples and tensor
// products).
//
// Capabilities are modelled as optional interfaces. Every operator
// implements Operator; gates that can appear in a circuit additionally
// implement Operation, and measurable quantities implement Observable. A
// single type may implement both (PauliX) or neither.
package operator

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/spinor-ml/spinor/internal/qmath"
	"github.com/spinor-ml/spinor/internal/queuing"
	"github.com/spinor-ml/spinor/internal/wires"
)

// Operator is the generic quantum operator surface. Representation methods
// return a wrapped sentinel error (ErrMatrixUndefined, ...) when the
// operator does not define that representation.
type Operator interface {
	Name() string
	Wires() wires.Wires
	SetWires(wires.Wires) error
	NumWires() int

	Data() []float64
	SetData([]float64) error
	NumParams() int
	BatchSize() int
	NdimParams() []int

	IsHermitian() bool
	HasMatrix() bool
	Matrix(wireOrder wires.Wires) (*qmath.Matrix, error)
	Eigvals() ([]complex128, error)
	DiagonalizingGates() ([]Operator, error)
	Decomposition() ([]Operator, error)
	Generator() (Operator, error)
	Adjoint() (Operator, error)
	Pow(z float64) ([]Operator, error)

	Label(decimals int, baseLabel string) string
	Copy() Operator

	QueueCategory() queuing.Category
	Queue(*queuing.Context)
}

// Operation is the capability set of gates that can be applied in a
// circuit: a gradient recipe, a rotation basis, and in-place inversion.
type Operation interface {
	Operator
	BaseName() string
	Basis() string
	GradMethod() string
	Inverse() bool
	SetInverse(bool)
	Inv() Operation
	ParameterFrequencies() ([][]float64, error)
}

// Observable is the capability set of measurable operators.
type Observable interface {
	Operator
	Compare(Operator) bool
}

// SparseMatrixer is implemented by operators with a sparse representation.
type SparseMatrixer interface {
	SparseMatrix(wireOrder wires.Wires, format qmath.Format) (*qmath.Sparse, error)
}

// gateCore holds the state every concrete gate shares. Concrete gates embed
// it and provide the representation methods.
type gateCore struct {
	name    string
	wires   wires.Wires
	data    []float64
	inverse bool
}

func newGateCore(name string, w wires.Wires, data ...float64) gateCore {
	return gateCore{name: name, wires: w.Clone(), data: append([]float64(nil), data...)}
}

func (g *gateCore) Name() string {
	if g.inverse {
		return g.name + ".inv"
	}
	return g.name
}

func (g *gateCore) BaseName() string        { return g.Name() }
func (g *gateCore) Wires() wires.Wires      { return g.wires }
func (g *gateCore) NumWires() int           { return g.wires.Len() }
func (g *gateCore) Data() []float64         { return g.data }
func (g *gateCore) NumParams() int          { return len(g.data) }
func (g *gateCore) BatchSize() int          { return 0 }
func (g *gateCore) Inverse() bool           { return g.inverse }
func (g *gateCore) SetInverse(inverse bool) { g.inverse = inverse }

func (g *gateCore) NdimParams() []int {
	return make([]int, len(g.data))
}

func (g *gateCore) SetWires(w wires.Wires) error {
	if w.Len() != g.wires.Len() {
		return fmt.Errorf("%w: %s acts on %d wires, got %d", ErrValidation, g.name, g.wires.Len(), w.Len())
	}
	g.wires = w.Clone()
	return nil
}

func (g *gateCore) SetData(data []float64) error {
	if len(data) != len(g.data) {
		return fmt.Errorf("%w: %s takes %d parameters, got %d", ErrValidation, g.name, len(g.data), len(data))
	}
	copy(g.data, data)
	return nil
}

func (g *gateCore) Label(decimals int, baseLabel string) string {
	label := g.name
	if baseLabel != "" {
		label = baseLabel
	}
	if len(g.data) == 0 || decimals < 0 {
		return label
	}
	params := make([]string, len(g.data))
	for i, p := range g.data {
		params[i] = strconv.FormatFloat(p, 'f', decimals, 64)
	}
	return label + "(" + strings.Join(params, ",") + ")"
}

func (g *gateCore) QueueCategory() queuing.Category { return queuing.CategoryOps }

func (g *gateCore) clone() gateCore {
	return gateCore{
		name:    g.name,
		wires:   g.wires.Clone(),
		data:    append([]float64(nil), g.data...),
		inverse: g.inverse,
	}
}

// queueSelf records op on the active context, if one is open.
func queueSelf(op Operator) {
	if ctx := queuing.Active(); ctx != nil {
		op.Queue(ctx)
	}
}

// expandIfNeeded re-expresses a canonical matrix over the requested wire
// order; a nil or identical order returns the canonical matrix unchanged.
func expandIfNeeded(m *qmath.Matrix, active, wireOrder wires.Wires) (*qmath.Matrix, error) {
	if wireOrder == nil || active.Equal(wireOrder) {
		return m, nil
	}
	return qmath.ExpandMatrix(m, active, wireOrder)
}

// EigvalsToFrequencies converts generator eigenvalues to the parameter
// frequencies of the associated single-parameter unitary: the sorted unique
// nonzero absolute differences of eigenvalue pairs.
func EigvalsToFrequencies(eigvals []float64) []float64 {
	unique := make(map[float64]struct{})
	for i := 0; i < len(eigvals); i++ {
		for j := i + 1; j < len(eigvals); j++ {
			d := math.Abs(eigvals[i] - eigvals[j])
			d = math.Round(d*1e8) / 1e8
			if d > 0 {
				unique[d] = struct{}{}
			}
		}
	}
	freqs := make([]float64, 0, len(unique))
	for f := range unique {
		freqs = append(freqs, f)
	}
	sort.Float64s(freqs)
	return freqs
}

// parameterFrequenciesFromGenerator derives the frequencies of a
// single-parameter operation from its generator spectrum.
func parameterFrequenciesFromGenerator(op Operator) ([][]float64, error) {
	if op.NumParams() != 1 {
		return nil, fmt.Errorf(
			"%w: operation %s does not have parameter frequencies defined, and they cannot be computed via the generator for more than one parameter",
			ErrParameterFrequenciesUndefined, op.Name())
	}
	gen, err := op.Generator()
	if err != nil {
		return nil, fmt.Errorf("%w: operation %s does not have parameter frequencies defined: %v",
			ErrParameterFrequenciesUndefined, op.Name(), err)
	}
	eig, err := gen.Eigvals()
	if err != nil {
		return nil, fmt.Errorf("%w: generator eigenvalues of %s unavailable: %v",
			ErrParameterFrequenciesUndefined, op.Name(), err)
	}
	vals := make([]float64, len(eig))
	for i, v := range eig {
		vals[i] = real(v)
	}
	vals = qmath.RoundEigvals(vals, 8)
	return [][]float64{EigvalsToFrequencies(vals)}, nil
}
