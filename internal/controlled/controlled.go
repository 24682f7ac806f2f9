// Package controlled implements the symbolic controlled-operator
// construction: given an arbitrary base operator, it produces an operator
// applying the base conditioned on a set of control wires taking specified
// binary values, while preserving the base operator's capability set,
// differentiability and matrix semantics.
//
// Construction resolves the base operator's capabilities (Operation,
// Observable, both, or neither) and returns one of four wrapper variants
// around a shared engine; see resolver.go.
package controlled

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/spinor-ml/spinor/internal/operator"
	"github.com/spinor-ml/spinor/internal/qmath"
	"github.com/spinor-ml/spinor/internal/queuing"
	"github.com/spinor-ml/spinor/internal/wires"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "controlled").Logger()

// SetLogger replaces the package logger.
func SetLogger(l zerolog.Logger) {
	logger = l.With().Str("component", "controlled").Logger()
}

type config struct {
	controlValues []bool
	workWires     wires.Wires
	id            string
	queue         bool
	ctx           *queuing.Context
}

// Option configures construction of a controlled operator.
type Option func(*config) error

// WithControlValues sets the triggering value per control wire. The
// sequence must match the control wires in length.
func WithControlValues(values []bool) Option {
	return func(c *config) error {
		// An explicit empty sequence must stay distinguishable from the
		// option being absent, so the copy is never nil.
		c.controlValues = append(make([]bool, 0, len(values)), values...)
		return nil
	}
}

// WithControlValueString sets control values from a string of "0"/"1"
// runes.
//
// Deprecated: use WithControlValues.
func WithControlValueString(s string) Option {
	return func(c *config) error {
		logger.Warn().Msg("specifying control values as a string is deprecated; use WithControlValues")
		values := make([]bool, 0, len(s))
		for _, r := range s {
			switch r {
			case '0':
				values = append(values, false)
			case '1':
				values = append(values, true)
			default:
				return fmt.Errorf("%w: control value string may contain only '0' and '1', got %q", operator.ErrValidation, r)
			}
		}
		c.controlValues = values
		return nil
	}
}

// WithWorkWires sets auxiliary wires a decomposition may use. They are not
// semantically modified by the operation.
func WithWorkWires(w wires.Wires) Option {
	return func(c *config) error {
		c.workWires = w.Clone()
		return nil
	}
}

// WithID attaches a custom identifier.
func WithID(id string) Option {
	return func(c *config) error {
		c.id = id
		return nil
	}
}

// WithoutQueuing suppresses recording on the active queuing context.
func WithoutQueuing() Option {
	return func(c *config) error {
		c.queue = false
		return nil
	}
}

// WithQueue records the operator on the given context instead of the active
// one.
func WithQueue(ctx *queuing.Context) Option {
	return func(c *config) error {
		c.ctx = ctx
		return nil
	}
}

// New constructs a controlled version of base, conditioned on the control
// wires taking the configured values (all-true by default). The returned
// operator exposes exactly the capability set of its base; see the package
// documentation.
//
// Unless suppressed with WithoutQueuing, the new operator records itself on
// the active queuing context and takes ownership of base, so base no
// longer appears as an independent top-level entry.
func New(base operator.Operator, controlWires wires.Wires, opts ...Option) (operator.Operator, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: base operator must not be nil", operator.ErrValidation)
	}
	cfg := config{queue: true}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := controlWires.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", operator.ErrValidation, err)
	}

	values := cfg.controlValues
	if values == nil {
		values = make([]bool, controlWires.Len())
		for i := range values {
			values[i] = true
		}
	}
	if len(values) != controlWires.Len() {
		return nil, fmt.Errorf("%w: control values should be the same length as control wires (%d != %d)",
			operator.ErrValidation, len(values), controlWires.Len())
	}
	if !controlWires.Disjoint(base.Wires()) {
		return nil, fmt.Errorf("%w: the control wires must be different from the base operation wires (shared: %s)",
			operator.ErrValidation, controlWires.Shared(base.Wires()))
	}
	if !cfg.workWires.Disjoint(controlWires) || !cfg.workWires.Disjoint(base.Wires()) {
		return nil, fmt.Errorf("%w: work wires must be different from the control and base operation wires",
			operator.ErrValidation)
	}

	engine := &Controlled{
		base:          base,
		controlWires:  controlWires.Clone(),
		controlValues: values,
		workWires:     cfg.workWires.Clone(),
		id:            cfg.id,
	}
	op := resolve(engine)

	if cfg.queue {
		ctx := cfg.ctx
		if ctx == nil {
			ctx = queuing.Active()
		}
		if ctx != nil {
			op.Queue(ctx)
		}
	}
	return op, nil
}

// Controlled is the capability-independent engine behind all controlled
// operator variants. It stores the base operator plus the control metadata
// and derives every representation from the base operator's own
// implementations.
//
// The bare engine is itself the variant used for bases with neither the
// Operation nor the Observable capability.
type Controlled struct {
	base          operator.Operator
	controlWires  wires.Wires
	controlValues []bool
	workWires     wires.Wires
	id            string
}

// Base returns the operator being controlled.
func (c *Controlled) Base() operator.Operator { return c.base }

// ControlWires returns the wires the operation is conditioned on.
func (c *Controlled) ControlWires() wires.Wires { return c.controlWires }

// ControlValues returns, per control wire, whether to condition on true or
// false.
func (c *Controlled) ControlValues() []bool { return c.controlValues }

// TargetWires returns the wires of the base operator.
func (c *Controlled) TargetWires() wires.Wires { return c.base.Wires() }

// WorkWires returns the auxiliary wires available to a decomposition.
func (c *Controlled) WorkWires() wires.Wires { return c.workWires }

// ID returns the optional identifier given at construction.
func (c *Controlled) ID() string { return c.id }

// ControlInt folds the control values into an integer, first control wire
// most significant.
func (c *Controlled) ControlInt() int {
	v := 0
	for _, b := range c.controlValues {
		v <<= 1
		if b {
			v |= 1
		}
	}
	return v
}

// Name is derived from the base name, so base inversion cascades into the
// controlled name without extra bookkeeping.
func (c *Controlled) Name() string { return "C" + c.base.Name() }

// Wires returns control wires ++ target wires ++ work wires.
func (c *Controlled) Wires() wires.Wires {
	return c.controlWires.Concat(c.base.Wires(), c.workWires)
}

// NumWires returns the total number of wires.
func (c *Controlled) NumWires() int { return c.Wires().Len() }

// SetWires reassigns the operator to a flat wire sequence: the first
// segment becomes the control wires, the next the base wires, and any
// remainder the work wires.
func (c *Controlled) SetWires(w wires.Wires) error {
	numControl := c.controlWires.Len()
	numBase := c.base.NumWires()
	if w.Len() < numControl+numBase {
		return fmt.Errorf("%w: %s needs at least %d wires, %d provided",
			operator.ErrValidation, c.Name(), numControl+numBase, w.Len())
	}
	if err := c.base.SetWires(w[numControl : numControl+numBase]); err != nil {
		return err
	}
	c.controlWires = w[:numControl].Clone()
	if w.Len() > numControl+numBase {
		c.workWires = w[numControl+numBase:].Clone()
	} else {
		c.workWires = wires.Wires{}
	}
	return nil
}

// Parameter accessors delegate to the base operator; the wrapper stores no
// parameters of its own.

func (c *Controlled) Data() []float64              { return c.base.Data() }
func (c *Controlled) SetData(data []float64) error { return c.base.SetData(data) }
func (c *Controlled) NumParams() int               { return c.base.NumParams() }
func (c *Controlled) BatchSize() int               { return c.base.BatchSize() }
func (c *Controlled) NdimParams() []int            { return c.base.NdimParams() }

func (c *Controlled) IsHermitian() bool { return c.base.IsHermitian() }
func (c *Controlled) HasMatrix() bool   { return c.base.HasMatrix() }

func (c *Controlled) DiagonalizingGates() ([]operator.Operator, error) {
	return c.base.DiagonalizingGates()
}

func (c *Controlled) Label(decimals int, baseLabel string) string {
	return c.base.Label(decimals, baseLabel)
}

func (c *Controlled) QueueCategory() queuing.Category { return c.base.QueueCategory() }

// Matrix embeds the base matrix as the control-selected diagonal block of
// an otherwise-identity matrix of dimension 2^(controls+targets). A wire
// order differing from control ++ target re-expands the canonical matrix,
// with wires outside that set contributing identity dimensions.
func (c *Controlled) Matrix(wireOrder wires.Wires) (*qmath.Matrix, error) {
	baseMatrix, err := c.base.Matrix(nil)
	if err != nil {
		return nil, err
	}

	numTargetStates := 1 << c.base.NumWires()
	numControlStates := 1 << c.controlWires.Len()
	totalSize := numControlStates * numTargetStates

	paddingLeft := c.ControlInt() * numTargetStates
	paddingRight := totalSize - paddingLeft - numTargetStates

	canonical := qmath.BlockDiag(qmath.Eye(paddingLeft), baseMatrix, qmath.Eye(paddingRight))

	if wireOrder == nil || c.Wires().Equal(wireOrder) {
		return canonical, nil
	}
	active := c.controlWires.Concat(c.base.Wires())
	return qmath.ExpandMatrix(canonical, active, wireOrder)
}

// SparseMatrix builds the same block embedding sparsely: a sparse identity
// of the full dimension whose control-selected diagonal block is
// overwritten with the base matrix. Requesting a wire order is not
// supported.
func (c *Controlled) SparseMatrix(wireOrder wires.Wires, format qmath.Format) (*qmath.Sparse, error) {
	if wireOrder.Len() > 0 {
		return nil, fmt.Errorf("%w: sparse matrix of %s", operator.ErrWireOrderUnsupported, c.Name())
	}

	var target *qmath.Sparse
	if sm, ok := c.base.(operator.SparseMatrixer); ok {
		s, err := sm.SparseMatrix(nil, qmath.FormatLIL)
		switch {
		case err == nil:
			target = s
		case !errors.Is(err, operator.ErrSparseMatrixUndefined):
			return nil, err
		}
	}
	if target == nil {
		dense, err := c.base.Matrix(nil)
		if err != nil {
			if errors.Is(err, operator.ErrMatrixUndefined) {
				return nil, fmt.Errorf("%w: %v", operator.ErrSparseMatrixUndefined, err)
			}
			return nil, err
		}
		target = qmath.SparseFromDense(dense)
	}

	numTargetStates := 1 << c.base.NumWires()
	totalStates := numTargetStates << c.controlWires.Len()
	start := c.ControlInt() * numTargetStates

	m := qmath.SparseEye(totalStates)
	if err := m.SetBlock(start, target); err != nil {
		return nil, err
	}
	return m.AsFormat(format)
}

// Eigvals pads the base eigenvalues with ones for the control-off
// subspace, prepended.
//
// Note the padding does not place the base spectrum at the ControlInt
// offset the way Matrix and SparseMatrix place the base block; for any
// control values other than all-true the two representations disagree.
// This mirrors the historical behavior and is kept deliberately; see the
// known-inconsistency test.
func (c *Controlled) Eigvals() ([]complex128, error) {
	baseEigvals, err := c.base.Eigvals()
	if err != nil {
		return nil, err
	}
	total := 1 << (c.base.NumWires() + c.controlWires.Len())
	out := make([]complex128, 0, total)
	for i := 0; i < total-len(baseEigvals); i++ {
		out = append(out, 1)
	}
	return append(out, baseEigvals...), nil
}

// Decomposition flips any false-valued controls by conjugating an all-true
// controlled operator with X gates on the false-control wires. With
// all-true control values there is nothing generic to defer to and the
// decomposition is undefined.
func (c *Controlled) Decomposition() ([]operator.Operator, error) {
	allTrue := true
	for _, v := range c.controlValues {
		if !v {
			allTrue = false
			break
		}
	}
	if allTrue {
		return nil, fmt.Errorf("%w: operator %s", operator.ErrDecompositionUndefined, c.Name())
	}

	var d []operator.Operator
	for i, w := range c.controlWires {
		if !c.controlValues[i] {
			d = append(d, operator.NewPauliX(w))
		}
	}
	inner, err := New(c.base, c.controlWires, WithWorkWires(c.workWires))
	if err != nil {
		return nil, err
	}
	d = append(d, inner)
	for i, w := range c.controlWires {
		if !c.controlValues[i] {
			d = append(d, operator.NewPauliX(w))
		}
	}
	return d, nil
}

// Generator is 1.0 times the projector onto state |1⟩ of every control
// wire, tensored with the base generator.
func (c *Controlled) Generator() (operator.Operator, error) {
	subGen, err := c.base.Generator()
	if err != nil {
		return nil, err
	}
	factors := make([]operator.Operator, 0, c.controlWires.Len()+1)
	for _, w := range c.controlWires {
		proj, perr := operator.NewProjector([]int{1}, wires.New(w))
		if perr != nil {
			return nil, perr
		}
		factors = append(factors, proj)
	}
	factors = append(factors, subGen)
	prod, err := operator.NewProd(factors...)
	if err != nil {
		return nil, err
	}
	return operator.NewScaled(1.0, prod), nil
}

// Adjoint controls the base adjoint on the same control metadata.
func (c *Controlled) Adjoint() (operator.Operator, error) {
	adj, err := c.base.Adjoint()
	if err != nil {
		return nil, err
	}
	return New(adj, c.controlWires,
		WithControlValues(c.controlValues), WithWorkWires(c.workWires))
}

// Pow wraps every operator of the base power decomposition (a sequence,
// due to branch cuts) with the same control metadata.
func (c *Controlled) Pow(z float64) ([]operator.Operator, error) {
	basePow, err := c.base.Pow(z)
	if err != nil {
		return nil, err
	}
	out := make([]operator.Operator, len(basePow))
	for i, op := range basePow {
		wrapped, werr := New(op, c.controlWires,
			WithControlValues(c.controlValues), WithWorkWires(c.workWires))
		if werr != nil {
			return nil, werr
		}
		out[i] = wrapped
	}
	return out, nil
}

// copyEngine duplicates the engine. The base operator is copied
// independently so the clone never aliases the original's base.
func (c *Controlled) copyEngine() *Controlled {
	return &Controlled{
		base:          c.base.Copy(),
		controlWires:  c.controlWires.Clone(),
		controlValues: append([]bool(nil), c.controlValues...),
		workWires:     c.workWires.Clone(),
		id:            c.id,
	}
}

// Copy returns an independent clone. Variants override this to preserve
// their wrapper type.
func (c *Controlled) Copy() operator.Operator { return c.copyEngine() }

// Queue records the operator on the context and marks it as the owner of
// its base, so the base is excluded from independent recording.
func (c *Controlled) Queue(ctx *queuing.Context) { c.queueAs(ctx, c) }

func (c *Controlled) queueAs(ctx *queuing.Context, self queuing.Item) {
	ctx.SafeUpdateInfo(c.base, self)
	ctx.Append(self, c.base)
}

// compare matches another operator by name, wires, parameters and control
// values.
func (c *Controlled) compare(other operator.Operator) bool {
	if c.Name() != other.Name() || !c.Wires().Equal(other.Wires()) {
		return false
	}
	ad, bd := c.Data(), other.Data()
	if len(ad) != len(bd) {
		return false
	}
	for i := range ad {
		if ad[i] != bd[i] {
			return false
		}
	}
	type controlValuer interface{ ControlValues() []bool }
	if o, ok := other.(controlValuer); ok {
		ov := o.ControlValues()
		if len(ov) != len(c.controlValues) {
			return false
		}
		for i := range ov {
			if ov[i] != c.controlValues[i] {
				return false
			}
		}
	}
	return true
}
