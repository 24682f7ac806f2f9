package controlled

import (
	"fmt"
	"sync"

	"github.com/spinor-ml/spinor/internal/operator"
	"github.com/spinor-ml/spinor/internal/qmath"
	"github.com/spinor-ml/spinor/internal/queuing"
)

// capability is the bitmask of base-operator capabilities a variant
// covers.
type capability uint8

const (
	capNone       capability = 0
	capOperation  capability = 1 << 0
	capObservable capability = 1 << 1
)

func (c capability) String() string {
	switch c {
	case capOperation | capObservable:
		return "operation+observable"
	case capOperation:
		return "operation"
	case capObservable:
		return "observable"
	default:
		return "none"
	}
}

// capabilityOf inspects the base operator: Operation membership first, with
// a nested Observable check, then Observable alone, else neither.
func capabilityOf(base operator.Operator) capability {
	if _, ok := base.(operator.Operation); ok {
		if _, ok := base.(operator.Observable); ok {
			return capOperation | capObservable
		}
		return capOperation
	}
	if _, ok := base.(operator.Observable); ok {
		return capObservable
	}
	return capNone
}

// variant binds a capability combination to the wrapper that realizes it.
type variant struct {
	cap  capability
	wrap func(*Controlled) operator.Operator
}

// variants memoizes one canonical variant per capability combination, so
// repeated construction with bases sharing a capability set reuses the
// same wrapper identity. Populated lazily, first write wins; rebuilding
// would be harmless, only slower.
var variants sync.Map // capability -> *variant

func variantFor(c capability) *variant {
	if v, ok := variants.Load(c); ok {
		return v.(*variant)
	}
	v, _ := variants.LoadOrStore(c, buildVariant(c))
	return v.(*variant)
}

func buildVariant(c capability) *variant {
	v := &variant{cap: c}
	switch c {
	case capOperation | capObservable:
		v.wrap = func(e *Controlled) operator.Operator { return ControlledOperationObservable{ControlledOperation{e}} }
	case capOperation:
		v.wrap = func(e *Controlled) operator.Operator { return ControlledOperation{e} }
	case capObservable:
		v.wrap = func(e *Controlled) operator.Operator { return ControlledObservable{e} }
	default:
		v.wrap = func(e *Controlled) operator.Operator { return e }
	}
	return v
}

// resolve wraps the engine in the variant matching its base capabilities.
func resolve(engine *Controlled) operator.Operator {
	return variantFor(capabilityOf(engine.base)).wrap(engine)
}

// ControlledOperation is the variant for bases with the Operation
// capability. It exposes basis, gradient and inversion behavior on top of
// the shared engine, all deferred to the base.
type ControlledOperation struct{ *Controlled }

func (c ControlledOperation) operation() operator.Operation {
	return c.base.(operator.Operation)
}

// BaseName reflects the base's own base name with the control prefix.
func (c ControlledOperation) BaseName() string { return "C" + c.operation().BaseName() }

// Basis returns the rotation basis of the base operation.
func (c ControlledOperation) Basis() string { return c.operation().Basis() }

// GradMethod returns the gradient recipe tag of the base operation.
func (c ControlledOperation) GradMethod() string { return c.operation().GradMethod() }

// Inverse always reports false: inversion state lives on the base, so the
// matrix and eigenvalue paths never need an inversion correction here.
func (c ControlledOperation) Inverse() bool { return false }

// SetInverse writes the inversion flag through to the base. The name
// needs no refresh because Name derives from the base name on every call.
func (c ControlledOperation) SetInverse(inverse bool) { c.operation().SetInverse(inverse) }

// Inv toggles inversion on the base and returns the controlled operation.
func (c ControlledOperation) Inv() operator.Operation {
	c.operation().Inv()
	return c
}

// ParameterFrequencies derives frequencies from the base generator when
// the base carries exactly one parameter. The control projectors extend
// the generator spectrum with an eigenvalue of zero.
func (c ControlledOperation) ParameterFrequencies() ([][]float64, error) {
	if c.base.NumParams() != 1 {
		return nil, fmt.Errorf(
			"%w: operation %s does not have parameter frequencies defined, and they cannot be computed via the generator for more than one parameter",
			operator.ErrParameterFrequenciesUndefined, c.Name())
	}
	gen, err := c.base.Generator()
	if err != nil {
		return nil, fmt.Errorf("%w: operation %s does not have parameter frequencies defined: %v",
			operator.ErrParameterFrequenciesUndefined, c.base.Name(), err)
	}
	eig, err := gen.Eigvals()
	if err != nil {
		return nil, fmt.Errorf("%w: generator eigenvalues of %s unavailable: %v",
			operator.ErrParameterFrequenciesUndefined, c.base.Name(), err)
	}
	vals := make([]float64, 0, len(eig)+1)
	for _, v := range eig {
		vals = append(vals, real(v))
	}
	vals = append(vals, 0)
	vals = qmath.RoundEigvals(vals, 8)
	return [][]float64{operator.EigvalsToFrequencies(vals)}, nil
}

func (c ControlledOperation) Copy() operator.Operator {
	return ControlledOperation{c.copyEngine()}
}

func (c ControlledOperation) Queue(ctx *queuing.Context) { c.queueAs(ctx, c) }

// ControlledObservable is the variant for bases with the Observable
// capability only.
type ControlledObservable struct{ *Controlled }

// Compare matches another operator by name, wires, parameters and control
// values.
func (c ControlledObservable) Compare(other operator.Operator) bool { return c.compare(other) }

func (c ControlledObservable) Copy() operator.Operator {
	return ControlledObservable{c.copyEngine()}
}

func (c ControlledObservable) Queue(ctx *queuing.Context) { c.queueAs(ctx, c) }

// ControlledOperationObservable is the variant for bases carrying both
// capabilities.
type ControlledOperationObservable struct{ ControlledOperation }

// Compare matches another operator by name, wires, parameters and control
// values.
func (c ControlledOperationObservable) Compare(other operator.Operator) bool {
	return c.compare(other)
}

func (c ControlledOperationObservable) Copy() operator.Operator {
	return ControlledOperationObservable{ControlledOperation{c.copyEngine()}}
}

func (c ControlledOperationObservable) Queue(ctx *queuing.Context) { c.queueAs(ctx, c) }

// Inv toggles inversion on the base and returns the controlled operation.
func (c ControlledOperationObservable) Inv() operator.Operation {
	c.operation().Inv()
	return c
}
