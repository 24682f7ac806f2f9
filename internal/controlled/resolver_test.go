package controlled

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinor-ml/spinor/internal/operator"
	"github.com/spinor-ml/spinor/internal/qmath"
	"github.com/spinor-ml/spinor/internal/wires"
)

func build(t *testing.T, base operator.Operator) operator.Operator {
	t.Helper()
	c, err := New(base, wires.New("ctrl"))
	require.NoError(t, err)
	return c
}

func TestCapabilityOf(t *testing.T) {
	herm, err := operator.NewHermitian(qmath.Eye(2), wires.New("t"))
	require.NoError(t, err)

	tests := []struct {
		name string
		base operator.Operator
		want capability
	}{
		{"pauli gate has both", operator.NewPauliX("t"), capOperation | capObservable},
		{"rotation is operation only", operator.NewRX(0.1, "t"), capOperation},
		{"hermitian is observable only", herm, capObservable},
		{"bare operator has neither", newBareOp("t"), capNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, capabilityOf(tt.base))
		})
	}
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "operation+observable", (capOperation | capObservable).String())
	assert.Equal(t, "operation", capOperation.String())
	assert.Equal(t, "observable", capObservable.String())
	assert.Equal(t, "none", capNone.String())
}

func TestResolveVariantTypes(t *testing.T) {
	proj, err := operator.NewProjector([]int{1}, wires.New("t"))
	require.NoError(t, err)

	tests := []struct {
		name string
		base operator.Operator
		want reflect.Type
	}{
		{"both capabilities", operator.NewPauliX("t"), reflect.TypeOf(ControlledOperationObservable{})},
		{"operation only", operator.NewRZ(0.1, "t"), reflect.TypeOf(ControlledOperation{})},
		{"observable only", proj, reflect.TypeOf(ControlledObservable{})},
		{"neither", newBareOp("t"), reflect.TypeOf(&Controlled{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := build(t, tt.base)
			assert.Equal(t, tt.want, reflect.TypeOf(c))
		})
	}
}

func TestVariantResolutionIsDeterministic(t *testing.T) {
	// Distinct base types sharing a capability set resolve to the same
	// wrapper type, and repeated construction never changes it.
	a := build(t, operator.NewPauliX("t"))
	b := build(t, operator.NewPauliY("t"))
	c := build(t, operator.NewHadamard("t"))

	assert.Equal(t, reflect.TypeOf(a), reflect.TypeOf(b))
	assert.Equal(t, reflect.TypeOf(b), reflect.TypeOf(c))

	for i := 0; i < 10; i++ {
		again := build(t, operator.NewPauliX("t"))
		assert.Equal(t, reflect.TypeOf(a), reflect.TypeOf(again))
	}
}

func TestVariantRegistryMemoizes(t *testing.T) {
	v1 := variantFor(capOperation)
	v2 := variantFor(capOperation)
	assert.Same(t, v1, v2, "the registry hands out one variant per capability set")
	assert.Equal(t, capOperation, v1.cap)
}

func TestVariantCapabilitySurface(t *testing.T) {
	t.Run("operation variant is not an observable", func(t *testing.T) {
		c := build(t, operator.NewRX(0.1, "t"))
		_, isOp := c.(operator.Operation)
		assert.True(t, isOp)
		_, isObs := c.(operator.Observable)
		assert.False(t, isObs)
	})

	t.Run("observable variant is not an operation", func(t *testing.T) {
		proj, err := operator.NewProjector([]int{0}, wires.New("t"))
		require.NoError(t, err)
		c := build(t, proj)
		_, isOp := c.(operator.Operation)
		assert.False(t, isOp)
		_, isObs := c.(operator.Observable)
		assert.True(t, isObs)
	})

	t.Run("double variant carries both", func(t *testing.T) {
		c := build(t, operator.NewPauliZ("t"))
		_, isOp := c.(operator.Operation)
		assert.True(t, isOp)
		_, isObs := c.(operator.Observable)
		assert.True(t, isObs)
	})
}
