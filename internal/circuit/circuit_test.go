package circuit

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinor-ml/spinor/internal/wires"
)

const bellCircuit = `
name: bell
operations:
  - gate: Hadamard
    wires: ["0"]
  - gate: PauliX
    wires: ["1"]
    control: ["0"]
`

func TestParse(t *testing.T) {
	spec, err := Parse([]byte(bellCircuit))
	require.NoError(t, err)
	assert.Equal(t, "bell", spec.Name)
	require.Len(t, spec.Operations, 2)
	assert.Equal(t, "Hadamard", spec.Operations[0].Gate)
	assert.Equal(t, []string{"0"}, spec.Operations[1].Control)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("name: empty\noperations: []\n"))
	assert.Error(t, err, "a circuit needs at least one operation")

	_, err = Parse([]byte("{operations: [unclosed"))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	spec, err := Parse([]byte(bellCircuit))
	require.NoError(t, err)

	c, err := spec.Build()
	require.NoError(t, err)
	require.Len(t, c.Ops, 2)
	assert.Equal(t, "Hadamard", c.Ops[0].Name())
	assert.Equal(t, "CPauliX", c.Ops[1].Name(), "the controlled entry replaces its base")
	assert.Equal(t, wires.New("0", "1"), c.Wires())
}

func TestBuildUnknownGate(t *testing.T) {
	spec, err := Parse([]byte("operations:\n  - gate: Frobnicate\n    wires: [\"0\"]\n"))
	require.NoError(t, err)

	_, err = spec.Build()
	assert.ErrorContains(t, err, "unknown gate")
}

func TestBuildParamValidation(t *testing.T) {
	spec, err := Parse([]byte("operations:\n  - gate: RX\n    wires: [\"0\"]\n"))
	require.NoError(t, err)

	_, err = spec.Build()
	assert.ErrorContains(t, err, "exactly one parameter")
}

func TestBuildControlValues(t *testing.T) {
	src := `
operations:
  - gate: PauliZ
    wires: ["t"]
    control: ["a", "b"]
    control_values: [false, true]
`
	spec, err := Parse([]byte(src))
	require.NoError(t, err)

	c, err := spec.Build()
	require.NoError(t, err)
	require.Len(t, c.Ops, 1)
	assert.Equal(t, wires.New("a", "b", "t"), c.Ops[0].Wires())
}

func TestBellState(t *testing.T) {
	spec, err := Parse([]byte(bellCircuit))
	require.NoError(t, err)

	c, err := spec.Build()
	require.NoError(t, err)

	state, err := c.State()
	require.NoError(t, err)
	require.Len(t, state, 4)

	s := 1 / math.Sqrt2
	assert.InDelta(t, s, real(state[0]), 1e-9)
	assert.InDelta(t, 0, cmplx.Abs(state[1]), 1e-9)
	assert.InDelta(t, 0, cmplx.Abs(state[2]), 1e-9)
	assert.InDelta(t, s, real(state[3]), 1e-9)
}

func TestMatrixComposesInOrder(t *testing.T) {
	// X then Z on one wire: U = Z·X = [[0, 1], [-1, 0]].
	src := `
operations:
  - gate: X
    wires: ["0"]
  - gate: Z
    wires: ["0"]
`
	spec, err := Parse([]byte(src))
	require.NoError(t, err)
	c, err := spec.Build()
	require.NoError(t, err)

	u, err := c.Matrix()
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(u.At(0, 1)-1), 1e-9)
	assert.InDelta(t, 0, cmplx.Abs(u.At(1, 0)+1), 1e-9)
}

func TestRotationGates(t *testing.T) {
	src := `
operations:
  - gate: RZ
    wires: ["0"]
    params: [1.5707963267948966]
`
	spec, err := Parse([]byte(src))
	require.NoError(t, err)
	c, err := spec.Build()
	require.NoError(t, err)
	require.Len(t, c.Ops, 1)
	assert.Equal(t, "RZ", c.Ops[0].Name())
	assert.InDelta(t, math.Pi/2, c.Ops[0].Data()[0], 1e-12)
}
