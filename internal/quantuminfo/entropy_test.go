package quantuminfo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinor-ml/spinor/internal/qmath"
)

func TestDensityMatrix(t *testing.T) {
	s := 1 / math.Sqrt2
	dm, err := DensityMatrix([]complex128{complex(s, 0), complex(s, 0)}, true)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, 0.5, real(dm.At(i, j)), 1e-12)
		}
	}
}

func TestDensityMatrixValidation(t *testing.T) {
	_, err := DensityMatrix(nil, true)
	assert.Error(t, err, "empty state")

	_, err = DensityMatrix([]complex128{1, 0, 0}, true)
	assert.Error(t, err, "dimension must be a power of two")

	_, err = DensityMatrix([]complex128{1, 1}, true)
	assert.Error(t, err, "not normalized")

	// Unchecked construction accepts anything non-empty.
	_, err = DensityMatrix([]complex128{1, 1, 1}, false)
	assert.NoError(t, err)
}

func TestVonNeumannEntropyPureState(t *testing.T) {
	got, err := VonNeumannEntropyFromState([]complex128{1, 0}, 0, true)
	require.NoError(t, err)
	assert.InDelta(t, 0, got, 1e-9)

	s := complex(1/math.Sqrt2, 0)
	got, err = VonNeumannEntropyFromState([]complex128{s, s}, 0, true)
	require.NoError(t, err)
	assert.InDelta(t, 0, got, 1e-9, "superposition is still a pure state")
}

func TestVonNeumannEntropyMaximallyMixed(t *testing.T) {
	dm := qmath.Eye(2).Scale(0.5)

	got, err := VonNeumannEntropy(dm, 0)
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2, got, 1e-9)

	got, err = VonNeumannEntropy(dm, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9, "one bit of entropy in base 2")
}

func TestVonNeumannEntropyMixedState(t *testing.T) {
	// diag(3/4, 1/4): S = -(3/4)ln(3/4) - (1/4)ln(1/4).
	dm, _ := qmath.FromRows([][]complex128{
		{0.75, 0},
		{0, 0.25},
	})
	want := -(0.75*math.Log(0.75) + 0.25*math.Log(0.25))

	got, err := VonNeumannEntropy(dm, 0)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)
}

func TestVonNeumannEntropyInvalidBase(t *testing.T) {
	dm := qmath.Eye(2).Scale(0.5)
	_, err := VonNeumannEntropy(dm, -2)
	assert.Error(t, err)
	_, err = VonNeumannEntropy(dm, 1)
	assert.Error(t, err)
}
