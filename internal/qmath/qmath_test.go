package qmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinor-ml/spinor/internal/wires"
)

const tol = 1e-10

func pauliX() *Matrix {
	m, _ := FromRows([][]complex128{
		{0, 1},
		{1, 0},
	})
	return m
}

func pauliY() *Matrix {
	m, _ := FromRows([][]complex128{
		{0, -1i},
		{1i, 0},
	})
	return m
}

func pauliZ() *Matrix {
	m, _ := FromRows([][]complex128{
		{1, 0},
		{0, -1},
	})
	return m
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]complex128{
		{1, 2},
		{3, 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Dim())
	assert.Equal(t, complex128(3), m.At(1, 0))

	_, err = FromRows([][]complex128{{1, 2}, {3}})
	assert.Error(t, err, "ragged rows are rejected")
}

func TestEye(t *testing.T) {
	m := Eye(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			assert.Equal(t, want, m.At(i, j))
		}
	}

	assert.Equal(t, 0, Eye(0).Dim(), "Eye(0) is a valid empty matrix")
}

func TestMul(t *testing.T) {
	// X·X = I, X·Z = -iY.
	xx, err := pauliX().Mul(pauliX())
	require.NoError(t, err)
	assert.True(t, xx.EqualApprox(Eye(2), tol))

	xz, err := pauliX().Mul(pauliZ())
	require.NoError(t, err)
	assert.True(t, xz.EqualApprox(pauliY().Scale(-1i), tol))

	_, err = pauliX().Mul(Eye(4))
	assert.Error(t, err)
}

func TestConjTranspose(t *testing.T) {
	y := pauliY()
	assert.True(t, y.ConjTranspose().EqualApprox(y, tol), "Y is hermitian")

	m, _ := FromRows([][]complex128{
		{1, 2i},
		{3, 4},
	})
	ct := m.ConjTranspose()
	assert.Equal(t, complex128(1), ct.At(0, 0))
	assert.Equal(t, complex128(3), ct.At(0, 1))
	assert.Equal(t, complex128(-2i), ct.At(1, 0))
}

func TestKron(t *testing.T) {
	// Z ⊗ I = diag(1, 1, -1, -1).
	zi := pauliZ().Kron(Eye(2))
	want, _ := FromRows([][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, -1, 0},
		{0, 0, 0, -1},
	})
	assert.True(t, zi.EqualApprox(want, tol))

	// I ⊗ X swaps within each half.
	ix := Eye(2).Kron(pauliX())
	want2, _ := FromRows([][]complex128{
		{0, 1, 0, 0},
		{1, 0, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	})
	assert.True(t, ix.EqualApprox(want2, tol))
}

func TestBlockDiag(t *testing.T) {
	m := BlockDiag(Eye(2), pauliX())
	require.Equal(t, 4, m.Dim())
	assert.Equal(t, complex128(1), m.At(0, 0))
	assert.Equal(t, complex128(1), m.At(1, 1))
	assert.Equal(t, complex128(1), m.At(2, 3))
	assert.Equal(t, complex128(1), m.At(3, 2))
	assert.Equal(t, complex128(0), m.At(0, 2), "off-block entries stay zero")

	// Zero-sized blocks contribute nothing.
	m2 := BlockDiag(Eye(0), pauliX(), Eye(0))
	assert.True(t, m2.EqualApprox(pauliX(), tol))
}

func TestIsHermitian(t *testing.T) {
	assert.True(t, pauliX().IsHermitian(tol))
	assert.True(t, pauliY().IsHermitian(tol))

	m, _ := FromRows([][]complex128{
		{0, 1i},
		{1i, 0},
	})
	assert.False(t, m.IsHermitian(tol))
}

func TestExpandMatrix(t *testing.T) {
	x := pauliX()

	t.Run("identity order", func(t *testing.T) {
		got, err := ExpandMatrix(x, wires.New("0"), wires.New("0"))
		require.NoError(t, err)
		assert.True(t, got.EqualApprox(x, tol))
	})

	t.Run("pad with identity wire", func(t *testing.T) {
		// X on wire "1" over order ["0", "1"] is I ⊗ X.
		got, err := ExpandMatrix(x, wires.New("1"), wires.New("0", "1"))
		require.NoError(t, err)
		assert.True(t, got.EqualApprox(Eye(2).Kron(x), tol))

		// X on wire "0" over the same order is X ⊗ I.
		got, err = ExpandMatrix(x, wires.New("0"), wires.New("0", "1"))
		require.NoError(t, err)
		assert.True(t, got.EqualApprox(x.Kron(Eye(2)), tol))
	})

	t.Run("reorder wires", func(t *testing.T) {
		// CNOT with control "0", target "1".
		cnot, _ := FromRows([][]complex128{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
		})
		got, err := ExpandMatrix(cnot, wires.New("0", "1"), wires.New("1", "0"))
		require.NoError(t, err)

		// Reversed order: control is now the least significant bit.
		want, _ := FromRows([][]complex128{
			{1, 0, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
		})
		assert.True(t, got.EqualApprox(want, tol), "got:\n%s", got)
	})

	t.Run("missing active wire", func(t *testing.T) {
		_, err := ExpandMatrix(x, wires.New("0"), wires.New("1", "2"))
		assert.Error(t, err)
	})
}

func TestOuterProduct(t *testing.T) {
	// |1⟩⟨1| on one qubit.
	p := OuterProduct([]complex128{0, 1})
	assert.Equal(t, complex128(0), p.At(0, 0))
	assert.Equal(t, complex128(1), p.At(1, 1))

	// A complex vector: entries are v_i · conj(v_j).
	v := []complex128{1i, 1}
	p = OuterProduct(v)
	assert.Equal(t, complex128(1), p.At(0, 0))
	assert.Equal(t, complex128(1i), p.At(0, 1))
	assert.Equal(t, complex128(-1i), p.At(1, 0))
}

func TestRoundEigvals(t *testing.T) {
	got := RoundEigvals([]float64{0.123456789, -1.000000004}, 8)
	require.Len(t, got, 2)
	assert.InDelta(t, 0.12345679, got[0], 1e-12)
	assert.InDelta(t, -1.0, got[1], 1e-12)
}

func TestSparseSetGet(t *testing.T) {
	s := NewSparse(4)
	assert.Equal(t, FormatLIL, s.Fmt())
	assert.Equal(t, 0, s.NNZ())

	s.Set(1, 2, 3i)
	assert.Equal(t, complex128(3i), s.At(1, 2))
	assert.Equal(t, 1, s.NNZ())

	s.Set(1, 2, 0)
	assert.Equal(t, 0, s.NNZ(), "writing zero removes the entry")
}

func TestSparseEye(t *testing.T) {
	s := SparseEye(3)
	assert.Equal(t, 3, s.NNZ())
	assert.True(t, s.ToDense().EqualApprox(Eye(3), tol))
}

func TestSparseSetBlock(t *testing.T) {
	s := SparseEye(4)
	require.NoError(t, s.SetBlock(2, SparseFromDense(pauliX())))

	want := BlockDiag(Eye(2), pauliX())
	assert.True(t, s.ToDense().EqualApprox(want, tol))
	assert.Equal(t, 4, s.NNZ(), "old diagonal entries in the block range are cleared")

	assert.Error(t, s.SetBlock(3, SparseFromDense(pauliX())), "block past the end")
}

func TestSparseAsFormat(t *testing.T) {
	s := SparseFromDense(pauliX())

	csr, err := s.AsFormat(FormatCSR)
	require.NoError(t, err)
	assert.Equal(t, FormatCSR, csr.Fmt())
	assert.True(t, csr.ToDense().EqualApprox(pauliX(), tol))

	// The copy is independent.
	csr.Set(0, 0, 9)
	assert.Equal(t, complex128(0), s.At(0, 0))

	_, err = s.AsFormat(Format("bogus"))
	assert.Error(t, err)
}

func TestSparseCSRExport(t *testing.T) {
	s := NewSparse(3)
	s.Set(0, 2, 1)
	s.Set(0, 0, 2)
	s.Set(2, 1, 3)

	indptr, indices, values := s.CSR()
	assert.Equal(t, []int{0, 2, 2, 3}, indptr)
	assert.Equal(t, []int{0, 2, 1}, indices, "columns sorted within each row")
	assert.Equal(t, []complex128{2, 1, 3}, values)
}

func TestEigvalsHermitian(t *testing.T) {
	tests := []struct {
		name string
		m    *Matrix
		want []float64
	}{
		{"pauli X", pauliX(), []float64{-1, 1}},
		{"pauli Y", pauliY(), []float64{-1, 1}},
		{"pauli Z", pauliZ(), []float64{-1, 1}},
		{"identity", Eye(2), []float64{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EigvalsHermitian(tt.m)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestEigvalsHermitianComplexEntries(t *testing.T) {
	// H = [[2, 1-i], [1+i, 3]] has eigenvalues (5 ± sqrt(9))/2 = 1 and 4.
	m, _ := FromRows([][]complex128{
		{2, 1 - 1i},
		{1 + 1i, 3},
	})
	got, err := EigvalsHermitian(m)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 1.0, got[0], 1e-9)
	assert.InDelta(t, 4.0, got[1], 1e-9)
}

func TestEigvalsHermitianRejectsNonHermitian(t *testing.T) {
	m, _ := FromRows([][]complex128{
		{0, 1},
		{0, 0},
	})
	_, err := EigvalsHermitian(m)
	assert.Error(t, err)
}

func TestEigvalsHermitianSpectralSum(t *testing.T) {
	// Trace equals the eigenvalue sum.
	m, _ := FromRows([][]complex128{
		{1, 0.5i, 0},
		{-0.5i, 2, 0.25},
		{0, 0.25, -1},
	})
	got, err := EigvalsHermitian(m)
	require.NoError(t, err)

	sum := 0.0
	for _, v := range got {
		sum += v
	}
	assert.InDelta(t, 2.0, sum, 1e-9)
	assert.True(t, math.Abs(got[0]) > 0)
}
