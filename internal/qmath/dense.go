// Package qmath implements the complex linear algebra used by the operator
// layer: dense complex128 matrices, sparse complex matrices, and hermitian
// eigenvalue solves.
//
// Dense matrices are square and stored flat in row-major order. Wire-indexed
// constructions follow the big-endian convention: the first wire of a
// sequence maps to the most significant bit of a basis-state index.
package qmath

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/spinor-ml/spinor/internal/wires"
)

// Matrix is a square complex matrix stored flat in row-major order.
type Matrix struct {
	n    int
	data []complex128
}

// NewMatrix allocates an n×n zero matrix.
func NewMatrix(n int) *Matrix {
	return &Matrix{n: n, data: make([]complex128, n*n)}
}

// FromRows builds a matrix from row slices. All rows must have the same
// length as the number of rows.
func FromRows(rows [][]complex128) (*Matrix, error) {
	n := len(rows)
	m := NewMatrix(n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d entries, want %d", i, len(row), n)
		}
		copy(m.data[i*n:(i+1)*n], row)
	}
	return m, nil
}

// Eye returns the n×n identity. Eye(0) is a valid empty matrix.
func Eye(n int) *Matrix {
	m := NewMatrix(n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Dim returns the matrix dimension.
func (m *Matrix) Dim() int { return m.n }

// At returns the entry at (i, j).
func (m *Matrix) At(i, j int) complex128 { return m.data[i*m.n+j] }

// Set writes the entry at (i, j).
func (m *Matrix) Set(i, j int, v complex128) { m.data[i*m.n+j] = v }

// Data exposes the flat row-major storage.
func (m *Matrix) Data() []complex128 { return m.data }

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := NewMatrix(m.n)
	copy(out.data, m.data)
	return out
}

// Mul returns the matrix product m·other.
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if m.n != other.n {
		return nil, fmt.Errorf("dimension mismatch: %d vs %d", m.n, other.n)
	}
	out := NewMatrix(m.n)
	for i := 0; i < m.n; i++ {
		for k := 0; k < m.n; k++ {
			a := m.data[i*m.n+k]
			if a == 0 {
				continue
			}
			for j := 0; j < m.n; j++ {
				out.data[i*m.n+j] += a * other.data[k*m.n+j]
			}
		}
	}
	return out, nil
}

// Scale returns s·m.
func (m *Matrix) Scale(s complex128) *Matrix {
	out := NewMatrix(m.n)
	for i, v := range m.data {
		out.data[i] = s * v
	}
	return out
}

// Add returns m + other.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if m.n != other.n {
		return nil, fmt.Errorf("dimension mismatch: %d vs %d", m.n, other.n)
	}
	out := NewMatrix(m.n)
	for i := range m.data {
		out.data[i] = m.data[i] + other.data[i]
	}
	return out, nil
}

// ConjTranspose returns the conjugate transpose.
func (m *Matrix) ConjTranspose() *Matrix {
	out := NewMatrix(m.n)
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			out.data[j*m.n+i] = cmplx.Conj(m.data[i*m.n+j])
		}
	}
	return out
}

// Kron returns the Kronecker product m ⊗ other.
func (m *Matrix) Kron(other *Matrix) *Matrix {
	p := other.n
	out := NewMatrix(m.n * p)
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			a := m.data[i*m.n+j]
			if a == 0 {
				continue
			}
			for k := 0; k < p; k++ {
				for l := 0; l < p; l++ {
					out.Set(i*p+k, j*p+l, a*other.data[k*p+l])
				}
			}
		}
	}
	return out
}

// BlockDiag concatenates the given blocks along the diagonal. Zero-sized
// blocks are allowed and contribute nothing.
func BlockDiag(blocks ...*Matrix) *Matrix {
	total := 0
	for _, b := range blocks {
		total += b.n
	}
	out := NewMatrix(total)
	offset := 0
	for _, b := range blocks {
		for i := 0; i < b.n; i++ {
			for j := 0; j < b.n; j++ {
				out.Set(offset+i, offset+j, b.data[i*b.n+j])
			}
		}
		offset += b.n
	}
	return out
}

// IsHermitian reports whether m equals its conjugate transpose within tol.
func (m *Matrix) IsHermitian(tol float64) bool {
	for i := 0; i < m.n; i++ {
		for j := i; j < m.n; j++ {
			if cmplx.Abs(m.data[i*m.n+j]-cmplx.Conj(m.data[j*m.n+i])) > tol {
				return false
			}
		}
	}
	return true
}

// EqualApprox reports whether both matrices agree entrywise within tol.
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	if m.n != other.n {
		return false
	}
	for i := range m.data {
		if cmplx.Abs(m.data[i]-other.data[i]) > tol {
			return false
		}
	}
	return true
}

// String renders the matrix row by row, mostly for test failure output.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			fmt.Fprintf(&sb, "%6.3f%+6.3fi ", real(m.At(i, j)), imag(m.At(i, j)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ExpandMatrix re-expresses a matrix defined on the active wires over a
// larger (or reordered) wire sequence. Wires in wireOrder that are not
// active participate as identity dimensions. The first wire of a sequence
// is the most significant bit of a basis-state index.
func ExpandMatrix(m *Matrix, active, wireOrder wires.Wires) (*Matrix, error) {
	if m.n != 1<<active.Len() {
		return nil, fmt.Errorf("matrix dimension %d does not match %d active wires", m.n, active.Len())
	}
	for _, w := range active {
		if !wireOrder.Contains(w) {
			return nil, fmt.Errorf("wire order %s does not contain active wire %q", wireOrder, w)
		}
	}
	if err := wireOrder.Validate(); err != nil {
		return nil, err
	}

	nTotal := wireOrder.Len()
	dim := 1 << nTotal

	// For each full basis index, the sub-index over active wires and the
	// residual bits over the remaining wires.
	subIndex := func(idx int) (sub int, rest int) {
		for p, w := range wireOrder {
			bit := (idx >> (nTotal - 1 - p)) & 1
			if k := active.Index(w); k >= 0 {
				sub |= bit << (active.Len() - 1 - k)
			} else {
				rest = rest<<1 | bit
			}
		}
		return sub, rest
	}

	out := NewMatrix(dim)
	for i := 0; i < dim; i++ {
		si, ri := subIndex(i)
		for j := 0; j < dim; j++ {
			sj, rj := subIndex(j)
			if ri != rj {
				continue
			}
			out.Set(i, j, m.At(si, sj))
		}
	}
	return out, nil
}

// OuterProduct returns |v⟩⟨v| for a state vector v.
func OuterProduct(v []complex128) *Matrix {
	n := len(v)
	out := NewMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, v[i]*cmplx.Conj(v[j]))
		}
	}
	return out
}

// RoundEigvals rounds float eigenvalues to the given number of decimals.
func RoundEigvals(vals []float64, decimals int) []float64 {
	scale := math.Pow(10, float64(decimals))
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = math.Round(v*scale) / scale
	}
	return out
}
