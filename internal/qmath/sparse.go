package qmath

import (
	"fmt"
	"sort"
)

// Format identifies a sparse storage format.
type Format string

// Supported sparse formats.
const (
	FormatLIL Format = "lil"
	FormatCSR Format = "csr"
	FormatCSC Format = "csc"
	FormatCOO Format = "coo"
)

// Sparse is a square sparse complex matrix. Entries are maintained in a
// row-indexed (list-of-lists style) map, which makes block overwrites
// cheap; compressed exports are computed on demand. The format tag records
// the representation requested by the caller.
type Sparse struct {
	n      int
	format Format
	rows   []map[int]complex128
}

// NewSparse allocates an n×n empty sparse matrix in LIL format.
func NewSparse(n int) *Sparse {
	rows := make([]map[int]complex128, n)
	return &Sparse{n: n, format: FormatLIL, rows: rows}
}

// SparseEye returns the n×n sparse identity.
func SparseEye(n int) *Sparse {
	s := NewSparse(n)
	for i := 0; i < n; i++ {
		s.Set(i, i, 1)
	}
	return s
}

// SparseFromDense converts a dense matrix, dropping exact zeros.
func SparseFromDense(m *Matrix) *Sparse {
	s := NewSparse(m.Dim())
	for i := 0; i < m.Dim(); i++ {
		for j := 0; j < m.Dim(); j++ {
			if v := m.At(i, j); v != 0 {
				s.Set(i, j, v)
			}
		}
	}
	return s
}

// Dim returns the matrix dimension.
func (s *Sparse) Dim() int { return s.n }

// Fmt returns the format tag.
func (s *Sparse) Fmt() Format { return s.format }

// At returns the entry at (i, j).
func (s *Sparse) At(i, j int) complex128 {
	if s.rows[i] == nil {
		return 0
	}
	return s.rows[i][j]
}

// Set writes the entry at (i, j). Writing zero removes the entry.
func (s *Sparse) Set(i, j int, v complex128) {
	if s.rows[i] == nil {
		if v == 0 {
			return
		}
		s.rows[i] = make(map[int]complex128)
	}
	if v == 0 {
		delete(s.rows[i], j)
		return
	}
	s.rows[i][j] = v
}

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int {
	n := 0
	for _, r := range s.rows {
		n += len(r)
	}
	return n
}

// SetBlock overwrites the diagonal sub-block starting at (start, start)
// with the given sparse block, clearing any previous entries in that range.
func (s *Sparse) SetBlock(start int, block *Sparse) error {
	if start < 0 || start+block.n > s.n {
		return fmt.Errorf("block [%d, %d) exceeds matrix dimension %d", start, start+block.n, s.n)
	}
	for i := 0; i < block.n; i++ {
		row := s.rows[start+i]
		for j := range row {
			if j >= start && j < start+block.n {
				delete(row, j)
			}
		}
		for j, v := range block.rows[i] {
			s.Set(start+i, start+j, v)
		}
	}
	return nil
}

// AsFormat returns the matrix tagged with the requested format. The entry
// set is shared semantics-wise but independently stored, so mutating the
// result does not affect the receiver.
func (s *Sparse) AsFormat(f Format) (*Sparse, error) {
	switch f {
	case FormatLIL, FormatCSR, FormatCSC, FormatCOO:
	default:
		return nil, fmt.Errorf("unknown sparse format %q", f)
	}
	out := NewSparse(s.n)
	out.format = f
	for i, row := range s.rows {
		for j, v := range row {
			out.Set(i, j, v)
		}
	}
	return out, nil
}

// CSR exports compressed sparse row arrays (indptr, column indices, values)
// with column indices sorted within each row.
func (s *Sparse) CSR() (indptr, indices []int, values []complex128) {
	indptr = make([]int, s.n+1)
	for i, row := range s.rows {
		cols := make([]int, 0, len(row))
		for j := range row {
			cols = append(cols, j)
		}
		sort.Ints(cols)
		for _, j := range cols {
			indices = append(indices, j)
			values = append(values, row[j])
		}
		indptr[i+1] = len(indices)
	}
	return indptr, indices, values
}

// ToDense materializes the matrix densely.
func (s *Sparse) ToDense() *Matrix {
	m := NewMatrix(s.n)
	for i, row := range s.rows {
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return m
}
