package qmath

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// EigvalsHermitian computes the real eigenvalues of a hermitian complex
// matrix, sorted in ascending order.
//
// gonum's symmetric eigensolver only handles real matrices, so H = A + iB
// is embedded as the real symmetric matrix [[A, -B], [B, A]], whose
// spectrum is that of H with every eigenvalue doubled. Adjacent pairs of
// the sorted embedded spectrum are averaged back into single eigenvalues.
func EigvalsHermitian(m *Matrix) ([]float64, error) {
	const tol = 1e-10
	if !m.IsHermitian(tol) {
		return nil, fmt.Errorf("matrix of dimension %d is not hermitian", m.Dim())
	}

	n := m.Dim()
	if n == 0 {
		return nil, nil
	}

	embedded := mat.NewSymDense(2*n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a := real(m.At(i, j))
			b := imag(m.At(i, j))
			embedded.SetSym(i, j, a)
			embedded.SetSym(n+i, n+j, a)
			// Top-right block is -B. SetSym mirrors (i, n+j) onto
			// (n+j, i), which is the bottom-left B block entry B[j][i],
			// consistent because B is antisymmetric for hermitian H.
			embedded.SetSym(i, n+j, -b)
			if i != j {
				embedded.SetSym(j, n+i, b)
			}
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(embedded, false); !ok {
		return nil, fmt.Errorf("eigendecomposition failed for dimension %d", n)
	}

	doubled := es.Values(nil) // ascending
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = (doubled[2*i] + doubled[2*i+1]) / 2
	}
	return vals, nil
}
