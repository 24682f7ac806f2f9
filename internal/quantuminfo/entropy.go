// Package quantuminfo provides quantum information measures over state
// vectors and density matrices.
package quantuminfo

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/spinor-ml/spinor/internal/qmath"
)

// DensityMatrix forms |ψ⟩⟨ψ| from a state vector. With checkState set,
// the vector is validated to have unit norm and a power-of-two dimension.
func DensityMatrix(state []complex128, checkState bool) (*qmath.Matrix, error) {
	if len(state) == 0 {
		return nil, fmt.Errorf("state vector is empty")
	}
	if checkState {
		if len(state)&(len(state)-1) != 0 {
			return nil, fmt.Errorf("state vector dimension %d is not a power of two", len(state))
		}
		norm := 0.0
		for _, a := range state {
			norm += real(a * cmplx.Conj(a))
		}
		if math.Abs(norm-1) > 1e-9 {
			return nil, fmt.Errorf("state vector is not normalized (norm² = %g)", norm)
		}
	}
	return qmath.OuterProduct(state), nil
}

// VonNeumannEntropy computes S(ρ) = -Tr(ρ log ρ) of a density matrix.
// base selects the logarithm base; zero means the natural logarithm.
func VonNeumannEntropy(dm *qmath.Matrix, base float64) (float64, error) {
	divBase := 1.0
	if base != 0 {
		if base <= 0 || base == 1 {
			return 0, fmt.Errorf("invalid logarithm base %g", base)
		}
		divBase = math.Log(base)
	}

	eigvals, err := qmath.EigvalsHermitian(dm)
	if err != nil {
		return 0, err
	}

	entropy := 0.0
	for _, ev := range eigvals {
		// Numerical noise can push eigenvalues of a positive
		// semidefinite matrix slightly negative; those terms carry no
		// entropy.
		if ev <= 0 {
			continue
		}
		entropy -= ev * math.Log(ev) / divBase
	}
	return entropy, nil
}

// VonNeumannEntropyFromState densifies a state vector and computes its
// Von Neumann entropy. A pure state always yields zero.
func VonNeumannEntropyFromState(state []complex128, base float64, checkState bool) (float64, error) {
	dm, err := DensityMatrix(state, checkState)
	if err != nil {
		return 0, err
	}
	return VonNeumannEntropy(dm, base)
}
