// Copyright 2026 Spinor QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package quantuminfo provides the public API for quantum information
// measures.
//
// Example:
//
//	s, err := quantuminfo.VonNeumannEntropyFromState(state, 2, true)
package quantuminfo

import (
	"github.com/spinor-ml/spinor/internal/qmath"
	"github.com/spinor-ml/spinor/internal/quantuminfo"
)

// DensityMatrix forms |ψ⟩⟨ψ| from a state vector.
func DensityMatrix(state []complex128, checkState bool) (*qmath.Matrix, error) {
	return quantuminfo.DensityMatrix(state, checkState)
}

// VonNeumannEntropy computes S(ρ) = -Tr(ρ log ρ) of a density matrix.
// base selects the logarithm base; zero means the natural logarithm.
func VonNeumannEntropy(dm *qmath.Matrix, base float64) (float64, error) {
	return quantuminfo.VonNeumannEntropy(dm, base)
}

// VonNeumannEntropyFromState densifies a state vector and computes its
// Von Neumann entropy.
func VonNeumannEntropyFromState(state []complex128, base float64, checkState bool) (float64, error) {
	return quantuminfo.VonNeumannEntropyFromState(state, base, checkState)
}
