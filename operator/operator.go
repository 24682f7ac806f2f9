// Copyright 2026 Spinor QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package operator provides the public API for quantum operators in the
// Spinor QML framework.
//
// The package re-exports the operator abstraction and the built-in gate
// library:
//   - Operator: the generic operator surface (wires, parameters, matrix,
//     eigenvalues, decomposition, generator, adjoint, powers)
//   - Operation, Observable: optional capability interfaces
//   - PauliX/Y/Z, Hadamard, RX/RY/RZ, PhaseShift, Projector, Hermitian
//
// Example:
//
//	x := operator.NewPauliX("0")
//	m, err := x.Matrix(nil)  // [[0 1] [1 0]]
package operator

import (
	"github.com/spinor-ml/spinor/internal/operator"
	"github.com/spinor-ml/spinor/internal/qmath"
	"github.com/spinor-ml/spinor/internal/wires"
)

// Wires is an ordered sequence of wire labels.
type Wires = wires.Wires

// NewWires builds a wire sequence from string labels.
func NewWires(labels ...string) Wires { return wires.New(labels...) }

// WireInts builds a wire sequence from integer labels.
func WireInts(labels ...int) Wires { return wires.Ints(labels...) }

// Matrix is a square dense complex matrix.
type Matrix = qmath.Matrix

// Sparse is a square sparse complex matrix.
type Sparse = qmath.Sparse

// Format identifies a sparse storage format.
type Format = qmath.Format

// Sparse storage formats.
const (
	FormatLIL = qmath.FormatLIL
	FormatCSR = qmath.FormatCSR
	FormatCSC = qmath.FormatCSC
	FormatCOO = qmath.FormatCOO
)

// Operator is the generic quantum operator surface.
type Operator = operator.Operator

// Operation is the capability set of gates applicable in a circuit.
type Operation = operator.Operation

// Observable is the capability set of measurable operators.
type Observable = operator.Observable

// SparseMatrixer is implemented by operators with a sparse representation.
type SparseMatrixer = operator.SparseMatrixer

// Sentinel errors; match with errors.Is.
var (
	ErrValidation                    = operator.ErrValidation
	ErrMatrixUndefined               = operator.ErrMatrixUndefined
	ErrSparseMatrixUndefined         = operator.ErrSparseMatrixUndefined
	ErrEigvalsUndefined              = operator.ErrEigvalsUndefined
	ErrDiagonalizingGatesUndefined   = operator.ErrDiagonalizingGatesUndefined
	ErrGeneratorUndefined            = operator.ErrGeneratorUndefined
	ErrParameterFrequenciesUndefined = operator.ErrParameterFrequenciesUndefined
	ErrDecompositionUndefined        = operator.ErrDecompositionUndefined
	ErrAdjointUndefined              = operator.ErrAdjointUndefined
	ErrPowUndefined                  = operator.ErrPowUndefined
	ErrWireOrderUnsupported          = operator.ErrWireOrderUnsupported
)

// Gate constructors.

// NewPauliX creates a PauliX gate on the given wire.
func NewPauliX(wire string) *operator.PauliX { return operator.NewPauliX(wire) }

// NewPauliY creates a PauliY gate on the given wire.
func NewPauliY(wire string) *operator.PauliY { return operator.NewPauliY(wire) }

// NewPauliZ creates a PauliZ gate on the given wire.
func NewPauliZ(wire string) *operator.PauliZ { return operator.NewPauliZ(wire) }

// NewHadamard creates a Hadamard gate on the given wire.
func NewHadamard(wire string) *operator.Hadamard { return operator.NewHadamard(wire) }

// NewRX creates an X rotation with the given angle.
func NewRX(theta float64, wire string) *operator.RX { return operator.NewRX(theta, wire) }

// NewRY creates a Y rotation with the given angle.
func NewRY(theta float64, wire string) *operator.RY { return operator.NewRY(theta, wire) }

// NewRZ creates a Z rotation with the given angle.
func NewRZ(theta float64, wire string) *operator.RZ { return operator.NewRZ(theta, wire) }

// NewPhaseShift creates a phase gate with the given angle.
func NewPhaseShift(phi float64, wire string) *operator.PhaseShift {
	return operator.NewPhaseShift(phi, wire)
}

// NewProjector creates a projector onto a computational basis state.
func NewProjector(state []int, w Wires) (*operator.Projector, error) {
	return operator.NewProjector(state, w)
}

// NewHermitian creates an observable from an explicit hermitian matrix.
func NewHermitian(m *Matrix, w Wires) (*operator.Hermitian, error) {
	return operator.NewHermitian(m, w)
}

// NewScaled creates the scalar multiple of an operator.
func NewScaled(coeff float64, base Operator) *operator.Scaled {
	return operator.NewScaled(coeff, base)
}

// NewProd creates a tensor product of operators on disjoint wires.
func NewProd(factors ...Operator) (*operator.Prod, error) {
	return operator.NewProd(factors...)
}
