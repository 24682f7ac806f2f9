// Copyright 2026 Spinor QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package controlled provides the public API for the symbolic
// controlled-operator construction.
//
// Given a base operator, New builds an operator applying the base
// conditioned on control wires taking specified binary values, preserving
// the base operator's capability set, differentiability and matrix
// semantics.
//
// Example:
//
//	base := operator.NewPauliX("1")
//	op, err := controlled.New(base, operator.NewWires("0"))
//	m, err := op.Matrix(nil)  // the CNOT matrix
package controlled

import (
	"github.com/rs/zerolog"

	"github.com/spinor-ml/spinor/internal/controlled"
	"github.com/spinor-ml/spinor/internal/operator"
	"github.com/spinor-ml/spinor/internal/queuing"
	"github.com/spinor-ml/spinor/internal/wires"
)

// Controlled is the capability-independent controlled-operator engine; it
// is also the variant used when the base has neither the Operation nor the
// Observable capability.
type Controlled = controlled.Controlled

// ControlledOperation is the variant for bases with the Operation
// capability.
type ControlledOperation = controlled.ControlledOperation

// ControlledObservable is the variant for bases with the Observable
// capability.
type ControlledObservable = controlled.ControlledObservable

// ControlledOperationObservable is the variant for bases with both
// capabilities.
type ControlledOperationObservable = controlled.ControlledOperationObservable

// Option configures construction of a controlled operator.
type Option = controlled.Option

// New constructs a controlled version of base conditioned on the given
// control wires.
func New(base operator.Operator, controlWires wires.Wires, opts ...Option) (operator.Operator, error) {
	return controlled.New(base, controlWires, opts...)
}

// WithControlValues sets the triggering value per control wire.
func WithControlValues(values []bool) Option { return controlled.WithControlValues(values) }

// WithControlValueString sets control values from a string of "0"/"1"
// runes.
//
// Deprecated: use WithControlValues.
func WithControlValueString(s string) Option { return controlled.WithControlValueString(s) }

// WithWorkWires sets auxiliary wires a decomposition may use.
func WithWorkWires(w wires.Wires) Option { return controlled.WithWorkWires(w) }

// WithID attaches a custom identifier.
func WithID(id string) Option { return controlled.WithID(id) }

// WithoutQueuing suppresses recording on the active queuing context.
func WithoutQueuing() Option { return controlled.WithoutQueuing() }

// WithQueue records the operator on the given context instead of the
// active one.
func WithQueue(ctx *queuing.Context) Option { return controlled.WithQueue(ctx) }

// SetLogger replaces the logger used for construction diagnostics.
func SetLogger(l zerolog.Logger) { controlled.SetLogger(l) }
