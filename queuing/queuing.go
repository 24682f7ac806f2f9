// Copyright 2026 Spinor QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package queuing provides the public API for the recording context that
// captures operators as they are constructed.
//
// Example:
//
//	ctx := queuing.NewContext()
//	defer ctx.Close()
//	operator.NewHadamard("0")
//	ops := ctx.TopLevel()
package queuing

import (
	"github.com/spinor-ml/spinor/internal/queuing"
)

// Context is an ordered recording of items with ownership annotations.
type Context = queuing.Context

// Item is anything a Context can record.
type Item = queuing.Item

// Info holds the ownership annotations attached to a recorded item.
type Info = queuing.Info

// Category sorts recorded items into the lists a circuit recorder keeps.
type Category = queuing.Category

// Queue categories.
const (
	CategoryNone         = queuing.CategoryNone
	CategoryPrep         = queuing.CategoryPrep
	CategoryOps          = queuing.CategoryOps
	CategoryMeasurements = queuing.CategoryMeasurements
)

// NewContext creates a recording context and pushes it onto the active
// stack.
func NewContext() *Context { return queuing.NewContext() }

// Active returns the innermost recording context, or nil when none is
// open.
func Active() *Context { return queuing.Active() }
