// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides arbitrary-order automatic differentiation of scalar
// functions.
//
// Operations on tracked scalars are recorded on a tape. A backward sweep then
// computes every mixed partial derivative of a root scalar, up to a chosen total
// order, with respect to every input that influenced it.
//
// Example:
//
//	import "github.com/born-ml/bdiff/autodiff"
//
//	func main() {
//	    tape := autodiff.New(autodiff.DefaultConfig())
//	    x1 := tape.Var(1.5)
//	    x2 := tape.Var(0.5)
//	    y := tape.Sin(tape.Mul(x1, x2))
//
//	    d, err := tape.Run(y, 3)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    dxy, _ := d.D(x1, x2)                // ∂²y/∂x1∂x2
//	    d3, _ := d.DN(x1, 3)                 // ∂³y/∂x1³
//	    grad := d.Gradient()                 // [∂y/∂x1, ∂y/∂x2]
//	}
package autodiff

import (
	"github.com/born-ml/bdiff/internal/autodiff"
	"github.com/born-ml/bdiff/internal/autodiff/ops"
)

// Tape records scalar operations for reverse-mode differentiation.
type Tape = autodiff.Tape

// Var is a tracked scalar recorded on a Tape.
type Var = autodiff.Var

// Derivatives holds every partial derivative of a root up to a total order.
type Derivatives = autodiff.Derivatives

// Partial selects a variable and a differentiation order.
type Partial = autodiff.Partial

// Entry is one stored partial derivative.
type Entry = autodiff.Entry

// Config controls a tape.
type Config = autodiff.Config

// QueryError describes a rejected derivative query.
type QueryError = autodiff.QueryError

// Op identifies a recordable operation.
type Op = ops.Op

// Errors.
var (
	ErrZeroOrder           = autodiff.ErrZeroOrder
	ErrOrderExceeded       = autodiff.ErrOrderExceeded
	ErrMismatchedArguments = autodiff.ErrMismatchedArguments
	ErrStaleVariable       = autodiff.ErrStaleVariable
	ErrForeignVariable     = autodiff.ErrForeignVariable
	ErrInvalidQuery        = autodiff.ErrInvalidQuery
)

// New creates an empty tape.
func New(cfg Config) *Tape {
	return autodiff.New(cfg)
}

// DefaultConfig returns a first-order configuration without logging.
func DefaultConfig() Config {
	return autodiff.DefaultConfig()
}

// Wrt returns the partial selecting n derivatives with respect to v.
func Wrt(v Var, n int) Partial {
	return autodiff.Wrt(v, n)
}

// ParseFunction returns the elementary function with the given name, such as
// "sin" or "lgamma".
func ParseFunction(name string) (Op, bool) {
	op, ok := ops.Parse(name)
	if !ok {
		return op, false
	}
	for _, fn := range ops.Functions() {
		if fn == op {
			return op, true
		}
	}
	return ops.Invalid, false
}

// Functions returns every elementary function of one variable that Tape.Apply
// accepts.
func Functions() []Op {
	return ops.Functions()
}

// Taylor returns f(x), f'(x), ..., f^(n)(x) for the elementary function op.
func Taylor(op Op, x float64, n int) []float64 {
	return ops.Taylor(op, x, 0, n)
}

// Compose returns the derivatives of f(g(x)) given the derivatives of g at x and
// of f at g(x), both up to the same order.
func Compose(outer, inner []float64) []float64 {
	return ops.Compose(outer, inner)
}
