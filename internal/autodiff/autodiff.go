// Package autodiff implements arbitrary-order reverse-mode automatic differentiation
// of scalar computations.
//
// A Tape is an arena: every tracked scalar (Var) is a handle into it, and every
// operation on tracked scalars appends one entry to three parallel logs (operation
// codes, ids, captured values). A backward sweep over the tape then computes every
// mixed partial derivative of a root scalar up to a chosen total order, with respect
// to every input that influenced it.
//
// Architecture:
//   - Tape: append-only log, ids assigned sequentially (single static assignment)
//   - ops.Rule: data-driven table of evaluation and derivative recurrences
//   - Relevance scan: reverse walk that prunes entries the root does not depend on
//     and assigns dense slots to live variables
//   - Propagation: reverse walk that expands each entry into the symmetric
//     coefficient tensor (Faà di Bruno for unary operations, binomial expansions for
//     sums and products)
//   - Derivatives: compacted tensor addressed by multiset rank
//
// Usage:
//
//	tape := autodiff.New(autodiff.DefaultConfig())
//	x1 := tape.Var(1.5)
//	x2 := tape.Var(0.5)
//	y := tape.Div(x1, x2)
//
//	d, err := tape.Run(y, 2)
//	if err != nil {
//		return err
//	}
//	dx1, _ := d.D(x1)                                          // 2
//	dx1dx2, _ := d.Der(autodiff.Wrt(x1, 1), autodiff.Wrt(x2, 1)) // -4
//
// A Tape is not safe for concurrent use. Independent problems should use
// independent tapes, which may run in parallel.
package autodiff

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultOrder is the differentiation order used when none is configured.
const DefaultOrder = 1

// Config controls a tape.
type Config struct {
	// Order is the default differentiation order for Derivatives and Der.
	// Run accepts an explicit order instead.
	Order int

	// Logger receives sweep statistics at debug level. Nil means no logging.
	Logger *zap.Logger
}

// DefaultConfig returns a first-order configuration without logging.
func DefaultConfig() Config {
	return Config{
		Order:  DefaultOrder,
		Logger: zap.NewNop(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Order < 1 {
		return fmt.Errorf("invalid config: order %d: %w", c.Order, ErrZeroOrder)
	}
	return nil
}
