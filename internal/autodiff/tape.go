package autodiff

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/born-ml/bdiff/internal/autodiff/ops"
)

// Var is a tracked scalar: a handle to a value recorded on a tape.
//
// Vars are immutable. Copies share id and value, which models the same variable
// observed twice. The zero Var belongs to no tape.
type Var struct {
	tape  *Tape
	id    uint64
	gen   uint64
	value float64
}

// Value returns the scalar value.
func (v Var) Value() float64 {
	return v.value
}

// ID returns the id of v, unique within its tape generation.
func (v Var) ID() uint64 {
	return v.id
}

// Tape returns the tape v was recorded on.
func (v Var) Tape() *Tape {
	return v.tape
}

// String formats v as "v<id>=<value>".
func (v Var) String() string {
	return fmt.Sprintf("v%d=%g", v.id, v.value)
}

// Tape records scalar operations for reverse-mode differentiation.
//
// Each entry appends its operation code to ops, its operand ids followed by its
// result id to ids, and the values its derivative rule needs to vals (see
// ops.Rule.Captures). Result ids strictly increase with entry position.
type Tape struct {
	cfg Config
	log *zap.Logger

	ops  []ops.Op
	ids  []uint64
	vals []float64

	next uint64 // next id to assign
	gen  uint64 // incremented by Clear

	cache map[runKey]*Derivatives
}

type runKey struct {
	root  uint64
	order int
}

// New creates an empty tape.
// A zero Order defaults to DefaultOrder and a nil Logger disables logging.
func New(cfg Config) *Tape {
	if cfg.Order == 0 {
		cfg.Order = DefaultOrder
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Tape{
		cfg:   cfg,
		log:   cfg.Logger,
		ops:   make([]ops.Op, 0, 64),
		ids:   make([]uint64, 0, 192),
		vals:  make([]float64, 0, 128),
		cache: make(map[runKey]*Derivatives),
	}
}

// Var creates an input variable. Nothing is appended to the tape.
func (t *Tape) Var(x float64) Var {
	return t.newVar(x)
}

// Vars creates one input variable per value.
func (t *Tape) Vars(xs ...float64) []Var {
	vs := make([]Var, len(xs))
	for i, x := range xs {
		vs[i] = t.newVar(x)
	}
	return vs
}

// Clear empties the tape and resets the id counter. Vars and Derivatives created
// before Clear become stale: they can no longer be recorded, run or queried.
func (t *Tape) Clear() {
	t.ops = t.ops[:0]
	t.ids = t.ids[:0]
	t.vals = t.vals[:0]
	t.next = 0
	t.gen++
	clear(t.cache)
}

// SetOrder sets the default differentiation order used by Derivatives and Der.
func (t *Tape) SetOrder(order int) {
	t.cfg.Order = order
}

// Order returns the default differentiation order.
func (t *Tape) Order() int {
	return t.cfg.Order
}

// Len returns the number of recorded entries.
func (t *Tape) Len() int {
	return len(t.ops)
}

// Generation returns the number of times the tape has been cleared.
func (t *Tape) Generation() uint64 {
	return t.gen
}

func (t *Tape) newVar(x float64) Var {
	v := Var{tape: t, id: t.next, gen: t.gen, value: x}
	t.next++
	return v
}

// check reports whether v can be used with this tape.
func (t *Tape) check(v Var) error {
	if v.tape != t {
		return ErrForeignVariable
	}
	if v.gen != t.gen {
		return ErrStaleVariable
	}
	return nil
}

// own panics if v cannot be recorded on this tape.
func (t *Tape) own(v Var) {
	if err := t.check(v); err != nil {
		panic(fmt.Sprintf("autodiff: %v: %s", err, v))
	}
}

// recordUnary appends a unary entry whose result is computed by the rule.
func (t *Tape) recordUnary(op ops.Op, a Var, p float64) Var {
	return t.recordUnaryValue(op, a, p, ops.Lookup(op).Eval(a.value, p))
}

// recordUnaryValue appends a unary entry with a precomputed result.
func (t *Tape) recordUnaryValue(op ops.Op, a Var, p, y float64) Var {
	t.own(a)
	rule := ops.Lookup(op)
	res := t.newVar(y)

	t.ops = append(t.ops, op)
	t.ids = append(t.ids, a.id, res.id)
	if rule.Input {
		t.vals = append(t.vals, a.value)
	}
	if rule.Param {
		t.vals = append(t.vals, p)
	}
	t.vals = append(t.vals, y)
	return res
}

// recordBinary appends a binary entry. The operands must have distinct ids.
func (t *Tape) recordBinary(op ops.Op, a, b Var, y float64) Var {
	t.own(a)
	t.own(b)
	res := t.newVar(y)

	t.ops = append(t.ops, op)
	t.ids = append(t.ids, a.id, b.id, res.id)
	if ops.Lookup(op).Input {
		t.vals = append(t.vals, a.value, b.value)
	}
	return res
}

// capturedValues decodes the captured values of one unary entry. The input is NaN
// when the rule does not capture it.
func capturedValues(rule *ops.Rule, vals []float64) (x, p, y float64) {
	x = nan
	i := 0
	if rule.Input {
		x = vals[i]
		i++
	}
	if rule.Param {
		p = vals[i]
		i++
	}
	return x, p, vals[i]
}
