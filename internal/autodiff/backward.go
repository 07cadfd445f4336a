package autodiff

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/born-ml/bdiff/internal/autodiff/ops"
	"github.com/born-ml/bdiff/internal/combinatorics"
)

// Derivatives returns every partial derivative of root up to the tape's default
// order. See Run.
func (t *Tape) Derivatives(root Var) (*Derivatives, error) {
	return t.Run(root, t.cfg.Order)
}

// Der returns one partial derivative of root at the tape's default order.
func (t *Tape) Der(root Var, partials ...Partial) (float64, error) {
	d, err := t.Derivatives(root)
	if err != nil {
		return 0, err
	}
	return d.Der(partials...)
}

// Run computes every mixed partial derivative of root up to total order, with
// respect to every input variable root depends on.
//
// Algorithm:
//  1. Scan the tape backwards from root, keeping the relevant entries and
//     assigning slots to live variables (see scan)
//  2. Seed the coefficient tensor with root itself: value, and derivative 1
//     with respect to root
//  3. Walk the relevant entries backwards, replacing each result by its
//     operands through the chain rule of the requested order
//  4. Compact the tensor down to the surviving inputs
//
// Results are cached per root and order until the tape is cleared, so calling Run
// twice returns the same Derivatives.
func (t *Tape) Run(root Var, order int) (*Derivatives, error) {
	if err := t.check(root); err != nil {
		return nil, fmt.Errorf("run: root %s: %w", root, err)
	}
	if order < 1 {
		return nil, fmt.Errorf("run: order %d: %w", order, ErrZeroOrder)
	}

	key := runKey{root: root.id, order: order}
	if d, ok := t.cache[key]; ok {
		return d, nil
	}

	p := t.scan(root)
	sw := newSweep(p, order)
	sw.seed(p.root, root.value)

	for i := range p.steps {
		st := &p.steps[i]
		if order == 1 {
			t.adjoint(sw, st)
		} else {
			t.expand(sw, st)
		}
		sw.live[st.res] = false
		sw.live[st.arg1] = true
		if st.arg2 >= 0 {
			sw.live[st.arg2] = true
		}
	}

	d := &Derivatives{
		tape:   t,
		gen:    t.gen,
		order:  order,
		inputs: p.inputs,
		coeff:  compact(sw.coeff, p.nslots, len(p.inputs), order),
	}
	t.cache[key] = d

	t.log.Debug("backward sweep",
		zap.Uint64("root", root.id),
		zap.Int("order", order),
		zap.Int("entries", len(t.ops)),
		zap.Int("relevant", len(p.steps)),
		zap.Int("slots", p.nslots),
		zap.Int("inputs", len(p.inputs)),
		zap.Int("coefficients", len(d.coeff)),
	)
	return d, nil
}

// adjoint propagates first-order coefficients through one entry. At order one the
// coefficient of slot s is stored at index s+1.
func (t *Tape) adjoint(sw *sweep, st *step) {
	c := sw.coeff
	rule := ops.Lookup(st.op)

	temp := c[st.res+1]
	c[st.res+1] = 0

	switch st.op {
	case ops.Add:
		c[st.arg1+1] += temp
		c[st.arg2+1] += temp
	case ops.Sub:
		c[st.arg1+1] += temp
		c[st.arg2+1] -= temp
	case ops.Mul:
		x1, x2 := t.vals[st.valPos], t.vals[st.valPos+1]
		c[st.arg1+1] += temp * x2
		c[st.arg2+1] += temp * x1
	default:
		x, p, y := capturedValues(rule, t.vals[st.valPos:])
		var buf [2]float64
		buf[0] = y
		rule.Derivs(x, p, buf[:])
		c[st.arg1+1] += temp * buf[1]
	}
}

// expand propagates coefficients of every order through one entry.
func (t *Tape) expand(sw *sweep, st *step) {
	switch st.op {
	case ops.Add:
		sw.sum(st, 1)
	case ops.Sub:
		sw.sum(st, -1)
	case ops.Mul:
		sw.product(st, t.vals[st.valPos], t.vals[st.valPos+1])
	default:
		rule := ops.Lookup(st.op)
		x, p, y := capturedValues(rule, t.vals[st.valPos:])
		buf := make([]float64, sw.order+1)
		buf[0] = y
		rule.Derivs(x, p, buf)
		sw.chain(st, combinatorics.Bell(buf, sw.order))
	}
}

// compact drops the slots that do not hold a surviving input. Inputs occupy slots
// 0..k-1, and every other slot is free at the end of the walk, so only entries with
// zero multiplicity in slots k.. are kept.
func compact(coeff []float64, nslots, k, order int) []float64 {
	if k == nslots {
		return coeff
	}
	if order == 1 {
		return coeff[:k+1 : k+1]
	}

	out := make([]float64, combinatorics.MultisetCoeff(k+1, order))
	idx := make([]int, nslots+1)
	g := combinatorics.NewMultisetGenerator(k+1, order)
	for i := 0; g.Next(); i++ {
		copy(idx, g.Current())
		out[i] = coeff[combinatorics.Rank(idx, order)]
	}
	return out
}
