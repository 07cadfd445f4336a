package autodiff

import (
	"fmt"
	"slices"

	"github.com/born-ml/bdiff/internal/combinatorics"
)

// Partial selects a variable and how many times to differentiate with respect to it.
type Partial struct {
	Var   Var
	Order int
}

// Wrt returns the partial selecting n derivatives with respect to v.
func Wrt(v Var, n int) Partial {
	return Partial{Var: v, Order: n}
}

// Derivatives holds every mixed partial derivative of a root up to a total order,
// with respect to the inputs the root depends on.
//
// Derivatives is read-only and safe for concurrent queries.
type Derivatives struct {
	tape   *Tape
	gen    uint64
	order  int
	inputs []uint64  // slot -> input id, ascending
	coeff  []float64 // indexed by combinatorics.Rank
}

// Entry is one stored partial derivative.
type Entry struct {
	Orders []int // per input, in Inputs order
	Value  float64
}

// Value returns the value of the root.
func (d *Derivatives) Value() float64 {
	return d.coeff[0]
}

// Order returns the total differentiation order.
func (d *Derivatives) Order() int {
	return d.order
}

// Inputs returns the ids of the inputs the root depends on, ascending.
func (d *Derivatives) Inputs() []uint64 {
	return slices.Clone(d.inputs)
}

// Len returns the number of stored coefficients.
func (d *Derivatives) Len() int {
	return len(d.coeff)
}

// D returns the mixed partial derivative with respect to each of vars once.
// Repeating a variable differentiates with respect to it again.
func (d *Derivatives) D(vars ...Var) (float64, error) {
	ps := make([]Partial, len(vars))
	for i, v := range vars {
		ps[i] = Partial{Var: v, Order: 1}
	}
	return d.Der(ps...)
}

// DN returns the n-th derivative with respect to v.
func (d *Derivatives) DN(v Var, n int) (float64, error) {
	return d.Der(Partial{Var: v, Order: n})
}

// Der returns the mixed partial derivative selected by partials. Orders of a
// variable listed more than once add up. With no partials it returns the value.
//
// The derivative with respect to a variable the root does not depend on is zero.
// A cumulative order above Order is rejected with ErrOrderExceeded.
func (d *Derivatives) Der(partials ...Partial) (float64, error) {
	ids := make([]uint64, len(partials))
	orders := make([]int, len(partials))
	for i, p := range partials {
		if err := d.check(p.Var); err != nil {
			return 0, fmt.Errorf("der: %s: %w", p.Var, err)
		}
		ids[i] = p.Var.id
		orders[i] = p.Order
	}
	return d.DerIDs(ids, orders)
}

// DerIDs is Der addressed by variable ids. ids and orders must have the same length.
func (d *Derivatives) DerIDs(ids []uint64, orders []int) (float64, error) {
	if d.gen != d.tape.gen {
		return 0, fmt.Errorf("der: derivatives of generation %d: %w", d.gen, ErrStaleVariable)
	}
	if len(ids) != len(orders) {
		return 0, &QueryError{Err: ErrMismatchedArguments, Got: len(ids), Want: len(orders)}
	}

	total := 0
	for _, n := range orders {
		if n < 0 {
			return 0, fmt.Errorf("der: negative order %d: %w", n, ErrInvalidQuery)
		}
		total += n
	}
	if total > d.order {
		return 0, &QueryError{Err: ErrOrderExceeded, Got: total, Want: d.order}
	}

	idx := make([]int, len(d.inputs)+1)
	for i, id := range ids {
		if orders[i] == 0 {
			continue
		}
		slot, ok := slices.BinarySearch(d.inputs, id)
		if !ok {
			return 0, nil
		}
		idx[1+slot] += orders[i]
	}
	idx[0] = d.order - total
	return d.coeff[combinatorics.Rank(idx, d.order)], nil
}

// Gradient returns the first partial derivatives in Inputs order.
func (d *Derivatives) Gradient() []float64 {
	grad := make([]float64, len(d.inputs))
	idx := make([]int, len(d.inputs)+1)
	idx[0] = d.order - 1
	for s := range grad {
		idx[1+s] = 1
		grad[s] = d.coeff[combinatorics.Rank(idx, d.order)]
		idx[1+s] = 0
	}
	return grad
}

// Each calls fn for every stored coefficient in storage order, starting with the
// value, until fn returns false. orders is reused between calls.
func (d *Derivatives) Each(fn func(orders []int, v float64) bool) {
	g := combinatorics.NewMultisetGenerator(len(d.inputs)+1, d.order)
	for i := 0; g.Next(); i++ {
		if !fn(g.Current()[1:], d.coeff[i]) {
			return
		}
	}
}

// Grid returns the partial derivatives for every tuple of per-input orders in
// [0, base), in odometer order with the first input turning fastest. Tuples whose
// total exceeds Order are skipped.
func (d *Derivatives) Grid(base int) []Entry {
	var out []Entry
	idx := make([]int, len(d.inputs)+1)
	g := combinatorics.NewCombinationGenerator(len(d.inputs), base)
	for g.Next() {
		orders := g.Current()
		total := 0
		for _, n := range orders {
			total += n
		}
		if total > d.order {
			continue
		}
		copy(idx[1:], orders)
		idx[0] = d.order - total
		out = append(out, Entry{
			Orders: slices.Clone(orders),
			Value:  d.coeff[combinatorics.Rank(idx, d.order)],
		})
	}
	return out
}

func (d *Derivatives) check(v Var) error {
	if v.tape != d.tape {
		return ErrForeignVariable
	}
	if v.gen != d.gen {
		return ErrStaleVariable
	}
	return nil
}
