package autodiff

import (
	"math"
	"slices"

	"github.com/born-ml/bdiff/internal/autodiff/ops"
)

var nan = math.NaN()

// step is one relevant tape entry, in reverse tape order, with the slots assigned
// to its result and operands.
type step struct {
	op     ops.Op
	valPos int // offset of the entry's captured values

	res  int
	arg1 int
	arg2 int // -1 for unary entries

	// Whether each operand was already live (used by an entry recorded later)
	// when the reverse walk reached this entry.
	live1 bool
	live2 bool
}

// plan is the result of the relevance scan.
type plan struct {
	steps  []step
	nslots int      // peak number of simultaneously live variables
	inputs []uint64 // ids that survive the walk, ascending
	root   int      // slot of the root
}

// scan walks the tape backwards from root, keeping the entries the root depends on.
//
// Live variables occupy dense slots taken from a free stack: the result slot of an
// entry is released before its operands are allocated, so an operand seen for the
// first time reuses the result slot. Once the walk is over, slots are renumbered so
// that the surviving inputs occupy slots 0..k-1 in ascending id order.
func (t *Tape) scan(root Var) *plan {
	live := map[uint64]int{root.id: 0}
	var free []int
	next := 1

	alloc := func(id uint64) (int, bool) {
		if s, ok := live[id]; ok {
			return s, true
		}
		var s int
		if n := len(free); n > 0 {
			s = free[n-1]
			free = free[:n-1]
		} else {
			s = next
			next++
		}
		live[id] = s
		return s, false
	}

	var steps []step
	idPos := len(t.ids)
	valPos := len(t.vals)
	for i := len(t.ops) - 1; i >= 0; i-- {
		op := t.ops[i]
		rule := ops.Lookup(op)
		idPos -= rule.Arity + 1
		valPos -= rule.Captures()

		resID := t.ids[idPos+rule.Arity]
		if resID > root.id {
			continue
		}
		rs, ok := live[resID]
		if !ok {
			continue
		}
		delete(live, resID)
		free = append(free, rs)

		st := step{op: op, valPos: valPos, res: rs, arg2: -1}
		st.arg1, st.live1 = alloc(t.ids[idPos])
		if rule.Arity == 2 {
			st.arg2, st.live2 = alloc(t.ids[idPos+1])
		}
		steps = append(steps, st)
	}

	inputs := make([]uint64, 0, len(live))
	for id := range live {
		inputs = append(inputs, id)
	}
	slices.Sort(inputs)

	remap := make([]int, next)
	assigned := make([]bool, next)
	for i, id := range inputs {
		s := live[id]
		remap[s] = i
		assigned[s] = true
	}
	k := len(inputs)
	for s := range remap {
		if !assigned[s] {
			remap[s] = k
			k++
		}
	}

	for i := range steps {
		st := &steps[i]
		st.res = remap[st.res]
		st.arg1 = remap[st.arg1]
		if st.arg2 >= 0 {
			st.arg2 = remap[st.arg2]
		}
	}

	return &plan{
		steps:  steps,
		nslots: next,
		inputs: inputs,
		root:   remap[0],
	}
}
