package ops_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/bdiff/internal/autodiff/ops"
)

func TestParse_RoundTrip(t *testing.T) {
	for op := ops.Add; op <= ops.Tgamma; op++ {
		got, ok := ops.Parse(op.String())
		require.True(t, ok, "op %d", op)
		assert.Equal(t, op, got)
	}

	_, ok := ops.Parse("softmax")
	assert.False(t, ok)
}

func TestOp_StringUnknown(t *testing.T) {
	assert.Equal(t, "Op(0)", ops.Invalid.String())
	assert.Equal(t, "Op(200)", ops.Op(200).String())
}

func TestLookup_PanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { ops.Lookup(ops.Invalid) })
	assert.Panics(t, func() { ops.Lookup(ops.Op(200)) })
}

func TestRule_Captures(t *testing.T) {
	tests := []struct {
		op   ops.Op
		want int
	}{
		{ops.Add, 0},
		{ops.Sub, 0},
		{ops.Mul, 2},
		{ops.AddConst, 1},
		{ops.ConstSub, 1},
		{ops.MulConst, 2},
		{ops.Sin, 2},
		{ops.Tan, 1},
		{ops.Exp, 1},
		{ops.Inv, 1},
		{ops.Pow, 3},
		{ops.PowInt, 3},
		{ops.Lgamma, 2},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ops.Lookup(tt.op).Captures())
		})
	}
}

func TestRule_Arity(t *testing.T) {
	for _, op := range []ops.Op{ops.Add, ops.Sub, ops.Mul} {
		r := ops.Lookup(op)
		assert.Equal(t, 2, r.Arity, op.String())
		assert.Nil(t, r.Derivs, op.String())
	}
	for op := ops.AddConst; op <= ops.Tgamma; op++ {
		r := ops.Lookup(op)
		assert.Equal(t, 1, r.Arity, op.String())
		assert.NotNil(t, r.Eval, op.String())
		assert.NotNil(t, r.Derivs, op.String())
	}
}

func TestFunctions(t *testing.T) {
	fns := ops.Functions()
	assert.Contains(t, fns, ops.Sin)
	assert.Contains(t, fns, ops.Tgamma)
	assert.NotContains(t, fns, ops.Pow)
	assert.NotContains(t, fns, ops.PowInt)
	assert.NotContains(t, fns, ops.MulConst)
	assert.Equal(t, ops.Cos, fns[0])
}

// Rules that do not capture their input must produce the same derivatives when the
// input is hidden from them.
func TestDerivs_ResultOnlyRules(t *testing.T) {
	for op := ops.AddConst; op <= ops.Tgamma; op++ {
		r := ops.Lookup(op)
		if r.Input {
			continue
		}
		x, p := 0.4, 1.5

		want := ops.Taylor(op, x, p, 5)

		got := make([]float64, 6)
		got[0] = want[0]
		r.Derivs(math.NaN(), p, got)

		assert.InDeltaSlice(t, want, got, 1e-12, op.String())
	}
}

func TestTaylor_RejectsBinary(t *testing.T) {
	assert.Panics(t, func() { ops.Taylor(ops.Mul, 1, 0, 2) })
}

func TestTaylor_OrderZero(t *testing.T) {
	got := ops.Taylor(ops.Sin, 0.5, 0, 0)
	require.Len(t, got, 1)
	assert.InDelta(t, math.Sin(0.5), got[0], 1e-15)
}

func TestCompose(t *testing.T) {
	// exp(2x) at x = 0.3: every derivative is 2^n e^{0.6}
	inner := []float64{0.6, 2, 0, 0, 0, 0}
	outer := []float64{math.Exp(0.6), math.Exp(0.6), math.Exp(0.6), math.Exp(0.6), math.Exp(0.6), math.Exp(0.6)}
	got := ops.Compose(outer, inner)
	require.Len(t, got, 6)
	for n, v := range got {
		assert.InDelta(t, math.Pow(2, float64(n))*math.Exp(0.6), v, 1e-12, "order %d", n)
	}

	// log(x^2) = 2 log x at x = 1.5
	x := 1.5
	sq := []float64{x * x, 2 * x, 2, 0, 0}
	got = ops.Compose(ops.Taylor(ops.Log, x*x, 0, 4), sq)
	assert.InDelta(t, 2*math.Log(x), got[0], 1e-12)
	assert.InDelta(t, 2/x, got[1], 1e-12)
	assert.InDelta(t, -2/(x*x), got[2], 1e-12)
	assert.InDelta(t, 4/(x*x*x), got[3], 1e-12)
	assert.InDelta(t, -12/(x*x*x*x), got[4], 1e-12)
}
