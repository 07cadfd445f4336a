// Package ops defines the operations that can be recorded on a tape and their
// derivative rules.
//
// Every operation is described by a Rule in a table indexed by Op. For unary
// operations the rule knows how to evaluate the function and how to fill a buffer
// with its derivatives of every order at a point:
//
//	out[0] = f(x)          (set by the caller, usually from the tape)
//	out[k] = f^{(k)}(x)    (filled by Rule.Derivs, k >= 1)
//
// The buffers hold derivative values, not Taylor-series coefficients (there is no
// 1/k! factor). Each rule uses a closed-form recurrence, usually derived from an ODE
// the function satisfies, so no symbolic differentiation happens at run time.
//
// Binary operations (Add, Sub, Mul) have no Derivs: the backward sweep expands them
// directly.
package ops

import (
	"fmt"
	"math"
)

// Op identifies a recorded operation.
type Op uint8

// Recorded operations.
const (
	Invalid Op = iota

	// Binary operations.
	Add
	Sub
	Mul

	// Operations combining a variable with a constant.
	AddConst // x + c
	ConstSub // c - x
	MulConst // c * x

	// Elementary functions.
	Cos
	Sin
	Tan
	Acos
	Asin
	Atan
	Cosh
	Sinh
	Tanh
	Acosh
	Asinh
	Atanh
	Exp
	Exp2
	Expm1
	Log
	Log1p
	Log10
	Log2
	Pow    // x^p, p real
	PowInt // x^p, p integer
	Inv    // 1/x
	Erf
	Erfc
	NormCDF // standard normal cumulative distribution
	Lgamma
	Tgamma

	numOps
)

// Rule describes how an operation is recorded and differentiated.
type Rule struct {
	Name  string
	Arity int // 1 or 2

	// Input reports whether operand values are captured on the tape.
	// Param reports whether the constant parameter is captured.
	// Unary operations always capture their result.
	Input bool
	Param bool

	// Eval computes f(x) for parameter p. Nil for binary operations.
	Eval func(x, p float64) float64

	// Derivs fills out[1:] given out[0] = f(x). When Input is false the rule
	// must not read x, which is not available during the backward sweep.
	Derivs func(x, p float64, out []float64)
}

// Captures returns how many float64 values one entry of this operation appends to
// the value log.
func (r *Rule) Captures() int {
	n := 0
	if r.Input {
		n += r.Arity
	}
	if r.Param {
		n++
	}
	if r.Arity == 1 {
		n++
	}
	return n
}

var rules = [numOps]Rule{
	Add: {Name: "add", Arity: 2},
	Sub: {Name: "sub", Arity: 2},
	Mul: {Name: "mul", Arity: 2, Input: true},

	AddConst: {Name: "addconst", Arity: 1, Eval: addConst, Derivs: addConstDerivs},
	ConstSub: {Name: "constsub", Arity: 1, Eval: constSub, Derivs: constSubDerivs},
	MulConst: {Name: "mulconst", Arity: 1, Param: true, Eval: mulConst, Derivs: mulConstDerivs},

	Cos:   {Name: "cos", Arity: 1, Input: true, Eval: unary(math.Cos), Derivs: cosDerivs},
	Sin:   {Name: "sin", Arity: 1, Input: true, Eval: unary(math.Sin), Derivs: sinDerivs},
	Tan:   {Name: "tan", Arity: 1, Eval: unary(math.Tan), Derivs: tanDerivs},
	Acos:  {Name: "acos", Arity: 1, Input: true, Eval: unary(math.Acos), Derivs: acosDerivs},
	Asin:  {Name: "asin", Arity: 1, Input: true, Eval: unary(math.Asin), Derivs: asinDerivs},
	Atan:  {Name: "atan", Arity: 1, Input: true, Eval: unary(math.Atan), Derivs: atanDerivs},
	Cosh:  {Name: "cosh", Arity: 1, Input: true, Eval: unary(math.Cosh), Derivs: coshDerivs},
	Sinh:  {Name: "sinh", Arity: 1, Input: true, Eval: unary(math.Sinh), Derivs: sinhDerivs},
	Tanh:  {Name: "tanh", Arity: 1, Eval: unary(math.Tanh), Derivs: tanhDerivs},
	Acosh: {Name: "acosh", Arity: 1, Input: true, Eval: unary(math.Acosh), Derivs: acoshDerivs},
	Asinh: {Name: "asinh", Arity: 1, Input: true, Eval: unary(math.Asinh), Derivs: asinhDerivs},
	Atanh: {Name: "atanh", Arity: 1, Input: true, Eval: unary(math.Atanh), Derivs: atanhDerivs},

	Exp:   {Name: "exp", Arity: 1, Eval: unary(math.Exp), Derivs: expDerivs},
	Exp2:  {Name: "exp2", Arity: 1, Eval: unary(math.Exp2), Derivs: exp2Derivs},
	Expm1: {Name: "expm1", Arity: 1, Input: true, Eval: unary(math.Expm1), Derivs: expm1Derivs},
	Log:   {Name: "log", Arity: 1, Input: true, Eval: unary(math.Log), Derivs: logDerivs},
	Log1p: {Name: "log1p", Arity: 1, Input: true, Eval: unary(math.Log1p), Derivs: log1pDerivs},
	Log10: {Name: "log10", Arity: 1, Input: true, Eval: unary(math.Log10), Derivs: log10Derivs},
	Log2:  {Name: "log2", Arity: 1, Input: true, Eval: unary(math.Log2), Derivs: log2Derivs},

	Pow:    {Name: "pow", Arity: 1, Input: true, Param: true, Eval: math.Pow, Derivs: powDerivs},
	PowInt: {Name: "powint", Arity: 1, Input: true, Param: true, Eval: math.Pow, Derivs: powDerivs},
	Inv:    {Name: "inv", Arity: 1, Eval: inv, Derivs: invDerivs},

	Erf:     {Name: "erf", Arity: 1, Input: true, Eval: unary(math.Erf), Derivs: erfDerivs},
	Erfc:    {Name: "erfc", Arity: 1, Input: true, Eval: unary(math.Erfc), Derivs: erfcDerivs},
	NormCDF: {Name: "normcdf", Arity: 1, Input: true, Eval: unary(normCDF), Derivs: normCDFDerivs},
	Lgamma:  {Name: "lgamma", Arity: 1, Input: true, Eval: unary(lgamma), Derivs: lgammaDerivs},
	Tgamma:  {Name: "tgamma", Arity: 1, Input: true, Eval: unary(math.Gamma), Derivs: tgammaDerivs},
}

// Lookup returns the rule of op. It panics on an unknown operation.
func Lookup(op Op) *Rule {
	if op == Invalid || op >= numOps {
		panic(fmt.Sprintf("ops: unknown operation %d", op))
	}
	return &rules[op]
}

// Parse returns the operation with the given rule name.
func Parse(name string) (Op, bool) {
	for op := Add; op < numOps; op++ {
		if rules[op].Name == name {
			return op, true
		}
	}
	return Invalid, false
}

// Functions returns every unary operation whose value depends on the input alone,
// in table order.
func Functions() []Op {
	var fns []Op
	for op := Cos; op < numOps; op++ {
		if op == Pow || op == PowInt {
			continue
		}
		fns = append(fns, op)
	}
	return fns
}

// String returns the rule name of op.
func (op Op) String() string {
	if op == Invalid || op >= numOps {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return rules[op].Name
}

// Taylor returns f(x), f'(x), ..., f^{(n)}(x) for the unary operation op with
// parameter p. Index 0 is evaluated with the standard library; the other entries
// come from the operation's recurrence.
func Taylor(op Op, x, p float64, n int) []float64 {
	r := Lookup(op)
	if r.Arity != 1 {
		panic(fmt.Sprintf("ops: %s is not a unary operation", r.Name))
	}
	out := make([]float64, n+1)
	out[0] = r.Eval(x, p)
	r.Derivs(x, p, out)
	return out
}

func unary(f func(float64) float64) func(x, p float64) float64 {
	return func(x, _ float64) float64 { return f(x) }
}
