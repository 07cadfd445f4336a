package autodiff

import (
	"fmt"
	"math"

	"github.com/born-ml/bdiff/internal/autodiff/ops"
)

// Every function below records at most a handful of entries and returns the result
// Var. All operands must belong to the tape's current generation; otherwise the
// call panics.
//
// Operations whose operands share an id are recorded as an equivalent single
// operand operation (x+x as 2·x, x-x as 0·x, x·x as x²), so binary entries always
// have two distinct operands.

// Add returns a + b.
func (t *Tape) Add(a, b Var) Var {
	if a.id == b.id && a.tape == b.tape {
		return t.MulConst(a, 2)
	}
	return t.recordBinary(ops.Add, a, b, a.value+b.value)
}

// Sub returns a - b.
func (t *Tape) Sub(a, b Var) Var {
	if a.id == b.id && a.tape == b.tape {
		return t.MulConst(a, 0)
	}
	return t.recordBinary(ops.Sub, a, b, a.value-b.value)
}

// Mul returns a · b.
func (t *Tape) Mul(a, b Var) Var {
	if a.id == b.id && a.tape == b.tape {
		return t.PowInt(a, 2)
	}
	return t.recordBinary(ops.Mul, a, b, a.value*b.value)
}

// Div returns a / b, recorded as a · (1/b).
func (t *Tape) Div(a, b Var) Var {
	return t.Mul(a, t.Inv(b))
}

// Fma returns a·b + c.
func (t *Tape) Fma(a, b, c Var) Var {
	return t.Add(t.Mul(a, b), c)
}

// AddConst returns a + c. Adding zero returns a unchanged.
func (t *Tape) AddConst(a Var, c float64) Var {
	if c == 0 {
		t.own(a)
		return a
	}
	return t.recordUnary(ops.AddConst, a, c)
}

// SubConst returns a - c.
func (t *Tape) SubConst(a Var, c float64) Var {
	return t.AddConst(a, -c)
}

// ConstSub returns c - a.
func (t *Tape) ConstSub(c float64, a Var) Var {
	return t.recordUnary(ops.ConstSub, a, c)
}

// MulConst returns c · a. Multiplying by one returns a unchanged.
func (t *Tape) MulConst(a Var, c float64) Var {
	if c == 1 {
		t.own(a)
		return a
	}
	return t.recordUnary(ops.MulConst, a, c)
}

// DivConst returns a / c.
func (t *Tape) DivConst(a Var, c float64) Var {
	return t.MulConst(a, 1/c)
}

// ConstDiv returns c / a.
func (t *Tape) ConstDiv(c float64, a Var) Var {
	return t.MulConst(t.Inv(a), c)
}

// Neg returns -a.
func (t *Tape) Neg(a Var) Var {
	return t.MulConst(a, -1)
}

// Ldexp returns a · 2^e.
func (t *Tape) Ldexp(a Var, e int) Var {
	return t.MulConst(a, math.Ldexp(1, e))
}

// Inv returns 1/a.
func (t *Tape) Inv(a Var) Var { return t.recordUnary(ops.Inv, a, 0) }

// Elementary functions.

func (t *Tape) Cos(a Var) Var   { return t.recordUnary(ops.Cos, a, 0) }
func (t *Tape) Sin(a Var) Var   { return t.recordUnary(ops.Sin, a, 0) }
func (t *Tape) Tan(a Var) Var   { return t.recordUnary(ops.Tan, a, 0) }
func (t *Tape) Acos(a Var) Var  { return t.recordUnary(ops.Acos, a, 0) }
func (t *Tape) Asin(a Var) Var  { return t.recordUnary(ops.Asin, a, 0) }
func (t *Tape) Atan(a Var) Var  { return t.recordUnary(ops.Atan, a, 0) }
func (t *Tape) Cosh(a Var) Var  { return t.recordUnary(ops.Cosh, a, 0) }
func (t *Tape) Sinh(a Var) Var  { return t.recordUnary(ops.Sinh, a, 0) }
func (t *Tape) Tanh(a Var) Var  { return t.recordUnary(ops.Tanh, a, 0) }
func (t *Tape) Acosh(a Var) Var { return t.recordUnary(ops.Acosh, a, 0) }
func (t *Tape) Asinh(a Var) Var { return t.recordUnary(ops.Asinh, a, 0) }
func (t *Tape) Atanh(a Var) Var { return t.recordUnary(ops.Atanh, a, 0) }
func (t *Tape) Exp(a Var) Var   { return t.recordUnary(ops.Exp, a, 0) }
func (t *Tape) Exp2(a Var) Var  { return t.recordUnary(ops.Exp2, a, 0) }
func (t *Tape) Expm1(a Var) Var { return t.recordUnary(ops.Expm1, a, 0) }
func (t *Tape) Log(a Var) Var   { return t.recordUnary(ops.Log, a, 0) }
func (t *Tape) Log1p(a Var) Var { return t.recordUnary(ops.Log1p, a, 0) }
func (t *Tape) Log10(a Var) Var { return t.recordUnary(ops.Log10, a, 0) }
func (t *Tape) Log2(a Var) Var  { return t.recordUnary(ops.Log2, a, 0) }
func (t *Tape) Erf(a Var) Var   { return t.recordUnary(ops.Erf, a, 0) }
func (t *Tape) Erfc(a Var) Var  { return t.recordUnary(ops.Erfc, a, 0) }

// NormCDF returns the standard normal cumulative distribution at a.
func (t *Tape) NormCDF(a Var) Var { return t.recordUnary(ops.NormCDF, a, 0) }

// Lgamma returns log|Γ(a)|.
func (t *Tape) Lgamma(a Var) Var { return t.recordUnary(ops.Lgamma, a, 0) }

// Tgamma returns Γ(a).
func (t *Tape) Tgamma(a Var) Var { return t.recordUnary(ops.Tgamma, a, 0) }

// Apply records the unary function op, which must be one of ops.Functions.
func (t *Tape) Apply(op ops.Op, a Var) Var {
	rule := ops.Lookup(op)
	if rule.Arity != 1 || rule.Param || op < ops.Cos {
		panic(fmt.Sprintf("autodiff: %s is not a function of one variable", op))
	}
	return t.recordUnary(op, a, 0)
}

// Pow returns a^p for a real exponent p.
func (t *Tape) Pow(a Var, p float64) Var {
	return t.recordUnary(ops.Pow, a, p)
}

// PowInt returns a^n.
func (t *Tape) PowInt(a Var, n int) Var {
	return t.recordUnary(ops.PowInt, a, float64(n))
}

// Sqrt returns √a, recorded as a^(1/2).
func (t *Tape) Sqrt(a Var) Var {
	return t.recordUnaryValue(ops.Pow, a, 0.5, math.Sqrt(a.value))
}

// Cbrt returns ∛a, recorded as a^(1/3). Derivatives at negative a are NaN.
func (t *Tape) Cbrt(a Var) Var {
	return t.recordUnaryValue(ops.Pow, a, 1.0/3, math.Cbrt(a.value))
}

// PowConst returns c^a, recorded as exp(a · log c).
func (t *Tape) PowConst(c float64, a Var) Var {
	return t.Exp(t.MulConst(a, math.Log(c)))
}

// PowVar returns a^b, recorded as exp(log(a) · b).
func (t *Tape) PowVar(a, b Var) Var {
	return t.Exp(t.Mul(t.Log(a), b))
}

// Hypot returns √(a² + b²).
func (t *Tape) Hypot(a, b Var) Var {
	return t.Sqrt(t.Add(t.Mul(a, a), t.Mul(b, b)))
}

// Atan2 returns the angle of the point (b, a), recorded as atan(a/b) shifted into
// the quadrant of (b, a).
func (t *Tape) Atan2(a, b Var) Var {
	r := t.Atan(t.Div(a, b))
	return t.AddConst(r, math.Atan2(a.value, b.value)-r.value)
}

// Convenience methods on Var. Each records on v's tape.

// Add returns v + w.
func (v Var) Add(w Var) Var { return v.tape.Add(v, w) }

// Sub returns v - w.
func (v Var) Sub(w Var) Var { return v.tape.Sub(v, w) }

// Mul returns v · w.
func (v Var) Mul(w Var) Var { return v.tape.Mul(v, w) }

// Div returns v / w.
func (v Var) Div(w Var) Var { return v.tape.Div(v, w) }

// Neg returns -v.
func (v Var) Neg() Var { return v.tape.Neg(v) }
