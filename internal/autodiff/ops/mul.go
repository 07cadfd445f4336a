package ops

// MulConst: y = c * x, dy/dx = c.
//
// The constant is captured on the tape; the input is not.

func mulConst(x, c float64) float64 { return c * x }

func mulConstDerivs(_, c float64, out []float64) {
	fillLinear(out, c)
}
