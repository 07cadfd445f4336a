package ops

// Affine operations with a constant c (the rule parameter).
//
//	x + c:  d/dx = 1
//	c - x:  d/dx = -1
//
// Higher derivatives vanish. Neither rule needs the input or the constant
// during the backward sweep, so only the result is captured.

func addConst(x, c float64) float64 { return x + c }

func constSub(x, c float64) float64 { return c - x }

func addConstDerivs(_, _ float64, out []float64) {
	fillLinear(out, 1)
}

func constSubDerivs(_, _ float64, out []float64) {
	fillLinear(out, -1)
}

// fillLinear writes the derivatives of a function with constant slope.
func fillLinear(out []float64, slope float64) {
	if len(out) > 1 {
		out[1] = slope
	}
	for k := 2; k < len(out); k++ {
		out[k] = 0
	}
}
