package ops

import "math"

// Logarithms. With a = 1/(x+s) for shift s (0 or 1) and base factor b,
//
//	y'      = b · a
//	y^{(k)} = -(k-1) · a · y^{(k-1)}     k >= 2
//
// which is the derivative of a·(x+s)^{-1} applied repeatedly.

func logDerivs(x, _ float64, out []float64) {
	logFamily(out, 1/x, 1)
}

func log1pDerivs(x, _ float64, out []float64) {
	logFamily(out, 1/(x+1), 1)
}

func log10Derivs(x, _ float64, out []float64) {
	logFamily(out, 1/x, 1/math.Ln10)
}

func log2Derivs(x, _ float64, out []float64) {
	logFamily(out, 1/x, 1/math.Ln2)
}

func logFamily(out []float64, a, base float64) {
	if len(out) < 2 {
		return
	}
	out[1] = base * a
	for k := 2; k < len(out); k++ {
		out[k] = -float64(k-1) * out[k-1] * a
	}
}
