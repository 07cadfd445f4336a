package ops

import "math"

// Exp: every derivative equals the result.
func expDerivs(_, _ float64, out []float64) {
	for k := 1; k < len(out); k++ {
		out[k] = out[0]
	}
}

// Exp2: y^{(k)} = ln(2) · y^{(k-1)}.
func exp2Derivs(_, _ float64, out []float64) {
	for k := 1; k < len(out); k++ {
		out[k] = math.Ln2 * out[k-1]
	}
}

// Expm1: y = exp(x) - 1, so every derivative is exp(x). The input is captured
// because exp(x) cannot be recovered accurately from a result near zero.
func expm1Derivs(x, _ float64, out []float64) {
	if len(out) < 2 {
		return
	}
	out[1] = math.Exp(x)
	for k := 2; k < len(out); k++ {
		out[k] = out[1]
	}
}
