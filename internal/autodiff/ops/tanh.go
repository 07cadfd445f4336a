package ops

// Tan and Tanh: y' = 1 ± y².
//
// Every derivative is a polynomial in y. Starting from P_0(y) = y,
//
//	P_{k+1}(y) = P_k'(y) · (1 ± y²)
//
// so the coefficients are updated order by order and each derivative is evaluated
// from the captured result alone.

func tanDerivs(_, _ float64, out []float64) {
	polyDerivs(out, 1)
}

func tanhDerivs(_, _ float64, out []float64) {
	polyDerivs(out, -1)
}

func polyDerivs(out []float64, sign float64) {
	n := len(out) - 1
	if n < 1 {
		return
	}
	y := out[0]

	// coeffs[i] is the coefficient of y^i in P_k; P_k has degree k+1.
	coeffs := make([]float64, n+2)
	next := make([]float64, n+2)
	coeffs[1] = 1

	for k := 1; k <= n; k++ {
		clear(next)
		for i := 1; i <= k; i++ {
			c := coeffs[i] * float64(i)
			if c == 0 {
				continue
			}
			next[i-1] += c
			next[i+1] += sign * c
		}
		coeffs, next = next, coeffs

		// Horner evaluation of P_k at y.
		v := 0.0
		for i := k + 1; i >= 0; i-- {
			v = v*y + coeffs[i]
		}
		out[k] = v
	}
}
