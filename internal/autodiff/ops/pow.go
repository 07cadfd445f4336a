package ops

import "math"

// Pow and PowInt: y = x^p.
//
//	y^{(k)} = p (p-1) ... (p-k+1) · x^{p-k}
//
// Once the falling factorial reaches zero (integer p < k), every higher derivative
// is zero. Sqrt and Cbrt are recorded as Pow with p = 1/2 and p = 1/3.
func powDerivs(x, p float64, out []float64) {
	coeff := 1.0
	deg := p
	for k := 1; k < len(out); k++ {
		coeff *= deg
		deg--
		if coeff == 0 {
			for ; k < len(out); k++ {
				out[k] = 0
			}
			return
		}
		out[k] = coeff * math.Pow(x, deg)
	}
}
