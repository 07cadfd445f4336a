package ops

import "math"

// Inverse trigonometric and hyperbolic functions.
//
// acos, asin, acosh and asinh satisfy (x² + s) f'' + x f' = 0 with s = -1 (acos,
// asin, acosh) or s = +1 (asinh). Differentiating k-2 times:
//
//	(x² + s) f^{(k)} = -(2k-3) x f^{(k-1)} - (k-2)² f^{(k-2)}
//
// atan and atanh satisfy (x² + s) f'' + 2x f' = 0 with s = +1 (atan) or -1 (atanh):
//
//	(x² + s) f^{(k)} = -2(k-1) x f^{(k-1)} - (k-1)(k-2) f^{(k-2)}

func acosDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = -1 / math.Sqrt(1-x*x)
	}
	arcRecurrence(x, x*x-1, out)
}

func asinDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = 1 / math.Sqrt(1-x*x)
	}
	arcRecurrence(x, x*x-1, out)
}

func acoshDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = 1 / math.Sqrt(x*x-1)
	}
	arcRecurrence(x, x*x-1, out)
}

func asinhDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = 1 / math.Sqrt(x*x+1)
	}
	arcRecurrence(x, x*x+1, out)
}

func atanDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = 1 / (x*x + 1)
	}
	arctanRecurrence(x, x*x+1, out)
}

func atanhDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = 1 / (1 - x*x)
	}
	arctanRecurrence(x, x*x-1, out)
}

func arcRecurrence(x, denom float64, out []float64) {
	inv := 1 / denom
	for k := 2; k < len(out); k++ {
		n := float64(k - 2)
		out[k] = (-(2*n+1)*x*out[k-1] - n*n*out[k-2]) * inv
	}
}

func arctanRecurrence(x, denom float64, out []float64) {
	inv := 1 / denom
	for k := 2; k < len(out); k++ {
		n := float64(k - 2)
		out[k] = (-2*(n+1)*x*out[k-1] - n*(n+1)*out[k-2]) * inv
	}
}
