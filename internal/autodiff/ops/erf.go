package ops

import "math"

// Error functions and the standard normal CDF.
//
// erf and erfc satisfy f'' + 2x f' = 0, the normal CDF satisfies f'' + x f' = 0.
// Differentiating k-2 times gives, with a = 2 or 1,
//
//	f^{(k)} = -a x f^{(k-1)} - a (k-2) f^{(k-2)}

const twoOverSqrtPi = 2 / math.SqrtPi

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

func erfDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = twoOverSqrtPi * math.Exp(-x*x)
	}
	gaussRecurrence(x, 2, out)
}

func erfcDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = -twoOverSqrtPi * math.Exp(-x*x)
	}
	gaussRecurrence(x, 2, out)
}

func normCDFDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
	}
	gaussRecurrence(x, 1, out)
}

func gaussRecurrence(x, a float64, out []float64) {
	for k := 2; k < len(out); k++ {
		out[k] = -a * x * out[k-1]
		if k > 2 {
			out[k] -= a * float64(k-2) * out[k-2]
		}
	}
}
