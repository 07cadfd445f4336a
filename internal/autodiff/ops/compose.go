package ops

// Compose returns the derivatives of f(g(x)) up to order n = len(inner)-1, given
// inner = g(x), g'(x), ..., g^{(n)}(x) and outer = f(y), f'(y), ..., f^{(n)}(y) at
// y = g(x). Both slices must have the same length.
//
// The truncated power series are composed directly, which makes the result an
// independent reference for the partition-based chain rule of the sweep.
func Compose(outer, inner []float64) []float64 {
	n := len(inner) - 1
	f := toSeries(outer)
	g := toSeries(inner)
	g[0] = 0

	out := make([]float64, n+1)
	power := make([]float64, n+1) // (g - g(x))^j
	power[0] = 1
	for j := 0; j <= n; j++ {
		for k, pk := range power {
			out[k] += f[j] * pk
		}
		next := make([]float64, n+1)
		for a, pa := range power {
			for b := 1; a+b <= n; b++ {
				next[a+b] += pa * g[b]
			}
		}
		power = next
	}
	return fromSeries(out)
}

// toSeries converts derivatives into Taylor coefficients.
func toSeries(derivs []float64) []float64 {
	c := make([]float64, len(derivs))
	fact := 1.0
	for k, d := range derivs {
		if k > 0 {
			fact *= float64(k)
		}
		c[k] = d / fact
	}
	return c
}

func fromSeries(c []float64) []float64 {
	fact := 1.0
	for k := range c {
		if k > 0 {
			fact *= float64(k)
		}
		c[k] *= fact
	}
	return c
}
