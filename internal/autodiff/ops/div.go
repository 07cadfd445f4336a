package ops

// Inv: y = 1/x.
//
// Since y' = -y², every derivative follows from the result alone:
//
//	y^{(k)} = -k · y^{(k-1)} · y
//
// Division a/b is recorded as a * inv(b).

func inv(x, _ float64) float64 { return 1 / x }

func invDerivs(_, _ float64, out []float64) {
	for k := 1; k < len(out); k++ {
		out[k] = -float64(k) * out[k-1] * out[0]
	}
}
