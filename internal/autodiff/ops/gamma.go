package ops

import (
	"math"

	"gonum.org/v1/gonum/mathext"

	"github.com/born-ml/bdiff/internal/combinatorics"
)

// Lgamma: y^{(k)} = ψ^{(k-1)}(x), the polygamma functions.
//
// Tgamma: Γ(x) = exp(lgamma(x)), so by Faà di Bruno
//
//	Γ^{(n)}(x) = Γ(x) · Σ_k B_{n,k}(ψ(x), ψ'(x), ...)
//
// with B_{n,k} the partial Bell polynomials.

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

func lgammaDerivs(x, _ float64, out []float64) {
	for k := 1; k < len(out); k++ {
		out[k] = Polygamma(k-1, x)
	}
}

func tgammaDerivs(x, _ float64, out []float64) {
	n := len(out) - 1
	if n < 1 {
		return
	}

	logDerivs := make([]float64, n+1)
	lgammaDerivs(x, 0, logDerivs)

	bell := combinatorics.Bell(logDerivs, n)
	for k := 1; k <= n; k++ {
		sum := 0.0
		for _, b := range bell[k-1] {
			sum += b
		}
		out[k] = out[0] * sum
	}
}

// Polygamma returns ψ^{(n)}(x), the n-th derivative of the digamma function.
//
// For n >= 1 it uses ψ^{(n)}(x) = (-1)^{n+1} n! ζ(n+1, x) with the Hurwitz zeta
// function, after shifting non-positive x with ψ^{(n)}(x) = ψ^{(n)}(x+1) - (-1)^n n! / x^{n+1}.
func Polygamma(n int, x float64) float64 {
	if n == 0 {
		return mathext.Digamma(x)
	}

	fact := 1.0
	for i := 2; i <= n; i++ {
		fact *= float64(i)
	}
	sign := 1.0
	if n%2 == 0 {
		sign = -1.0
	}

	// shift accumulates -(-1)^n n! / x^{n+1} = sign · n! / x^{n+1}
	shift := 0.0
	for x <= 0 {
		if x == math.Trunc(x) {
			return math.NaN()
		}
		shift += sign * fact / math.Pow(x, float64(n+1))
		x++
	}
	return sign*fact*mathext.Zeta(float64(n+1), x) + shift
}
