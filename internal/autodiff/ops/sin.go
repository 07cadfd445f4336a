package ops

import "math"

// Sin, Cos, Sinh and Cosh satisfy f'' = ∓f, so after the first derivative the
// sequence repeats with period 4 (trigonometric) or 2 (hyperbolic):
//
//	sin:  sin, cos, -sin, -cos, ...
//	cos:  cos, -sin, -cos, sin, ...
//	sinh: sinh, cosh, sinh, cosh, ...
//	cosh: cosh, sinh, cosh, sinh, ...

func sinDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = math.Cos(x)
	}
	cycle(out, -1)
}

func cosDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = -math.Sin(x)
	}
	cycle(out, -1)
}

func sinhDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = math.Cosh(x)
	}
	cycle(out, 1)
}

func coshDerivs(x, _ float64, out []float64) {
	if len(out) > 1 {
		out[1] = math.Sinh(x)
	}
	cycle(out, 1)
}

// cycle applies f'' = sign · f from index 2 on.
func cycle(out []float64, sign float64) {
	for k := 2; k < len(out); k++ {
		out[k] = sign * out[k-2]
	}
}
