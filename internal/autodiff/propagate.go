package autodiff

import (
	"github.com/born-ml/bdiff/internal/combinatorics"
)

// sweep holds the coefficient tensor during the backward walk.
//
// The tensor stores one entry per composition idx = [budget, k_0, ..., k_{n-1}] of
// the order, at position combinatorics.Rank(idx, order): entry k_s is the number of
// times slot s is differentiated, and budget is the unused order. Entry 0 (budget =
// order) is the value of the root.
//
// Free slots always hold zero coefficients.
type sweep struct {
	order int
	coeff []float64
	live  []bool

	idx    []int
	others []int
	fact   []float64
}

func newSweep(p *plan, order int) *sweep {
	fact := make([]float64, order+1)
	fact[0] = 1
	for i := 1; i <= order; i++ {
		fact[i] = fact[i-1] * float64(i)
	}
	return &sweep{
		order: order,
		coeff: make([]float64, combinatorics.MultisetCoeff(p.nslots+1, order)),
		live:  make([]bool, p.nslots),
		idx:   make([]int, p.nslots+1),
		fact:  fact,
	}
}

// seed stores the root itself: its value, and derivative one with respect to its
// own slot.
func (s *sweep) seed(slot int, value float64) {
	s.coeff[0] = value
	clear(s.idx)
	s.idx[0] = s.order - 1
	s.idx[1+slot] = 1
	s.coeff[combinatorics.Rank(s.idx, s.order)] = 1
	s.idx[1+slot] = 0
	s.live[slot] = true
}

// at returns the tensor position of the current base multiset extended by counts
// on the local slots. A negative slot is ignored; slots may coincide.
func (s *sweep) at(local int, slots, counts [3]int) int {
	total := 0
	for i, sl := range slots {
		if sl >= 0 {
			s.idx[1+sl] += counts[i]
			total += counts[i]
		}
	}
	s.idx[0] = local - total
	pos := combinatorics.Rank(s.idx, s.order)
	for i, sl := range slots {
		if sl >= 0 {
			s.idx[1+sl] -= counts[i]
		}
	}
	return pos
}

// eachBase calls fn once per multiset of orders over the live slots other than the
// entry's own, leaving at least one order unit for the entry. fn receives the
// number of units left for the entry's slots.
func (s *sweep) eachBase(st *step, fn func(local int)) {
	s.others = s.others[:0]
	for sl, ok := range s.live {
		if ok && sl != st.res && sl != st.arg1 && sl != st.arg2 {
			s.others = append(s.others, sl)
		}
	}

	g := combinatorics.NewMultisetGenerator(len(s.others)+1, s.order-1)
	for g.Next() {
		sparse := g.Current()
		clear(s.idx)
		for j, sl := range s.others {
			s.idx[1+sl] = sparse[1+j]
		}
		fn(1 + sparse[0])
	}
}

// chain replaces res = f(arg) by arg.
//
// With B the partial Bell polynomials of f's derivatives, Faà di Bruno gives for
// an operand seen for the first time
//
//	∂^N G = Σ_k ∂_res^k F · B_{N,k}
//
// and, when the operand is already live, the Leibniz split between the path through
// f and the direct dependency:
//
//	∂^N G = Σ_i C(N, i) Σ_k ∂_res^k ∂_arg^{N-i} F · B_{i,k}
func (s *sweep) chain(st *step, bell [][]float64) {
	slots := [3]int{st.res, st.arg1, -1}
	s.eachBase(st, func(local int) {
		maxArg := 0
		if st.live1 {
			maxArg = local
		}

		w := local + 1
		f := make([]float64, w*w)
		for k := 0; k <= local; k++ {
			for i := 0; i <= min(maxArg, local-k); i++ {
				if k == 0 && i == 0 {
					continue
				}
				pos := s.at(local, slots, [3]int{k, i, 0})
				f[k*w+i] = s.coeff[pos]
				s.coeff[pos] = 0
			}
		}

		for n := 1; n <= local; n++ {
			g := 0.0
			for i := 0; i <= n; i++ {
				j := n - i
				if j > maxArg {
					continue
				}
				if i == 0 {
					g += f[j]
					continue
				}
				inner := 0.0
				for k := 1; k <= i; k++ {
					inner += f[k*w+j] * bell[i-1][k-1]
				}
				g += float64(combinatorics.Choose(n, i)) * inner
			}
			s.coeff[s.at(local, slots, [3]int{0, n, 0})] = g
		}
	})
}

// sum replaces res = arg1 + sign·arg2 by its operands:
//
//	∂1^a ∂2^b G = Σ_i Σ_j C(a, i) C(b, j) sign^(b-j) ∂_res^(a-i+b-j) ∂1^i ∂2^j F
func (s *sweep) sum(st *step, sign float64) {
	slots := [3]int{st.res, st.arg1, st.arg2}
	s.eachBase(st, func(local int) {
		f, w := s.gather(st, local)
		max1, max2 := s.limits(st, local)

		pow := make([]float64, local+1)
		pow[0] = 1
		for i := 1; i <= local; i++ {
			pow[i] = pow[i-1] * sign
		}

		for a := 0; a <= local; a++ {
			for b := 0; a+b <= local; b++ {
				if a == 0 && b == 0 {
					continue
				}
				g := 0.0
				for i := 0; i <= min(a, max1); i++ {
					ci := float64(combinatorics.Choose(a, i))
					for j := 0; j <= min(b, max2); j++ {
						k := a - i + b - j
						g += ci * float64(combinatorics.Choose(b, j)) * pow[b-j] * f[(k*w+i)*w+j]
					}
				}
				s.coeff[s.at(local, slots, [3]int{0, a, b})] = g
			}
		}
	})
}

// product replaces res = arg1 · arg2 by its operands. With x1, x2 the operand values,
// the increment of res is x2·h1 + x1·h2 + h1·h2, which gives
//
//	∂1^a ∂2^b G = Σ_c c! C(a, c) C(b, c) Σ_i C(a-c, i) Σ_j C(b-c, j)
//	              · ∂_res^(a+b-i-j-c) ∂1^i ∂2^j F · x2^(a-i-c) · x1^(b-j-c)
//
// where c counts the cross terms h1·h2.
func (s *sweep) product(st *step, x1, x2 float64) {
	slots := [3]int{st.res, st.arg1, st.arg2}
	s.eachBase(st, func(local int) {
		f, w := s.gather(st, local)
		max1, max2 := s.limits(st, local)

		pw1 := make([]float64, local+1)
		pw2 := make([]float64, local+1)
		pw1[0], pw2[0] = 1, 1
		for i := 1; i <= local; i++ {
			pw1[i] = pw1[i-1] * x1
			pw2[i] = pw2[i-1] * x2
		}

		for a := 0; a <= local; a++ {
			for b := 0; a+b <= local; b++ {
				if a == 0 && b == 0 {
					continue
				}
				g := 0.0
				for c := 0; c <= min(a, b); c++ {
					cc := s.fact[c] * float64(combinatorics.Choose(a, c)*combinatorics.Choose(b, c))
					for i := 0; i <= min(a-c, max1); i++ {
						ci := float64(combinatorics.Choose(a-c, i))
						for j := 0; j <= min(b-c, max2); j++ {
							k := a + b - i - j - c
							term := f[(k*w+i)*w+j]
							if term == 0 {
								continue
							}
							g += cc * ci * float64(combinatorics.Choose(b-c, j)) * term * pw2[a-i-c] * pw1[b-j-c]
						}
					}
				}
				s.coeff[s.at(local, slots, [3]int{0, a, b})] = g
			}
		}
	})
}

// limits returns the highest order each operand can already carry: zero for an
// operand seen for the first time.
func (s *sweep) limits(st *step, local int) (max1, max2 int) {
	if st.live1 {
		max1 = local
	}
	if st.live2 {
		max2 = local
	}
	return max1, max2
}

// gather reads and zeroes the coefficients of a binary entry for the current base,
// indexed by (res, arg1, arg2) counts. The entry with no local derivative is left
// in place.
func (s *sweep) gather(st *step, local int) (f []float64, w int) {
	slots := [3]int{st.res, st.arg1, st.arg2}
	max1, max2 := s.limits(st, local)

	w = local + 1
	f = make([]float64, w*w*w)
	for k := 0; k <= local; k++ {
		for i := 0; i <= min(max1, local-k); i++ {
			for j := 0; j <= min(max2, local-k-i); j++ {
				if k == 0 && i == 0 && j == 0 {
					continue
				}
				pos := s.at(local, slots, [3]int{k, i, j})
				f[(k*w+i)*w+j] = s.coeff[pos]
				s.coeff[pos] = 0
			}
		}
	}
	return f, w
}
