// Package combinatorics enumerates the combinatorial objects used to address and
// aggregate symmetric derivative tensors.
//
// A mixed partial derivative of total order k over n variables is identified by an
// unordered multiset, written here as a composition b (len(b) = n, Σb = k). The dense
// coefficient tensor stores one entry per composition, at the position returned by Rank.
//
// None of these functions report errors. Arguments out of range (negative counts,
// compositions that do not sum to k) are caller contract violations.
package combinatorics

// Combinations returns the binomial coefficient C(d1+d2, d1).
//
// It is symmetric in its arguments: Combinations(d1, d2) == Combinations(d2, d1).
func Combinations(d1, d2 int) int {
	if d2 < d1 {
		d1, d2 = d2, d1
	}
	return Choose(d1+d2, d1)
}

// Choose returns the binomial coefficient C(n, k), or 0 when k > n.
func Choose(n, k int) int {
	if k > n {
		return 0
	}
	if n-k < k {
		k = n - k
	}
	if k == 0 {
		return 1
	}

	// After step d, r == C(n0, d), so each division is exact.
	r := n
	n--
	for d := 2; d <= k; d++ {
		r *= n
		r /= d
		n--
	}
	return r
}

// MultisetCoeff returns the number of multisets of size k drawn from n symbols,
// C(n-1+k, k). This is the number of compositions of k into n non-negative parts.
func MultisetCoeff(n, k int) int {
	return Combinations(n-1, k)
}

// Rank returns the position of composition b (summing to k) in the order produced
// by MultisetGenerator.Next for len(b) cases and k units.
//
// The first composition [k, 0, ..., 0] has rank 0; for k = 1 the composition with the
// single unit at position i has rank i.
func Rank(b []int, k int) int {
	left := k
	m := len(b)
	r := 0
	for i := 0; left != 0 && i < m-1; i++ {
		// every value larger than b[i] at this position comes first
		for j := b[i]; j < left; j++ {
			r += Combinations(m-i-2, left-j-1)
		}
		left -= b[i]
	}
	return r
}

// Unrank is the inverse of Rank: it returns the composition of k into cases parts
// found at position index of the MultisetGenerator order.
func Unrank(index, cases, k int) []int {
	b := make([]int, cases)
	left := k
	for i := 0; i < cases-1; i++ {
		v := left
		for {
			block := Combinations(cases-i-2, left-v)
			if index < block {
				break
			}
			index -= block
			v--
		}
		b[i] = v
		left -= v
	}
	if cases > 0 {
		b[cases-1] = left
	}
	return b
}
