package combinatorics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoose(t *testing.T) {
	tests := []struct {
		n, k, want int
	}{
		{0, 0, 1},
		{5, 0, 1},
		{5, 5, 1},
		{5, 2, 10},
		{10, 3, 120},
		{10, 7, 120},
		{20, 10, 184756},
		{3, 5, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Choose(tt.n, tt.k), "Choose(%d, %d)", tt.n, tt.k)
	}
}

func TestChoose_PascalIdentity(t *testing.T) {
	for n := 1; n <= 25; n++ {
		for k := 1; k < n; k++ {
			require.Equal(t, Choose(n-1, k-1)+Choose(n-1, k), Choose(n, k), "n=%d k=%d", n, k)
		}
	}
}

func TestCombinations(t *testing.T) {
	assert.Equal(t, 10, Combinations(2, 3))
	assert.Equal(t, 10, Combinations(3, 2))
	assert.Equal(t, 1, Combinations(0, 7))
	assert.Equal(t, 1, Combinations(7, 0))
	assert.Equal(t, 3432, Combinations(7, 7))
}

func TestMultisetCoeff(t *testing.T) {
	assert.Equal(t, 1, MultisetCoeff(1, 5))
	assert.Equal(t, 6, MultisetCoeff(3, 2))
	assert.Equal(t, 4, MultisetCoeff(4, 1))
	assert.Equal(t, 1, MultisetCoeff(4, 0))
	assert.Equal(t, 35, MultisetCoeff(4, 4))
}

func TestRank_FirstOrderIsPosition(t *testing.T) {
	// Order 1 tensors are addressed as value, then one slot per variable.
	b := make([]int, 6)
	for i := range b {
		clear(b)
		b[i] = 1
		assert.Equal(t, i, Rank(b, 1))
	}
}

func TestRankUnrank_RoundTrip(t *testing.T) {
	for cases := 1; cases <= 5; cases++ {
		for k := 0; k <= 6; k++ {
			g := NewMultisetGenerator(cases, k)
			pos := 0
			for g.Next() {
				b := g.Current()
				require.Equal(t, pos, Rank(b, k), "cases=%d k=%d b=%v", cases, k, b)
				require.Equal(t, b, Unrank(pos, cases, k), "cases=%d k=%d pos=%d", cases, k, pos)
				pos++
			}
			require.Equal(t, MultisetCoeff(cases, k), pos, "cases=%d k=%d", cases, k)
		}
	}
}
