package combinatorics

// PartitionGenerator enumerates the integer partitions of n into positive parts.
//
// The first call to Next yields [n]; each following call advances to the next
// partition in reverse-lexicographic order, and Next returns false once [1, ..., 1]
// has been produced. A generator cannot be rewound; create a new one instead.
//
// Usage:
//
//	g := combinatorics.NewPartitionGenerator(4)
//	for g.Next() {
//	    p := g.Partition() // [4], [3 1], [2 2], [2 1 1], [1 1 1 1]
//	    _ = g.Multiplicity(p)
//	}
type PartitionGenerator struct {
	n          int
	started    bool
	parts      []int
	factorials []int // lazily filled, factorials[i] = i!
}

// NewPartitionGenerator creates a generator over the partitions of n (n >= 1).
func NewPartitionGenerator(n int) *PartitionGenerator {
	return &PartitionGenerator{n: n}
}

// Next advances to the next partition. It returns false when there is none left.
func (g *PartitionGenerator) Next() bool {
	if !g.started {
		g.started = true
		g.parts = make([]int, 1, g.n)
		g.parts[0] = g.n
		return true
	}
	if len(g.parts) == 0 || g.parts[0] == 1 {
		return false
	}

	rem := 0
	for len(g.parts) > 0 && g.parts[len(g.parts)-1] == 1 {
		rem++
		g.parts = g.parts[:len(g.parts)-1]
	}

	last := len(g.parts) - 1
	g.parts[last]--
	rem++

	for rem > g.parts[len(g.parts)-1] {
		top := g.parts[len(g.parts)-1]
		g.parts = append(g.parts, top)
		rem -= top
	}
	g.parts = append(g.parts, rem)
	return true
}

// Partition returns the current partition in non-increasing order.
// The slice is reused by the next call to Next.
func (g *PartitionGenerator) Partition() []int {
	return g.parts
}

// Multiplicity returns the number of ways to split n distinguishable items into
// unlabelled blocks with the sizes of p:
//
//	n! / (∏ part! · ∏ (count of each distinct part)!)
//
// p must be a partition of the generator's n.
func (g *PartitionGenerator) Multiplicity(p []int) int {
	if g.factorials == nil {
		g.factorials = make([]int, g.n+1)
		g.factorials[0] = 1
		for i := 1; i <= g.n; i++ {
			g.factorials[i] = i * g.factorials[i-1]
		}
	}

	mult := g.factorials[g.n]
	counts := make([]int, g.n)
	for _, part := range p {
		mult /= g.factorials[part]
		counts[part-1]++
	}
	for _, c := range counts {
		mult /= g.factorials[c]
	}
	return mult
}

// Bell returns the table of partial Bell polynomials evaluated at the derivative
// values derivs[1], derivs[2], ...:
//
//	table[i-1][k-1] = B_{i,k}(derivs[1], ..., derivs[i-k+1])   for 1 <= k <= i <= n
//
// It is the Faà di Bruno weight that turns derivatives of an outer function with
// respect to its argument into derivatives of the composition:
//
//	d^i/dx^i g(f(x)) = Σ_k g^{(k)}(f(x)) · table[i-1][k-1]
//
// derivs[0] is ignored; len(derivs) must be at least n+1.
func Bell(derivs []float64, n int) [][]float64 {
	table := make([][]float64, n)
	for i := 1; i <= n; i++ {
		row := make([]float64, i)
		g := NewPartitionGenerator(i)
		for g.Next() {
			p := g.Partition()
			term := float64(g.Multiplicity(p))
			for _, part := range p {
				term *= derivs[part]
			}
			row[len(p)-1] += term
		}
		table[i-1] = row
	}
	return table
}
