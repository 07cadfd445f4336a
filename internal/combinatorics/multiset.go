package combinatorics

// MultisetGenerator enumerates every way to distribute units indistinguishable items
// into cases ordered bins (compositions of units into cases non-negative parts).
//
// Next walks from [units, 0, ..., 0] to [0, ..., 0, units]; the position of each
// composition in that walk is its Rank. Prev walks the same sequence backwards.
// A generator is not rewindable.
type MultisetGenerator struct {
	cases   int
	units   int
	started bool
	bins    []int
}

// NewMultisetGenerator creates a generator for units items over cases bins (cases >= 1).
func NewMultisetGenerator(cases, units int) *MultisetGenerator {
	return &MultisetGenerator{
		cases: cases,
		units: units,
		bins:  make([]int, cases),
	}
}

// Current returns the current composition. The slice is reused by Next and Prev.
func (g *MultisetGenerator) Current() []int {
	return g.bins
}

// Next advances to the following composition, or returns false after the last one.
func (g *MultisetGenerator) Next() bool {
	b := g.bins
	if !g.started {
		g.started = true
		clear(b)
		b[0] = g.units
		return true
	}

	last := g.cases - 1
	if b[last] == g.units {
		return false
	}

	i := g.cases - 2
	for b[i] == 0 {
		i--
	}
	b[i+1]++
	b[i]--

	if b[last] > 0 && i+1 != last {
		b[i+1] += b[last]
		b[last] = 0
	}
	return true
}

// Prev moves to the preceding composition, or returns false after the first one.
func (g *MultisetGenerator) Prev() bool {
	b := g.bins
	last := g.cases - 1
	if !g.started {
		g.started = true
		clear(b)
		b[last] = g.units
		return true
	}

	if b[0] == g.units {
		return false
	}

	i := last
	for b[i] == 0 {
		i--
	}
	b[i-1]++
	b[i]--

	if b[i] > 0 && i != last {
		b[last] = b[i]
		b[i] = 0
	}
	return true
}

// CombinationGenerator is an odometer over all tuples of cases digits in [0, base).
// The first digit turns fastest.
type CombinationGenerator struct {
	cases   int
	top     int
	started bool
	digits  []int
}

// NewCombinationGenerator creates an odometer with cases digits in base base (base >= 1).
func NewCombinationGenerator(cases, base int) *CombinationGenerator {
	return &CombinationGenerator{
		cases:  cases,
		top:    base - 1,
		digits: make([]int, cases),
	}
}

// Current returns the current tuple. The slice is reused by Next.
func (g *CombinationGenerator) Current() []int {
	return g.digits
}

// Next advances the odometer; it returns false once every tuple has been produced.
func (g *CombinationGenerator) Next() bool {
	if !g.started {
		g.started = true
		clear(g.digits)
		return true
	}

	for j := range g.digits {
		if g.digits[j] != g.top {
			g.digits[j]++
			return true
		}
		g.digits[j] = 0
	}
	return false
}
