package carousel

// Indexer performs wrap-around index arithmetic over a sequence of fixed
// length. The zero value has length 0, for which every operation returns 0.
type Indexer struct {
	n int
}

// NewIndexer returns an indexer over n items. Negative n is treated as 0.
func NewIndexer(n int) Indexer {
	if n < 0 {
		n = 0
	}
	return Indexer{n: n}
}

// Len returns the sequence length.
func (x Indexer) Len() int {
	return x.n
}

// Normalize maps any integer into [0, n).
func (x Indexer) Normalize(i int) int {
	if x.n == 0 {
		return 0
	}
	return ((i % x.n) + x.n) % x.n
}

// Next returns the index after current, wrapping to 0.
func (x Indexer) Next(current int) int {
	return x.Normalize(current + 1)
}

// Prev returns the index before current, wrapping to n-1.
func (x Indexer) Prev(current int) int {
	return x.Normalize(current - 1)
}

// Goto returns target normalized into range.
func (x Indexer) Goto(target int) int {
	return x.Normalize(target)
}

// SignedDistance returns the shortest signed path from active to slide
// around the circle: positive to the right, negative to the left. When both
// directions are equally long (even n) the positive distance wins.
func (x Indexer) SignedDistance(slide, active int) int {
	if x.n == 0 {
		return 0
	}
	diff := x.Normalize(slide - active)
	if 2*diff > x.n {
		diff -= x.n
	}
	return diff
}
