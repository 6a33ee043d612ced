package match

import (
	"math"

	"github.com/MrWong99/phonomatch/pkg/vptree"
)

// Accelerated is a matcher backed by a vantage point tree, pruning most
// comparisons on large target sets. The metric must satisfy the triangle
// inequality for results to equal the linear matcher's.
type Accelerated[T, E any] struct {
	tree *vptree.Tree[entry[T, E]]
}

var _ Matcher[string, string] = (*Accelerated[string, string])(nil)

// NewAccelerated creates an accelerated matcher. extract maps each target
// to the value the metric compares; it is called once per target at build
// time.
func NewAccelerated[T, E any](targets []T, extract func(T) E, metric Metric[E]) *Accelerated[T, E] {
	return newAcceleratedFromEntries(extractAll(targets, extract), metric)
}

func newAcceleratedFromEntries[T, E any](entries []entry[T, E], metric Metric[E]) *Accelerated[T, E] {
	tree := vptree.New(entries, func(a, b entry[T, E]) float64 {
		return metric(a.extraction, b.extraction)
	})
	return &Accelerated[T, E]{tree: tree}
}

// Len returns the number of targets.
func (m *Accelerated[T, E]) Len() int { return m.tree.Len() }

// Empty reports whether the matcher has no targets.
func (m *Accelerated[T, E]) Empty() bool { return m.tree.Empty() }

// Nearest returns the closest target, or false if the matcher is empty.
func (m *Accelerated[T, E]) Nearest(query E) (Match[T], bool) {
	return first(m.KNearestWithin(query, 1, math.Inf(1)))
}

// NearestWithin returns the closest target at distance at most limit, or
// false if there is none.
func (m *Accelerated[T, E]) NearestWithin(query E, limit float64) (Match[T], bool) {
	return first(m.KNearestWithin(query, 1, limit))
}

// KNearest returns the k closest targets, nearest first.
func (m *Accelerated[T, E]) KNearest(query E, k int) ([]Match[T], error) {
	return m.KNearestWithin(query, k, math.Inf(1))
}

// KNearestWithin returns the k closest targets at distance at most limit,
// nearest first.
func (m *Accelerated[T, E]) KNearestWithin(query E, k int, limit float64) ([]Match[T], error) {
	if err := checkK(k); err != nil {
		return nil, err
	}

	found := m.tree.KNearestWithin(entry[T, E]{extraction: query}, k, limit)
	matches := make([]Match[T], len(found))
	for i, f := range found {
		matches[i] = Match[T]{f.Element.element, f.Distance}
	}
	return matches, nil
}
