package match

import (
	"container/heap"
	"math"
)

// Linear is a matcher that compares the query against every stored target.
// It is the reference implementation: no metric assumptions beyond those
// of the distance itself, and predictable O(n) query cost.
type Linear[T, E any] struct {
	entries []entry[T, E]
	metric  Metric[E]
}

var _ Matcher[string, string] = (*Linear[string, string])(nil)

// NewLinear creates a linear matcher. extract maps each target to the
// value the metric compares.
func NewLinear[T, E any](targets []T, extract func(T) E, metric Metric[E]) *Linear[T, E] {
	return newLinearFromEntries(extractAll(targets, extract), metric)
}

func newLinearFromEntries[T, E any](entries []entry[T, E], metric Metric[E]) *Linear[T, E] {
	return &Linear[T, E]{entries: entries, metric: metric}
}

// Len returns the number of targets.
func (m *Linear[T, E]) Len() int { return len(m.entries) }

// Empty reports whether the matcher has no targets.
func (m *Linear[T, E]) Empty() bool { return len(m.entries) == 0 }

// Nearest returns the closest target, or false if the matcher is empty.
func (m *Linear[T, E]) Nearest(query E) (Match[T], bool) {
	return first(m.KNearestWithin(query, 1, math.Inf(1)))
}

// NearestWithin returns the closest target at distance at most limit, or
// false if there is none.
func (m *Linear[T, E]) NearestWithin(query E, limit float64) (Match[T], bool) {
	return first(m.KNearestWithin(query, 1, limit))
}

// KNearest returns the k closest targets, nearest first.
func (m *Linear[T, E]) KNearest(query E, k int) ([]Match[T], error) {
	return m.KNearestWithin(query, k, math.Inf(1))
}

// KNearestWithin returns the k closest targets at distance at most limit,
// nearest first.
func (m *Linear[T, E]) KNearestWithin(query E, k int, limit float64) ([]Match[T], error) {
	if err := checkK(k); err != nil {
		return nil, err
	}

	var matches matchHeap[T]
	for _, e := range m.entries {
		current := m.metric(e.extraction, query)
		if current > limit {
			continue
		}
		if matches.Len() < k {
			heap.Push(&matches, Match[T]{e.element, current})
		} else if current < matches[0].Distance {
			heap.Pop(&matches)
			heap.Push(&matches, Match[T]{e.element, current})
		}
	}
	return matches.sorted(), nil
}

// first adapts a k=1 result list to an optional single match. The error
// cannot fire for k=1.
func first[T any](matches []Match[T], err error) (Match[T], bool) {
	if err != nil || len(matches) == 0 {
		return Match[T]{}, false
	}
	return matches[0], true
}
