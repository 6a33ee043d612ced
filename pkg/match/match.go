// Package match provides fuzzy k-nearest matching over arbitrary targets.
//
// The generic layer pairs each target with an extraction, the value the
// distance metric actually compares, and answers nearest queries either by
// linear scan or through a vantage point tree. On top of it sit normalized
// matchers that take plain string queries, handle pronunciation, and scale
// distance thresholds by query length so one threshold works for short and
// long phrases alike.
package match

import (
	"container/heap"
	"errors"
	"fmt"
)

// ErrNonPositiveK reports a nearest-neighbour query with k < 1.
var ErrNonPositiveK = errors.New("k must be positive")

// Match is a target found by a query, with its metric distance.
type Match[T any] struct {
	Element  T
	Distance float64
}

// Metric is a distance function over extractions.
type Metric[E any] func(a, b E) float64

// Matcher finds targets of type T by querying with extractions of type E.
// Implemented by [Linear] and [Accelerated]; the metric decides what
// "near" means, so any symmetric non-negative metric works here.
type Matcher[T, E any] interface {
	// Len returns the number of targets.
	Len() int
	// Empty reports whether the matcher has no targets.
	Empty() bool
	// Nearest returns the closest target, or false if the matcher is
	// empty.
	Nearest(query E) (Match[T], bool)
	// NearestWithin returns the closest target at distance at most limit,
	// or false if there is none.
	NearestWithin(query E, limit float64) (Match[T], bool)
	// KNearest returns the k closest targets, nearest first.
	KNearest(query E, k int) ([]Match[T], error)
	// KNearestWithin returns the k closest targets at distance at most
	// limit, nearest first.
	KNearestWithin(query E, k int, limit float64) ([]Match[T], error)
}

// entry carries a target together with the extraction it is matched by.
type entry[T, E any] struct {
	element    T
	extraction E
}

func extractAll[T, E any](targets []T, extract func(T) E) []entry[T, E] {
	entries := make([]entry[T, E], len(targets))
	for i, t := range targets {
		entries[i] = entry[T, E]{element: t, extraction: extract(t)}
	}
	return entries
}

func checkK(k int) error {
	if k <= 0 {
		return fmt.Errorf("match: k = %d: %w", k, ErrNonPositiveK)
	}
	return nil
}

// matchHeap is a max-heap of matches by distance.
type matchHeap[T any] []Match[T]

func (h matchHeap[T]) Len() int           { return len(h) }
func (h matchHeap[T]) Less(i, j int) bool { return h[i].Distance > h[j].Distance }
func (h matchHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *matchHeap[T]) Push(x any) {
	*h = append(*h, x.(Match[T]))
}

func (h *matchHeap[T]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func (h *matchHeap[T]) sorted() []Match[T] {
	result := make([]Match[T], h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(Match[T])
	}
	return result
}
