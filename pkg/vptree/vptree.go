// Package vptree implements a vantage point tree, a metric-space index that
// answers nearest-neighbour queries with any metric, no coordinates needed.
//
// The tree is stored as a contiguous node slice. Each node's subtree is a
// subrange of that slice: the node itself, then its inside-radius children,
// then its outside-radius children. Build and search both run on explicit
// stacks over index ranges.
package vptree

import "container/heap"

// Metric is a distance function over T. It must be non-negative, symmetric,
// and satisfy the triangle inequality for searches to be exact.
type Metric[T any] func(a, b T) float64

// Match is an element found by a search, with its distance to the target.
type Match[T any] struct {
	Element  T
	Distance float64
}

type node[T any] struct {
	element  T
	radius   float64
	leftSize int
}

// Tree is an immutable vantage point tree over elements of type T.
type Tree[T any] struct {
	nodes  []node[T]
	metric Metric[T]
}

// New builds a tree over the given elements. The elements are copied; the
// input slice is not retained. Building costs O(n log n) metric calls.
func New[T any](elements []T, metric Metric[T]) *Tree[T] {
	t := &Tree[T]{
		nodes:  make([]node[T], len(elements)),
		metric: metric,
	}
	for i, e := range elements {
		t.nodes[i].element = e
	}
	t.build()
	return t
}

// Len returns the number of elements in the tree.
func (t *Tree[T]) Len() int { return len(t.nodes) }

// Empty reports whether the tree has no elements.
func (t *Tree[T]) Empty() bool { return len(t.nodes) == 0 }

// build arranges the node slice into vantage point order. Each range's
// first node becomes the vantage point; the remaining nodes are partitioned
// around the median distance to it.
func (t *Tree[T]) build() {
	type span struct{ first, last int }

	dists := make([]float64, len(t.nodes))
	stack := []span{{0, len(t.nodes)}}

	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if r.last-r.first <= 1 {
			continue
		}

		root := r.first
		begin, end := root+1, r.last
		mid := begin + (end-begin)/2

		for i := begin; i < end; i++ {
			dists[i] = t.metric(t.nodes[root].element, t.nodes[i].element)
		}
		t.selectNth(dists, begin, mid, end)

		t.nodes[root].radius = dists[mid]
		t.nodes[root].leftSize = mid - begin

		stack = append(stack, span{mid, end}, span{begin, mid})
	}
}

// selectNth partially sorts nodes[first:last] by distance so that
// dists[nth] holds the value it would have after a full sort, with smaller
// distances before it and larger ones after. Hoare-partition quickselect;
// nodes and distances are swapped together.
func (t *Tree[T]) selectNth(dists []float64, first, nth, last int) {
	for last-first > 1 {
		pivot := dists[first+(last-first)/2]

		lo, hi := first, last-1
		for lo <= hi {
			for dists[lo] < pivot {
				lo++
			}
			for dists[hi] > pivot {
				hi--
			}
			if lo <= hi {
				dists[lo], dists[hi] = dists[hi], dists[lo]
				t.nodes[lo], t.nodes[hi] = t.nodes[hi], t.nodes[lo]
				lo++
				hi--
			}
		}

		switch {
		case nth <= hi:
			last = hi + 1
		case nth >= lo:
			first = lo
		default:
			return
		}
	}
}

// Nearest returns the closest element to target, or false if the tree is
// empty.
func (t *Tree[T]) Nearest(target T) (Match[T], bool) {
	matches := t.KNearest(target, 1)
	if len(matches) == 0 {
		return Match[T]{}, false
	}
	return matches[0], true
}

// NearestWithin returns the closest element to target at distance at most
// limit, or false if there is none.
func (t *Tree[T]) NearestWithin(target T, limit float64) (Match[T], bool) {
	matches := t.KNearestWithin(target, 1, limit)
	if len(matches) == 0 {
		return Match[T]{}, false
	}
	return matches[0], true
}

// KNearest returns the k closest elements to target, sorted by ascending
// distance. Subtrees are only pruned once k candidates are in hand, so the
// first k visited nodes always enter the candidate set.
func (t *Tree[T]) KNearest(target T, k int) []Match[T] {
	return t.search(target, k, 0, false)
}

// KNearestWithin returns the k closest elements to target at distance at
// most limit, sorted by ascending distance.
func (t *Tree[T]) KNearestWithin(target T, k int, limit float64) []Match[T] {
	return t.search(target, k, limit, true)
}

// stackEntry is a pending subtree. Visiting is necessary iff a <= b + tau.
type stackEntry struct {
	first, last int
	a, b        float64
}

func (t *Tree[T]) search(target T, k int, tau float64, bounded bool) []Match[T] {
	if k <= 0 {
		return nil
	}

	var matches matchHeap[T]
	stack := []stackEntry{{0, len(t.nodes), 0, 0}}

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if entry.first == entry.last {
			continue
		}
		if (bounded || matches.Len() == k) && entry.a > entry.b+tau {
			continue
		}

		root := &t.nodes[entry.first]
		dist := t.metric(root.element, target)

		if bounded {
			if dist <= tau {
				if matches.Len() == k {
					heap.Pop(&matches)
				}
				heap.Push(&matches, Match[T]{root.element, dist})
				if matches.Len() == k {
					tau = matches[0].Distance
				}
			}
		} else if matches.Len() < k || dist <= tau {
			if matches.Len() == k {
				heap.Pop(&matches)
			}
			heap.Push(&matches, Match[T]{root.element, dist})
			tau = matches[0].Distance
		}

		left := entry.first + 1
		right := entry.last
		if left == right {
			continue
		}
		mid := left + root.leftSize
		radius := root.radius

		// The nearer child goes on top of the stack.
		if dist < radius {
			stack = append(stack,
				stackEntry{mid, right, radius, dist},
				stackEntry{left, mid, dist, radius})
		} else {
			stack = append(stack,
				stackEntry{left, mid, dist, radius},
				stackEntry{mid, right, radius, dist})
		}
	}

	result := make([]Match[T], matches.Len())
	for i := matches.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&matches).(Match[T])
	}
	return result
}

// matchHeap is a max-heap of matches by distance, so the worst candidate is
// always on top.
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
