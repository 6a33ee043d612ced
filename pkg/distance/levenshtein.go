// Package distance implements the edit distances used for fuzzy matching:
// a generic Levenshtein engine parameterised over substitution and
// insertion/deletion costs, plus the concrete string, phonetic, and hybrid
// metrics built on it.
package distance

// Number is the numeric domain an edit distance accumulates in.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Levenshtein is a minimum edit distance over element type T with costs in
// N. Sub prices substituting one element for another; Cost prices inserting
// or deleting an element. The classic distance uses 0/1 substitution and
// unit cost.
type Levenshtein[T any, N Number] struct {
	Sub  func(a, b T) N
	Cost func(t T) N
}

// Distance computes the minimum edit distance between left and right with
// the Wagner-Fischer algorithm, keeping two active rows so memory stays
// proportional to len(right).
func (l Levenshtein[T, N]) Distance(left, right []T) N {
	cols := len(right) + 1
	row0 := make([]N, cols)
	row1 := make([]N, cols)

	var initial N
	for i, u := range right {
		initial += l.Cost(u)
		row0[i+1] = initial
	}

	for _, t := range left {
		tCost := l.Cost(t)
		row1[0] = row0[0] + tCost

		for i, u := range right {
			sub := row0[i] + l.Sub(t, u)
			del := row0[i+1] + tCost
			ins := row1[i] + l.Cost(u)
			row1[i+1] = min(sub, del, ins)
		}

		row0, row1 = row1, row0
	}

	return row0[cols-1]
}

// String is the classic Levenshtein distance between two strings, counted
// over runes with unit costs.
func String(a, b string) int {
	l := Levenshtein[rune, int]{
		Sub: func(x, y rune) int {
			if x == y {
				return 0
			}
			return 1
		},
		Cost: func(rune) int { return 1 },
	}
	return l.Distance([]rune(a), []rune(b))
}
