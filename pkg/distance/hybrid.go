package distance

import (
	"errors"
	"fmt"
)

// ErrWeightRange reports a phonetic weight outside [0, 1].
var ErrWeightRange = errors.New("phonetic weight percentage out of range")

// Hybrid blends the string and phonetic distances of two phrases. A weight
// of 1 is purely phonetic, 0 purely lexical; the unused side is not
// computed at the extremes.
type Hybrid struct {
	weight float64
}

// NewHybrid returns a hybrid metric with the given phonetic weight
// percentage. The weight must be within [0, 1].
func NewHybrid(phoneticWeight float64) (Hybrid, error) {
	if phoneticWeight < 0 || phoneticWeight > 1 {
		return Hybrid{}, fmt.Errorf("distance: weight %v: %w", phoneticWeight, ErrWeightRange)
	}
	return Hybrid{weight: phoneticWeight}, nil
}

// Weight returns the phonetic weight percentage.
func (h Hybrid) Weight() float64 { return h.weight }

// Distance combines the phonetic distance of the embedded pronunciations
// with the rune-level string distance of the phrases.
func (h Hybrid) Distance(aText string, aPron []PhonemeVector, bText string, bPron []PhonemeVector) float64 {
	var phonetic, lexical float64
	if h.weight > 0 {
		phonetic = h.weight * PhoneticVectors(aPron, bPron)
	}
	if h.weight < 1 {
		lexical = (1 - h.weight) * float64(String(aText, bText))
	}
	return phonetic + lexical
}
