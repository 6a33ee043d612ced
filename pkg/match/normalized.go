package match

import (
	"fmt"
	"math"

	"github.com/MrWong99/phonomatch/pkg/distance"
	"github.com/MrWong99/phonomatch/pkg/speech"
)

// Pronouncer turns an English phrase into its pronunciation. It must be
// deterministic; matchers call it once per target at build time and once
// per query.
type Pronouncer interface {
	Pronounce(phrase string) (speech.Pronunciation, error)
}

// kNearestWithinNormalized scales the distance threshold up into the
// metric's raw domain and the resulting distances back down, so callers
// can use one threshold regardless of query length.
func kNearestWithinNormalized[T, E any](inner Matcher[T, E], query E, k int, limit, scale float64) ([]Match[T], error) {
	if scale == 0 {
		scale = 1
	}
	matches, err := inner.KNearestWithin(query, k, limit*scale)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].Distance /= scale
	}
	return matches, nil
}

// StringMatcher matches string queries against targets by normalized rune
// edit distance. A reported distance of 0.25 means a quarter of the query
// changed, whatever its length.
type StringMatcher[T any] struct {
	inner Matcher[T, string]
}

// NewString creates a string matcher. extract maps each target to the
// phrase it is matched by; accelerated selects the vantage point tree
// implementation over the linear scan.
func NewString[T any](targets []T, extract func(T) string, accelerated bool) *StringMatcher[T] {
	metric := func(a, b string) float64 {
		return float64(distance.String(a, b))
	}
	var inner Matcher[T, string]
	if accelerated {
		inner = NewAccelerated(targets, extract, metric)
	} else {
		inner = NewLinear(targets, extract, metric)
	}
	return &StringMatcher[T]{inner: inner}
}

// Len returns the number of targets.
func (m *StringMatcher[T]) Len() int { return m.inner.Len() }

// Empty reports whether the matcher has no targets.
func (m *StringMatcher[T]) Empty() bool { return m.inner.Empty() }

// Nearest returns the closest target, or false if the matcher is empty.
func (m *StringMatcher[T]) Nearest(query string) (Match[T], bool) {
	return first(m.KNearestWithin(query, 1, math.Inf(1)))
}

// NearestWithin returns the closest target within the normalized limit, or
// false if there is none.
func (m *StringMatcher[T]) NearestWithin(query string, limit float64) (Match[T], bool) {
	return first(m.KNearestWithin(query, 1, limit))
}

// KNearest returns the k closest targets, nearest first.
func (m *StringMatcher[T]) KNearest(query string, k int) ([]Match[T], error) {
	return m.KNearestWithin(query, k, math.Inf(1))
}

// KNearestWithin returns the k closest targets within the normalized
// limit, nearest first.
func (m *StringMatcher[T]) KNearestWithin(query string, k int, limit float64) ([]Match[T], error) {
	scale := float64(len([]rune(query)))
	return kNearestWithinNormalized(m.inner, query, k, limit, scale)
}

// PhoneticMatcher matches string queries against targets by normalized
// phonetic distance between their pronunciations.
type PhoneticMatcher[T any] struct {
	inner      Matcher[T, []distance.PhonemeVector]
	pronouncer Pronouncer
}

// NewPhonetic creates a phonetic matcher, pronouncing every target phrase
// up front. extract maps each target to the phrase it is matched by.
func NewPhonetic[T any](targets []T, extract func(T) string, pronouncer Pronouncer, accelerated bool) (*PhoneticMatcher[T], error) {
	entries, err := pronounceAll(targets, extract, pronouncer)
	if err != nil {
		return nil, err
	}
	return &PhoneticMatcher[T]{
		inner:      fromEntries(entries, distance.PhoneticVectors, accelerated),
		pronouncer: pronouncer,
	}, nil
}

// Len returns the number of targets.
func (m *PhoneticMatcher[T]) Len() int { return m.inner.Len() }

// Empty reports whether the matcher has no targets.
func (m *PhoneticMatcher[T]) Empty() bool { return m.inner.Empty() }

// Nearest returns the closest target, or false if the matcher is empty.
// The error reports a query that could not be pronounced.
func (m *PhoneticMatcher[T]) Nearest(query string) (Match[T], bool, error) {
	matches, err := m.KNearestWithin(query, 1, math.Inf(1))
	if err != nil || len(matches) == 0 {
		return Match[T]{}, false, err
	}
	return matches[0], true, nil
}

// NearestWithin returns the closest target within the normalized limit, or
// false if there is none.
func (m *PhoneticMatcher[T]) NearestWithin(query string, limit float64) (Match[T], bool, error) {
	matches, err := m.KNearestWithin(query, 1, limit)
	if err != nil || len(matches) == 0 {
		return Match[T]{}, false, err
	}
	return matches[0], true, nil
}

// KNearest returns the k closest targets, nearest first.
func (m *PhoneticMatcher[T]) KNearest(query string, k int) ([]Match[T], error) {
	return m.KNearestWithin(query, k, math.Inf(1))
}

// KNearestWithin returns the k closest targets within the normalized
// limit, nearest first. The limit scales with the phone count of the
// query's pronunciation.
func (m *PhoneticMatcher[T]) KNearestWithin(query string, k int, limit float64) ([]Match[T], error) {
	pron, err := m.pronouncer.Pronounce(query)
	if err != nil {
		return nil, fmt.Errorf("match: pronounce %q: %w", query, err)
	}
	vec := distance.EmbedPronunciation(pron)
	return kNearestWithinNormalized(m.inner, vec, k, limit, float64(pron.Len()))
}

// hybridInput is the extraction compared by the hybrid matcher.
type hybridInput struct {
	phrase string
	pron   []distance.PhonemeVector
}

// HybridMatcher matches string queries against targets by a weighted blend
// of phonetic and lexical distance, normalized by query length.
type HybridMatcher[T any] struct {
	inner      Matcher[T, hybridInput]
	pronouncer Pronouncer
	weight     float64
}

// NewHybrid creates a hybrid matcher with the given phonetic weight
// percentage in [0, 1], pronouncing every target phrase up front. extract
// maps each target to the phrase it is matched by.
func NewHybrid[T any](targets []T, phoneticWeight float64, extract func(T) string, pronouncer Pronouncer, accelerated bool) (*HybridMatcher[T], error) {
	hybrid, err := distance.NewHybrid(phoneticWeight)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	entries := make([]entry[T, hybridInput], len(targets))
	for i, t := range targets {
		phrase := extract(t)
		pron, err := pronouncer.Pronounce(phrase)
		if err != nil {
			return nil, fmt.Errorf("match: pronounce target %q: %w", phrase, err)
		}
		entries[i] = entry[T, hybridInput]{
			element:    t,
			extraction: hybridInput{phrase: phrase, pron: distance.EmbedPronunciation(pron)},
		}
	}

	metric := func(a, b hybridInput) float64 {
		return hybrid.Distance(a.phrase, a.pron, b.phrase, b.pron)
	}
	return &HybridMatcher[T]{
		inner:      fromEntries(entries, metric, accelerated),
		pronouncer: pronouncer,
		weight:     phoneticWeight,
	}, nil
}

// Len returns the number of targets.
func (m *HybridMatcher[T]) Len() int { return m.inner.Len() }

// Empty reports whether the matcher has no targets.
func (m *HybridMatcher[T]) Empty() bool { return m.inner.Empty() }

// Weight returns the phonetic weight percentage.
func (m *HybridMatcher[T]) Weight() float64 { return m.weight }

// Nearest returns the closest target, or false if the matcher is empty.
// The error reports a query that could not be pronounced.
func (m *HybridMatcher[T]) Nearest(query string) (Match[T], bool, error) {
	matches, err := m.KNearestWithin(query, 1, math.Inf(1))
	if err != nil || len(matches) == 0 {
		return Match[T]{}, false, err
	}
	return matches[0], true, nil
}

// NearestWithin returns the closest target within the normalized limit, or
// false if there is none.
func (m *HybridMatcher[T]) NearestWithin(query string, limit float64) (Match[T], bool, error) {
	matches, err := m.KNearestWithin(query, 1, limit)
	if err != nil || len(matches) == 0 {
		return Match[T]{}, false, err
	}
	return matches[0], true, nil
}

// KNearest returns the k closest targets, nearest first.
func (m *HybridMatcher[T]) KNearest(query string, k int) ([]Match[T], error) {
	return m.KNearestWithin(query, k, math.Inf(1))
}

// KNearestWithin returns the k closest targets within the normalized
// limit, nearest first. The limit scales with the weighted blend of the
// query's phone count and rune length.
func (m *HybridMatcher[T]) KNearestWithin(query string, k int, limit float64) ([]Match[T], error) {
	pron, err := m.pronouncer.Pronounce(query)
	if err != nil {
		return nil, fmt.Errorf("match: pronounce %q: %w", query, err)
	}
	input := hybridInput{phrase: query, pron: distance.EmbedPronunciation(pron)}
	scale := m.weight*float64(pron.Len()) + (1-m.weight)*float64(len([]rune(query)))
	return kNearestWithinNormalized(m.inner, input, k, limit, scale)
}

// pronounceAll embeds every target's pronunciation for phonetic matching.
func pronounceAll[T any](targets []T, extract func(T) string, pronouncer Pronouncer) ([]entry[T, []distance.PhonemeVector], error) {
	entries := make([]entry[T, []distance.PhonemeVector], len(targets))
	for i, t := range targets {
		phrase := extract(t)
		pron, err := pronouncer.Pronounce(phrase)
		if err != nil {
			return nil, fmt.Errorf("match: pronounce target %q: %w", phrase, err)
		}
		entries[i] = entry[T, []distance.PhonemeVector]{
			element:    t,
			extraction: distance.EmbedPronunciation(pron),
		}
	}
	return entries, nil
}

// fromEntries picks the matcher implementation for prebuilt entries.
func fromEntries[T, E any](entries []entry[T, E], metric Metric[E], accelerated bool) Matcher[T, E] {
	if accelerated {
		return newAcceleratedFromEntries(entries, metric)
	}
	return newLinearFromEntries(entries, metric)
}
