// Package place matches spoken location queries against a set of places.
// Each place is indexed under sliding-window variations of its name and
// address, individually and concatenated, plus its type tags.
package place

import (
	"fmt"

	"github.com/MrWong99/phonomatch/pkg/match"
	"github.com/MrWong99/phonomatch/pkg/nlp"
	"github.com/MrWong99/phonomatch/pkg/pronounce"
)

// Fields is the intermediate representation the matcher indexes a place
// by. Zero values are skipped.
type Fields struct {
	// Name of the place, preprocessed before indexing.
	Name string
	// Address of the place, preprocessed before indexing. The places
	// preprocessor expands abbreviations like "st" and "ne".
	Address string
	// Types are tags or categories for the place, indexed as passed in.
	Types []string
}

// Config tunes the matcher's accuracy.
type Config struct {
	// PhoneticWeightPercentage in [0, 1] trades phonetic against lexical
	// distance. 1 means pure phonetic score.
	PhoneticWeightPercentage float64
	// MaxReturns caps the number of places a find can return.
	MaxReturns int
	// FindThreshold is the maximum normalized distance to a match. 0 is an
	// exact match; values above 1 occur when lengths differ.
	FindThreshold float64
	// MaxDistanceMarginReturns and BestDistanceMultiplier set the candidate
	// cutoff, max(best distance * multiplier, margin).
	MaxDistanceMarginReturns float64
	BestDistanceMultiplier   float64
}

// DefaultConfig returns the tuning used when no config is given.
func DefaultConfig() Config {
	return Config{
		PhoneticWeightPercentage: 0.7,
		MaxReturns:               8,
		FindThreshold:            0.35,
		MaxDistanceMarginReturns: 0.02,
		BestDistanceMultiplier:   1.1,
	}
}

// target is one indexed variation of a place. id identifies the place
// across its variations for deduplication.
type target[P any] struct {
	place  P
	phrase string
	id     int
}

// Matcher finds places by fuzzy hybrid matching over name, address, and
// type variations. It is read-only after construction and safe for
// concurrent use if its pronouncer is.
type Matcher[P any] struct {
	cfg       Config
	matcher   *match.HybridMatcher[target[P]]
	maxWindow int
}

var (
	preprocessor = nlp.NewEnPlacesPreProcessor()
	tokenizer    = nlp.NewWhitespaceTokenizer()
)

// New indexes the places under the default config. extract maps a place
// to the fields it is matched by.
func New[P any](places []P, extract func(P) Fields, pronouncer pronounce.Pronouncer) (*Matcher[P], error) {
	return NewWithConfig(places, extract, pronouncer, DefaultConfig())
}

// NewWithConfig indexes the places, pronouncing every variation up front.
// Construction fails if a variation cannot be pronounced or the phonetic
// weight is out of range.
func NewWithConfig[P any](places []P, extract func(P) Fields, pronouncer pronounce.Pronouncer, cfg Config) (*Matcher[P], error) {
	var targets []target[P]

	maxWindow := 1
	for id, place := range places {
		fields := extract(place)

		var name, address string
		if fields.Name != "" {
			name = preprocessor.PreProcess(fields.Name)
		}
		if fields.Address != "" {
			address = preprocessor.PreProcess(fields.Address)
		}
		variations := nameVariations(place, id, name, address)
		maxWindow = max(maxWindow, len(variations))
		targets = append(targets, variations...)

		for _, typ := range fields.Types {
			// Types are indexed as given, respecting what was passed in.
			variations := nameVariations(place, id, typ, "")
			maxWindow = max(maxWindow, len(variations))
			targets = append(targets, variations...)
		}
	}

	matcher, err := match.NewHybrid(targets, cfg.PhoneticWeightPercentage,
		func(t target[P]) string { return t.phrase }, pronouncer, true)
	if err != nil {
		return nil, fmt.Errorf("place: index: %w", err)
	}

	return &Matcher[P]{cfg: cfg, matcher: matcher, maxWindow: maxWindow}, nil
}

// Find returns the places matching the query, best first.
func (m *Matcher[P]) Find(query string) ([]P, error) {
	normalized := preprocessor.PreProcess(query)
	candidates, err := m.matcher.KNearestWithin(normalized, m.maxWindow*m.cfg.MaxReturns, m.cfg.FindThreshold)
	if err != nil {
		return nil, fmt.Errorf("place: find %q: %w", query, err)
	}
	return m.selectMatches(candidates), nil
}

// nameVariations slides a window anchored at the beginning and the end of
// both name and address, individually and as if they were concatenated.
func nameVariations[P any](place P, id int, name, address string) []target[P] {
	nameTokens := tokenizer.Tokenize(name)
	addressTokens := tokenizer.Tokenize(address)
	var variations []target[P]

	for i, token := range nameTokens {
		variations = append(variations, target[P]{place, name[:token.Interval.Last], id})
		if split := i + 1; split < len(nameTokens) {
			suffix := name[nameTokens[split].Interval.First:]
			variations = append(variations, target[P]{place, suffix, id})
			if address != "" {
				variations = append(variations, target[P]{place, suffix + " " + address, id})
			}
		}
	}
	for i, token := range addressTokens {
		prefix := address[:token.Interval.Last]
		variations = append(variations, target[P]{place, prefix, id})
		if name != "" {
			variations = append(variations, target[P]{place, name + " " + prefix, id})
		}
		if split := i + 1; split < len(addressTokens) {
			variations = append(variations, target[P]{place, address[addressTokens[split].Interval.First:], id})
		}
	}
	return variations
}

// selectMatches keeps candidates within the cutoff derived from the best
// distance, deduplicated per place.
func (m *Matcher[P]) selectMatches(candidates []match.Match[target[P]]) []P {
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0].Distance
	maxDistance := max(best*m.cfg.BestDistanceMultiplier, m.cfg.MaxDistanceMarginReturns)

	dedupe := make(map[int]struct{})
	var matches []P
	for _, candidate := range candidates {
		if len(matches) == m.cfg.MaxReturns {
			break
		}
		if candidate.Distance >= maxDistance {
			continue
		}
		if _, seen := dedupe[candidate.Element.id]; seen {
			continue
		}
		dedupe[candidate.Element.id] = struct{}{}
		matches = append(matches, candidate.Element.place)
	}
	return matches
}
