// Package contact matches spoken contact queries against an address book.
// Every contact is indexed under sliding-window variations of its name and
// aliases, so partial queries like a first name still land on the right
// entry.
package contact

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/MrWong99/phonomatch/pkg/match"
	"github.com/MrWong99/phonomatch/pkg/nlp"
	"github.com/MrWong99/phonomatch/pkg/pronounce"
)

// Fields is the intermediate representation the matcher indexes a contact
// by. Zero values are skipped.
type Fields struct {
	// Name of the contact, preprocessed before indexing.
	Name string
	// Aliases the contact also goes by, indexed as passed in.
	Aliases []string
}

// Config tunes the matcher's accuracy.
type Config struct {
	// PhoneticWeightPercentage in [0, 1] trades phonetic against lexical
	// distance. 1 means pure phonetic score.
	PhoneticWeightPercentage float64
	// MaxReturns caps the number of contacts a find can return.
	MaxReturns int
	// FindThreshold is the maximum normalized distance to a match. 0 is an
	// exact match; values above 1 occur when lengths differ.
	FindThreshold float64
	// MaxDistanceMarginReturns and BestDistanceMultiplier set the candidate
	// cutoff, max(best distance * multiplier, margin).
	MaxDistanceMarginReturns float64
	BestDistanceMultiplier   float64
	// MetaphoneFilter drops candidates that share no Double Metaphone code
	// with the query before ranking.
	MetaphoneFilter bool
}

// DefaultConfig returns the tuning used when no config is given.
func DefaultConfig() Config {
	return Config{
		PhoneticWeightPercentage: 0.7,
		MaxReturns:               4,
		FindThreshold:            0.35,
		MaxDistanceMarginReturns: 0.02,
		BestDistanceMultiplier:   1.1,
	}
}

// target is one indexed variation of a contact. id identifies the contact
// across its variations for deduplication.
type target[C any] struct {
	contact C
	phrase  string
	id      int
}

// Matcher finds contacts by fuzzy hybrid matching over name and alias
// variations. It is read-only after construction and safe for concurrent
// use if its pronouncer is.
type Matcher[C any] struct {
	cfg            Config
	names          *match.HybridMatcher[target[C]]
	aliases        *match.HybridMatcher[target[C]]
	nameMaxWindow  int
	aliasMaxWindow int
	codes          map[int]map[string]struct{}
}

var (
	preprocessor = nlp.NewEnPreProcessor()
	tokenizer    = nlp.NewWhitespaceTokenizer()
)

// New indexes the contacts under the default config. extract maps a
// contact to the fields it is matched by.
func New[C any](contacts []C, extract func(C) Fields, pronouncer pronounce.Pronouncer) (*Matcher[C], error) {
	return NewWithConfig(contacts, extract, pronouncer, DefaultConfig())
}

// NewWithConfig indexes the contacts, pronouncing every variation up
// front. Construction fails if a variation cannot be pronounced or the
// phonetic weight is out of range.
func NewWithConfig[C any](contacts []C, extract func(C) Fields, pronouncer pronounce.Pronouncer, cfg Config) (*Matcher[C], error) {
	var nameTargets, aliasTargets []target[C]
	var codes map[int]map[string]struct{}
	if cfg.MetaphoneFilter {
		codes = make(map[int]map[string]struct{}, len(contacts))
	}

	nameMaxWindow, aliasMaxWindow := 1, 1
	for id, contact := range contacts {
		fields := extract(contact)

		if fields.Name != "" {
			name := preprocessor.PreProcess(fields.Name)
			variations := nameVariations(contact, name, id)
			nameMaxWindow = max(nameMaxWindow, len(variations))
			nameTargets = append(nameTargets, variations...)
			if cfg.MetaphoneFilter {
				addCodes(codes, id, name)
			}
		}
		for _, alias := range fields.Aliases {
			// Aliases are indexed as given, respecting what was passed in.
			variations := nameVariations(contact, alias, id)
			aliasMaxWindow = max(aliasMaxWindow, len(variations))
			aliasTargets = append(aliasTargets, variations...)
			if cfg.MetaphoneFilter {
				addCodes(codes, id, alias)
			}
		}
	}

	phrase := func(t target[C]) string { return t.phrase }
	names, err := match.NewHybrid(nameTargets, cfg.PhoneticWeightPercentage, phrase, pronouncer, true)
	if err != nil {
		return nil, fmt.Errorf("contact: index names: %w", err)
	}
	aliases, err := match.NewHybrid(aliasTargets, cfg.PhoneticWeightPercentage, phrase, pronouncer, true)
	if err != nil {
		return nil, fmt.Errorf("contact: index aliases: %w", err)
	}

	return &Matcher[C]{
		cfg:            cfg,
		names:          names,
		aliases:        aliases,
		nameMaxWindow:  nameMaxWindow,
		aliasMaxWindow: aliasMaxWindow,
		codes:          codes,
	}, nil
}

// Find returns the contacts matching the query over names and aliases,
// best first.
func (m *Matcher[C]) Find(query string) ([]C, error) {
	normalized := preprocessor.PreProcess(query)
	names, err := m.names.KNearestWithin(normalized, m.nameMaxWindow*m.cfg.MaxReturns, m.cfg.FindThreshold)
	if err != nil {
		return nil, fmt.Errorf("contact: find %q: %w", query, err)
	}
	aliases, err := m.aliases.KNearestWithin(normalized, m.aliasMaxWindow*m.cfg.MaxReturns, m.cfg.FindThreshold)
	if err != nil {
		return nil, fmt.Errorf("contact: find %q: %w", query, err)
	}
	return m.selectMatches(normalized, merge(names, aliases)), nil
}

// FindByName searches over contact names only.
func (m *Matcher[C]) FindByName(name string) ([]C, error) {
	normalized := preprocessor.PreProcess(name)
	candidates, err := m.names.KNearestWithin(normalized, m.nameMaxWindow*m.cfg.MaxReturns, m.cfg.FindThreshold)
	if err != nil {
		return nil, fmt.Errorf("contact: find name %q: %w", name, err)
	}
	return m.selectMatches(normalized, candidates), nil
}

// FindByAlias searches over contact aliases only.
func (m *Matcher[C]) FindByAlias(alias string) ([]C, error) {
	normalized := preprocessor.PreProcess(alias)
	candidates, err := m.aliases.KNearestWithin(normalized, m.aliasMaxWindow*m.cfg.MaxReturns, m.cfg.FindThreshold)
	if err != nil {
		return nil, fmt.Errorf("contact: find alias %q: %w", alias, err)
	}
	return m.selectMatches(normalized, candidates), nil
}

// nameVariations slides a window anchored at the beginning and the end of
// the name, one variation per token boundary.
func nameVariations[C any](contact C, name string, id int) []target[C] {
	tokens := tokenizer.Tokenize(name)
	var variations []target[C]
	for i, token := range tokens {
		variations = append(variations, target[C]{contact, name[:token.Interval.Last], id})
		if split := i + 1; split < len(tokens) {
			variations = append(variations, target[C]{contact, name[tokens[split].Interval.First:], id})
		}
	}
	return variations
}

// merge interleaves two distance-sorted candidate lists into one.
func merge[C any](a, b []match.Match[target[C]]) []match.Match[target[C]] {
	candidates := make([]match.Match[target[C]], 0, len(a)+len(b))
	for len(a) > 0 && len(b) > 0 {
		if a[0].Distance < b[0].Distance {
			candidates = append(candidates, a[0])
			a = a[1:]
		} else {
			candidates = append(candidates, b[0])
			b = b[1:]
		}
	}
	candidates = append(candidates, a...)
	return append(candidates, b...)
}

// selectMatches keeps candidates within the cutoff derived from the best
// distance, deduplicated per contact.
func (m *Matcher[C]) selectMatches(query string, candidates []match.Match[target[C]]) []C {
	if m.cfg.MetaphoneFilter {
		candidates = m.filterCandidates(query, candidates)
	}
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0].Distance
	maxDistance := max(best*m.cfg.BestDistanceMultiplier, m.cfg.MaxDistanceMarginReturns)

	dedupe := make(map[int]struct{})
	var matches []C
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
		matches = append(matches, candidate.Element.contact)
	}
	return matches
}

// filterCandidates drops candidates whose indexed phrases share no Double
// Metaphone code with the query. A query producing no codes filters
// nothing.
func (m *Matcher[C]) filterCandidates(query string, candidates []match.Match[target[C]]) []match.Match[target[C]] {
	queryCodes := phoneticCodes(query)
	if len(queryCodes) == 0 {
		return candidates
	}
	filtered := candidates[:0]
	for _, candidate := range candidates {
		if codesOverlap(queryCodes, m.codes[candidate.Element.id]) {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}

// addCodes unions the phrase's Double Metaphone codes into the contact's
// code set.
func addCodes(codes map[int]map[string]struct{}, id int, phrase string) {
	set, ok := codes[id]
	if !ok {
		set = make(map[string]struct{})
		codes[id] = set
	}
	for code := range phoneticCodes(phrase) {
		set[code] = struct{}{}
	}
}

// phoneticCodes returns the union of Double Metaphone codes over the
// phrase's words. Empty codes are excluded.
func phoneticCodes(phrase string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(phrase))
	codes := make(map[string]struct{}, len(words)*2)
	for _, word := range words {
		primary, secondary := matchr.DoubleMetaphone(word)
		if primary != "" {
			codes[primary] = struct{}{}
		}
		if secondary != "" {
			codes[secondary] = struct{}{}
		}
	}
	return codes
}

// codesOverlap reports whether the two code sets share a code.
func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}
