// Package pronounce defines the pronouncer contract used by the matchers
// and a memoizing wrapper. Concrete pronouncers live in the subpackages:
// dict (ARPAbet lexicon files), goruut (grapheme-to-phoneme engine), and
// pgdict (PostgreSQL-backed lexicon).
package pronounce

import (
	"sync"

	"github.com/MrWong99/phonomatch/pkg/speech"
)

// Pronouncer turns an English phrase into its pronunciation. Implementations
// must be deterministic: the same phrase always yields the same
// pronunciation, so results may be cached and targets pronounced once.
type Pronouncer interface {
	Pronounce(phrase string) (speech.Pronunciation, error)
}

// Func adapts a function to the [Pronouncer] interface.
type Func func(phrase string) (speech.Pronunciation, error)

func (f Func) Pronounce(phrase string) (speech.Pronunciation, error) {
	return f(phrase)
}

// Cached memoizes another pronouncer. Matchers pronounce the query on every
// call; wrapping the pronouncer makes repeated queries cheap. Safe for
// concurrent use. Errors are not cached.
type Cached struct {
	inner Pronouncer

	mu      sync.RWMutex
	results map[string]speech.Pronunciation
}

// NewCached wraps a pronouncer with an unbounded memo table.
func NewCached(inner Pronouncer) *Cached {
	return &Cached{
		inner:   inner,
		results: make(map[string]speech.Pronunciation),
	}
}

func (c *Cached) Pronounce(phrase string) (speech.Pronunciation, error) {
	c.mu.RLock()
	pron, ok := c.results[phrase]
	c.mu.RUnlock()
	if ok {
		return pron, nil
	}

	pron, err := c.inner.Pronounce(phrase)
	if err != nil {
		return speech.Pronunciation{}, err
	}

	c.mu.Lock()
	c.results[phrase] = pron
	c.mu.Unlock()
	return pron, nil
}

// Size returns the number of memoized phrases.
func (c *Cached) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}
