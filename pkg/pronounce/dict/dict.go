// Package dict implements a pronouncer backed by a CMU-style ARPAbet
// lexicon loaded from a tab-separated file: word<TAB>phoneme phoneme ...
// Lines starting with # or ;;; are comments.
package dict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MrWong99/phonomatch/pkg/pronounce"
	"github.com/MrWong99/phonomatch/pkg/speech"
)

// ErrUnknownWord reports a phrase word that has no lexicon entry.
var ErrUnknownWord = errors.New("word not in dictionary")

// Dict is a deterministic dictionary pronouncer. Lookups are
// case-insensitive; multi-word phrases are pronounced word by word with a
// word-boundary phoneme between them.
type Dict struct {
	entries map[string][]string
}

var _ pronounce.Pronouncer = (*Dict)(nil)

// New creates an empty dictionary.
func New() *Dict {
	return &Dict{entries: make(map[string][]string)}
}

// Add sets the ARPAbet phoneme sequence for a word, replacing any earlier
// entry.
func (d *Dict) Add(word string, phonemes []string) {
	d.entries[strings.ToLower(word)] = phonemes
}

// Len returns the number of words in the dictionary.
func (d *Dict) Len() int { return len(d.entries) }

// Load reads a lexicon from a tab-separated reader.
func Load(r io.Reader) (*Dict, error) {
	d := New()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";;;") {
			continue
		}

		word, phonemes, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("dict: line %d: expected word<TAB>phonemes", lineNum)
		}
		fields := strings.Fields(phonemes)
		if len(fields) == 0 {
			return nil, fmt.Errorf("dict: line %d: no phonemes for %q", lineNum, word)
		}
		d.Add(word, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dict: read: %w", err)
	}
	return d, nil
}

// LoadFile reads a lexicon from a file path.
func LoadFile(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dict: open: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Phonemes returns the ARPAbet sequence for a single word.
func (d *Dict) Phonemes(word string) ([]string, bool) {
	phonemes, ok := d.entries[strings.ToLower(word)]
	return phonemes, ok
}

// Pronounce looks up every word of the phrase and decodes the combined
// ARPAbet sequence. A word without an entry is an error wrapping
// [ErrUnknownWord].
func (d *Dict) Pronounce(phrase string) (speech.Pronunciation, error) {
	var phonemes []string
	for i, word := range strings.Fields(phrase) {
		entry, ok := d.Phonemes(word)
		if !ok {
			return speech.Pronunciation{}, fmt.Errorf("dict: %q: %w", word, ErrUnknownWord)
		}
		if i > 0 {
			phonemes = append(phonemes, " ")
		}
		phonemes = append(phonemes, entry...)
	}
	return speech.FromARPAbet(phonemes)
}
