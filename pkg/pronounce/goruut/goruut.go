// Package goruut wraps the goruut grapheme-to-phoneme engine as a
// pronouncer, so arbitrary phrases can be matched without shipping a
// lexicon.
package goruut

import (
	"fmt"
	"strings"

	"github.com/neurlang/goruut/lib"
	"github.com/neurlang/goruut/models/requests"

	"github.com/MrWong99/phonomatch/pkg/pronounce"
	"github.com/MrWong99/phonomatch/pkg/speech"
)

// Pronouncer pronounces phrases through goruut. The engine is stateless
// per sentence, so one instance can serve concurrent callers.
type Pronouncer struct {
	phonemizer *lib.Phonemizer
	language   string
}

var _ pronounce.Pronouncer = (*Pronouncer)(nil)

// New creates an English pronouncer.
func New() *Pronouncer {
	return NewLanguage("English")
}

// NewLanguage creates a pronouncer for one of goruut's languages.
func NewLanguage(language string) *Pronouncer {
	return &Pronouncer{
		phonemizer: lib.NewPhonemizer(nil),
		language:   language,
	}
}

// suprasegmentals carry stress and length, which the phone model does not
// represent. A leading stress mark would otherwise reject the whole word.
var suprasegmentals = strings.NewReplacer("ˈ", "", "ˌ", "", "ː", "", "ˑ", "")

// Pronounce phonemizes the phrase and decodes the resulting IPA.
func (p *Pronouncer) Pronounce(phrase string) (speech.Pronunciation, error) {
	resp := p.phonemizer.Sentence(requests.PhonemizeSentence{
		Language: p.language,
		Sentence: phrase,
	})

	var ipa strings.Builder
	for _, word := range resp.Words {
		ipa.WriteString(word.Phonetic)
	}

	pron, err := speech.FromIPA(suprasegmentals.Replace(ipa.String()))
	if err != nil {
		return speech.Pronunciation{}, fmt.Errorf("goruut: %q: %w", phrase, err)
	}
	return pron, nil
}
