package nlp

import "regexp"

// Interval is a half-open [First, Last) byte range into the tokenized
// string.
type Interval struct {
	First, Last int
}

// Len returns the interval's length in bytes.
func (i Interval) Len() int { return i.Last - i.First }

// Token is a substring of the tokenized string with its location.
type Token struct {
	Value    string
	Interval Interval
}

// Tokenizer splits a string into tokens.
type Tokenizer interface {
	Tokenize(query string) []Token
}

// SplittingTokenizer tokenizes by splitting on a regexp; the separators
// themselves are discarded and empty tokens never emitted.
type SplittingTokenizer struct {
	pattern *regexp.Regexp
}

// NewSplittingTokenizer creates a tokenizer splitting on pattern.
func NewSplittingTokenizer(pattern *regexp.Regexp) *SplittingTokenizer {
	return &SplittingTokenizer{pattern: pattern}
}

func (t *SplittingTokenizer) Tokenize(query string) []Token {
	var result []Token
	boundary := 0
	for _, m := range t.pattern.FindAllStringIndex(query, -1) {
		if boundary < m[0] {
			result = append(result, Token{
				Value:    query[boundary:m[0]],
				Interval: Interval{First: boundary, Last: m[0]},
			})
		}
		boundary = m[1]
	}
	if boundary < len(query) {
		result = append(result, Token{
			Value:    query[boundary:],
			Interval: Interval{First: boundary, Last: len(query)},
		})
	}
	return result
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// NewWhitespaceTokenizer creates a tokenizer splitting on whitespace runs.
func NewWhitespaceTokenizer() *SplittingTokenizer {
	return NewSplittingTokenizer(whitespacePattern)
}
