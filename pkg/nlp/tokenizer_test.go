package nlp_test

import (
	"testing"

	"github.com/MrWong99/phonomatch/pkg/nlp"
)

func values(tokens []nlp.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Value
	}
	return out
}

func TestWhitespaceTokenizer(t *testing.T) {
	t.Parallel()

	tokenizer := nlp.NewWhitespaceTokenizer()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty string", "", nil},
		{"no whitespace", "example", []string{"example"}},
		{"not ending with spaces", "  There  are some words, here! #blessed",
			[]string{"There", "are", "some", "words,", "here!", "#blessed"}},
		{"ends with spaces", "  There  are some words, here! #blessed  ",
			[]string{"There", "are", "some", "words,", "here!", "#blessed"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := values(tokenizer.Tokenize(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizerIntervals(t *testing.T) {
	t.Parallel()

	tokenizer := nlp.NewWhitespaceTokenizer()
	query := "call  mom now"
	tokens := tokenizer.Tokenize(query)
	if len(tokens) != 3 {
		t.Fatalf("Tokenize() returned %d tokens, want 3", len(tokens))
	}
	for _, tok := range tokens {
		if got := query[tok.Interval.First:tok.Interval.Last]; got != tok.Value {
			t.Errorf("interval %+v resolves to %q, want %q", tok.Interval, got, tok.Value)
		}
		if tok.Interval.Len() != len(tok.Value) {
			t.Errorf("interval length %d, want %d", tok.Interval.Len(), len(tok.Value))
		}
	}
}
