package speech_test

import (
	"errors"
	"testing"

	"github.com/MrWong99/phonomatch/pkg/speech"
)

func TestFromARPAbetHello(t *testing.T) {
	t.Parallel()

	pron, err := speech.FromARPAbet([]string{"HH", "EH", "L", "OW"})
	if err != nil {
		t.Fatalf("FromARPAbet() error = %v", err)
	}
	if got, want := pron.IPA(), "hɛlˠoʊ̯"; got != want {
		t.Errorf("IPA() = %q, want %q", got, want)
	}
	if got, want := pron.Len(), 5; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestFromARPAbetFolding(t *testing.T) {
	t.Parallel()

	upper, err := speech.FromARPAbet([]string{"HH", "AH0", "L", "OW1"})
	if err != nil {
		t.Fatalf("FromARPAbet() error = %v", err)
	}
	lower, err := speech.FromARPAbet([]string{"hh", "ah", "l", "ow"})
	if err != nil {
		t.Fatalf("FromARPAbet() error = %v", err)
	}
	if upper.IPA() != lower.IPA() {
		t.Errorf("stress and case folding mismatch: %q vs %q", upper.IPA(), lower.IPA())
	}
}

func TestFromARPAbetExpansions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phoneme string
		ipa     string
		phones  int
	}{
		{"CH", "tʃ", 2},
		{"JH", "dʒ", 2},
		{"EY", "eɪ̯", 2},
		{"ER", "ɝ", 1},
		{"EL", "l̩ˠ", 1},
		{"NX", "ɾ̃", 1},
		{"ENG", "ŋ̍", 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.phoneme, func(t *testing.T) {
			t.Parallel()
			pron, err := speech.FromARPAbet([]string{tt.phoneme})
			if err != nil {
				t.Fatalf("FromARPAbet(%q) error = %v", tt.phoneme, err)
			}
			if got := pron.IPA(); got != tt.ipa {
				t.Errorf("IPA() = %q, want %q", got, tt.ipa)
			}
			if got := pron.Len(); got != tt.phones {
				t.Errorf("Len() = %d, want %d", got, tt.phones)
			}
		})
	}
}

func TestFromARPAbetWordBoundary(t *testing.T) {
	t.Parallel()

	// The space phoneme is recognized but carries no phone, so it vanishes
	// between words.
	pron, err := speech.FromARPAbet([]string{"K", "AE", "T", " ", "D", "AO", "G"})
	if err != nil {
		t.Fatalf("FromARPAbet() error = %v", err)
	}
	if got, want := pron.IPA(), "kætdɔɡ"; got != want {
		t.Errorf("IPA() = %q, want %q", got, want)
	}
}

func TestFromARPAbetErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		phonemes []string
	}{
		{"unknown phoneme", []string{"ZZZ"}},
		{"stress digit out of range", []string{"AX3"}},
		{"leading word boundary", []string{" ", "K"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := speech.FromARPAbet(tt.phonemes)
			if !errors.Is(err, speech.ErrInvalidInput) {
				t.Fatalf("FromARPAbet(%v) error = %v, want ErrInvalidInput", tt.phonemes, err)
			}
		})
	}
}
