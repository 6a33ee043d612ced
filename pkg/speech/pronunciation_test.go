package speech_test

import (
	"testing"

	"github.com/MrWong99/phonomatch/pkg/speech"
)

func TestPronunciationSubrange(t *testing.T) {
	t.Parallel()

	pron, err := speech.FromIPA("hɛlˠoʊ̯")
	if err != nil {
		t.Fatalf("FromIPA() error = %v", err)
	}

	tests := []struct {
		name        string
		first, last int
		ipa         string
		phones      int
	}{
		{"full", 0, 5, "hɛlˠoʊ̯", 5},
		{"prefix", 0, 2, "hɛ", 2},
		{"modifiers travel with their phone", 2, 5, "lˠoʊ̯", 3},
		{"suffix", 4, 5, "ʊ̯", 1},
		{"empty", 3, 3, "", 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sub := pron.Subrange(tt.first, tt.last)
			if got := sub.IPA(); got != tt.ipa {
				t.Errorf("Subrange(%d, %d).IPA() = %q, want %q", tt.first, tt.last, got, tt.ipa)
			}
			if got := sub.Len(); got != tt.phones {
				t.Errorf("Subrange(%d, %d).Len() = %d, want %d", tt.first, tt.last, got, tt.phones)
			}
			for i := 0; i < sub.Len(); i++ {
				if sub.At(i) != pron.At(tt.first+i) {
					t.Errorf("Subrange phone %d differs from source phone %d", i, tt.first+i)
				}
			}
		})
	}
}

func TestPronunciationSubrangeReparses(t *testing.T) {
	t.Parallel()

	pron, err := speech.FromIPA("kæn̩ʊ̯")
	if err != nil {
		t.Fatalf("FromIPA() error = %v", err)
	}
	sub := pron.Subrange(1, 4)

	again, err := speech.FromIPA(sub.IPA())
	if err != nil {
		t.Fatalf("FromIPA(subrange) error = %v", err)
	}
	if got, want := again.Len(), sub.Len(); got != want {
		t.Fatalf("reparsed Len() = %d, want %d", got, want)
	}
	for i := 0; i < sub.Len(); i++ {
		if again.At(i) != sub.At(i) {
			t.Errorf("reparsed phone %d differs", i)
		}
	}
}

func TestPronunciationSubrangeOutOfBoundsPanics(t *testing.T) {
	t.Parallel()

	pron, err := speech.FromIPA("kæt")
	if err != nil {
		t.Fatalf("FromIPA() error = %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic, got none")
		}
	}()
	pron.Subrange(1, 4)
}

func TestPronunciationPhonesIsACopy(t *testing.T) {
	t.Parallel()

	pron, err := speech.FromIPA("kæt")
	if err != nil {
		t.Fatalf("FromIPA() error = %v", err)
	}
	phones := pron.Phones()
	phones[0] = speech.NewPhone(speech.Vowel)
	if pron.At(0) == phones[0] {
		t.Error("mutating Phones() result changed the pronunciation")
	}
}
