package speech_test

import (
	"errors"
	"testing"

	"github.com/MrWong99/phonomatch/pkg/speech"
)

func TestFromIPAHello(t *testing.T) {
	t.Parallel()

	pron, err := speech.FromIPA("hɛlˠoʊ̯")
	if err != nil {
		t.Fatalf("FromIPA() error = %v", err)
	}
	if got, want := pron.Len(), 5; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := pron.IPA(), "hɛlˠoʊ̯"; got != want {
		t.Errorf("IPA() = %q, want %q", got, want)
	}

	h := pron.At(0)
	if got, want := h.Type(), speech.Consonant; got != want {
		t.Errorf("phone 0 Type() = %v, want %v", got, want)
	}
	if got, want := h.Place(), speech.Glottal; got != want {
		t.Errorf("phone 0 Place() = %v, want %v", got, want)
	}
	if got, want := h.Manner(), speech.NonSibilantFricative; got != want {
		t.Errorf("phone 0 Manner() = %v, want %v", got, want)
	}
	if got, want := h.Phonation(), speech.Voiceless; got != want {
		t.Errorf("phone 0 Phonation() = %v, want %v", got, want)
	}

	e := pron.At(1)
	if got, want := e.Type(), speech.Vowel; got != want {
		t.Fatalf("phone 1 Type() = %v, want %v", got, want)
	}
	if got, want := e.Height(), speech.OpenMid; got != want {
		t.Errorf("phone 1 Height() = %v, want %v", got, want)
	}
	if got, want := e.Backness(), speech.Front; got != want {
		t.Errorf("phone 1 Backness() = %v, want %v", got, want)
	}
	if !e.Syllabic() {
		t.Error("phone 1 Syllabic() = false, want true")
	}

	if got, want := pron.At(2).Manner(), speech.LateralApproximant; got != want {
		t.Errorf("phone 2 Manner() = %v, want %v", got, want)
	}

	glide := pron.At(4)
	if glide.Syllabic() {
		t.Error("phone 4 Syllabic() = true, want false")
	}
	if got, want := glide.Backness(), speech.NearBack; got != want {
		t.Errorf("phone 4 Backness() = %v, want %v", got, want)
	}
	if got, want := glide.Roundedness(), speech.Rounded; got != want {
		t.Errorf("phone 4 Roundedness() = %v, want %v", got, want)
	}
}

func TestFromIPAModifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ipa   string
		check func(t *testing.T, p speech.Phone)
	}{
		{"syllabic below", "n̩", func(t *testing.T, p speech.Phone) {
			if !p.Syllabic() {
				t.Error("Syllabic() = false, want true")
			}
		}},
		{"syllabic above", "ŋ̍", func(t *testing.T, p speech.Phone) {
			if !p.Syllabic() {
				t.Error("Syllabic() = false, want true")
			}
		}},
		{"devoiced voiced becomes slack", "n̥", func(t *testing.T, p speech.Phone) {
			if got, want := p.Phonation(), speech.Slack; got != want {
				t.Errorf("Phonation() = %v, want %v", got, want)
			}
		}},
		{"devoiced voiceless stays voiceless", "s̥", func(t *testing.T, p speech.Phone) {
			if got, want := p.Phonation(), speech.Voiceless; got != want {
				t.Errorf("Phonation() = %v, want %v", got, want)
			}
		}},
		{"voiced voiceless becomes modal", "s̬", func(t *testing.T, p speech.Phone) {
			if got, want := p.Phonation(), speech.Modal; got != want {
				t.Errorf("Phonation() = %v, want %v", got, want)
			}
		}},
		{"voiced voiced becomes stiff", "z̬", func(t *testing.T, p speech.Phone) {
			if got, want := p.Phonation(), speech.Stiff; got != want {
				t.Errorf("Phonation() = %v, want %v", got, want)
			}
		}},
		{"breathy", "b̤", func(t *testing.T, p speech.Phone) {
			if got, want := p.Phonation(), speech.Breathy; got != want {
				t.Errorf("Phonation() = %v, want %v", got, want)
			}
		}},
		{"creaky", "a̰", func(t *testing.T, p speech.Phone) {
			if got, want := p.Phonation(), speech.Creaky; got != want {
				t.Errorf("Phonation() = %v, want %v", got, want)
			}
		}},
		{"more rounded from unrounded", "a̹", func(t *testing.T, p speech.Phone) {
			if got, want := p.Roundedness(), speech.LessRounded; got != want {
				t.Errorf("Roundedness() = %v, want %v", got, want)
			}
		}},
		{"more rounded twice", "a̹̹", func(t *testing.T, p speech.Phone) {
			if got, want := p.Roundedness(), speech.Rounded; got != want {
				t.Errorf("Roundedness() = %v, want %v", got, want)
			}
		}},
		{"more rounded saturates", "u̹̹", func(t *testing.T, p speech.Phone) {
			if got, want := p.Roundedness(), speech.MoreRounded; got != want {
				t.Errorf("Roundedness() = %v, want %v", got, want)
			}
		}},
		{"less rounded from rounded", "u̜", func(t *testing.T, p speech.Phone) {
			if got, want := p.Roundedness(), speech.LessRounded; got != want {
				t.Errorf("Roundedness() = %v, want %v", got, want)
			}
		}},
		{"less rounded saturates", "a̜", func(t *testing.T, p speech.Phone) {
			if got, want := p.Roundedness(), speech.Unrounded; got != want {
				t.Errorf("Roundedness() = %v, want %v", got, want)
			}
		}},
		{"rhotacized", "ə˞", func(t *testing.T, p speech.Phone) {
			if !p.Rhotic() {
				t.Error("Rhotic() = false, want true")
			}
		}},
		{"non-syllabic vowel", "ʊ̯", func(t *testing.T, p speech.Phone) {
			if p.Syllabic() {
				t.Error("Syllabic() = true, want false")
			}
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pron, err := speech.FromIPA(tt.ipa)
			if err != nil {
				t.Fatalf("FromIPA(%q) error = %v", tt.ipa, err)
			}
			if pron.Len() != 1 {
				t.Fatalf("Len() = %d, want 1", pron.Len())
			}
			tt.check(t, pron.At(0))
		})
	}
}

func TestFromIPAErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ipa  string
	}{
		{"leading modifier", "̩n"},
		{"leading space", " hɛ"},
		{"leading unknown", "Xkæt"},
		{"rounding on consonant", "t̹"},
		{"rhotic on consonant", "t˞"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := speech.FromIPA(tt.ipa)
			if !errors.Is(err, speech.ErrInvalidInput) {
				t.Fatalf("FromIPA(%q) error = %v, want ErrInvalidInput", tt.ipa, err)
			}
		})
	}
}

func TestFromIPADropsUnknownCodePoints(t *testing.T) {
	t.Parallel()

	// The tie bar carries no feature information and is dropped from the
	// retained text; the velarization mark is retained as written.
	pron, err := speech.FromIPA("k͡æt")
	if err != nil {
		t.Fatalf("FromIPA() error = %v", err)
	}
	if got, want := pron.Len(), 3; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	if got, want := pron.IPA(), "kæt"; got != want {
		t.Errorf("IPA() = %q, want %q", got, want)
	}

	dark, err := speech.FromIPA("lˠ")
	if err != nil {
		t.Fatalf("FromIPA() error = %v", err)
	}
	if got, want := dark.IPA(), "lˠ"; got != want {
		t.Errorf("IPA() = %q, want %q", got, want)
	}
	if got, want := dark.Len(), 1; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestFromIPAEmpty(t *testing.T) {
	t.Parallel()

	pron, err := speech.FromIPA("")
	if err != nil {
		t.Fatalf("FromIPA(\"\") error = %v", err)
	}
	if !pron.Empty() {
		t.Errorf("Empty() = false, want true")
	}
}
