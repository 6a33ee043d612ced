package match_test

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/MrWong99/phonomatch/pkg/distance"
	"github.com/MrWong99/phonomatch/pkg/match"
	"github.com/MrWong99/phonomatch/pkg/speech"
)

// ipaPronouncer is a fixture pronouncer backed by a fixed lexicon.
type ipaPronouncer map[string]string

func (p ipaPronouncer) Pronounce(phrase string) (speech.Pronunciation, error) {
	ipa, ok := p[phrase]
	if !ok {
		return speech.Pronunciation{}, fmt.Errorf("no pronunciation for %q", phrase)
	}
	return speech.FromIPA(ipa)
}

var testLexicon = ipaPronouncer{
	"hello":  "hɛlˠoʊ̯",
	"yellow": "jɛlˠoʊ̯",
	"cat":    "kæt",
	"bat":    "bæt",
	"cart":   "kɑrt",
	"dog":    "dɔɡ",
}

func identity(s string) string { return s }

func stringMetric(a, b string) float64 {
	return float64(distance.String(a, b))
}

func randomWord(rng *rand.Rand) string {
	letters := []rune("abcdefgh")
	n := 2 + rng.Intn(6)
	word := make([]rune, n)
	for i := range word {
		word[i] = letters[rng.Intn(len(letters))]
	}
	return string(word)
}

func TestLinearAcceleratedEquivalence(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	targets := make([]string, 200)
	for i := range targets {
		targets[i] = randomWord(rng)
	}

	linear := match.NewLinear(targets, identity, stringMetric)
	accelerated := match.NewAccelerated(targets, identity, stringMetric)

	if linear.Len() != accelerated.Len() {
		t.Fatalf("Len mismatch: %d vs %d", linear.Len(), accelerated.Len())
	}

	for q := 0; q < 30; q++ {
		query := randomWord(rng)
		for _, k := range []int{1, 5, 20} {
			for _, limit := range []float64{2, 5, math.Inf(1)} {
				lm, err := linear.KNearestWithin(query, k, limit)
				if err != nil {
					t.Fatalf("linear KNearestWithin error = %v", err)
				}
				am, err := accelerated.KNearestWithin(query, k, limit)
				if err != nil {
					t.Fatalf("accelerated KNearestWithin error = %v", err)
				}
				if len(lm) != len(am) {
					t.Fatalf("query %q k=%d limit=%v: %d vs %d matches", query, k, limit, len(lm), len(am))
				}
				for i := range lm {
					if lm[i].Distance != am[i].Distance {
						t.Fatalf("query %q match %d: distance %v vs %v", query, i, lm[i].Distance, am[i].Distance)
					}
				}
			}
		}
	}
}

func TestKNearestRejectsNonPositiveK(t *testing.T) {
	t.Parallel()

	linear := match.NewLinear([]string{"a"}, identity, stringMetric)
	accelerated := match.NewAccelerated([]string{"a"}, identity, stringMetric)

	for _, k := range []int{0, -1} {
		if _, err := linear.KNearest("a", k); !errors.Is(err, match.ErrNonPositiveK) {
			t.Errorf("linear KNearest(k=%d) error = %v, want ErrNonPositiveK", k, err)
		}
		if _, err := accelerated.KNearestWithin("a", k, 1); !errors.Is(err, match.ErrNonPositiveK) {
			t.Errorf("accelerated KNearestWithin(k=%d) error = %v, want ErrNonPositiveK", k, err)
		}
	}
}

func TestLinearEmpty(t *testing.T) {
	t.Parallel()

	m := match.NewLinear(nil, identity, stringMetric)
	if !m.Empty() {
		t.Error("Empty() = false, want true")
	}
	if _, ok := m.Nearest("x"); ok {
		t.Error("Nearest on empty matcher found a match")
	}
}

func TestLinearCustomExtraction(t *testing.T) {
	t.Parallel()

	type contact struct {
		ID   int
		Name string
	}
	targets := []contact{{1, "andrew"}, {2, "andy"}, {3, "bert"}}

	m := match.NewLinear(targets, func(c contact) string { return c.Name }, stringMetric)
	got, ok := m.Nearest("andi")
	if !ok {
		t.Fatal("Nearest() found nothing")
	}
	if got.Element.ID != 2 {
		t.Errorf("Nearest(andi).ID = %d, want 2", got.Element.ID)
	}
}

func TestStringMatcherNormalization(t *testing.T) {
	t.Parallel()

	for _, accelerated := range []bool{false, true} {
		m := match.NewString([]string{"cat", "dog", "cart"}, identity, accelerated)

		got, ok := m.Nearest("bat")
		if !ok {
			t.Fatal("Nearest() found nothing")
		}
		if got.Element != "cat" {
			t.Errorf("Nearest(bat) = %q, want cat", got.Element)
		}
		// One of three query runes substituted.
		if want := 1.0 / 3.0; math.Abs(got.Distance-want) > 1e-12 {
			t.Errorf("Nearest(bat).Distance = %v, want %v", got.Distance, want)
		}

		if _, ok := m.NearestWithin("bat", 0.2); ok {
			t.Error("NearestWithin(bat, 0.2) found a match, want none")
		}
		if mm, ok := m.NearestWithin("bat", 0.4); !ok || mm.Element != "cat" {
			t.Errorf("NearestWithin(bat, 0.4) = (%v, %v), want (cat, true)", mm.Element, ok)
		}
		if _, ok := m.NearestWithin("bat", -1); ok {
			t.Error("NearestWithin with negative limit found a match")
		}
	}
}

func TestStringMatcherEmptyQueryScale(t *testing.T) {
	t.Parallel()

	m := match.NewString([]string{"cat"}, identity, false)

	// A zero-length query would zero the scale; it falls back to 1 so the
	// raw distance comes through.
	got, ok := m.Nearest("")
	if !ok {
		t.Fatal("Nearest() found nothing")
	}
	if got.Distance != 3 {
		t.Errorf("Nearest(\"\").Distance = %v, want 3", got.Distance)
	}
}

func TestPhoneticMatcher(t *testing.T) {
	t.Parallel()

	targets := []string{"hello", "cat", "dog"}
	m, err := match.NewPhonetic(targets, identity, testLexicon, true)
	if err != nil {
		t.Fatalf("NewPhonetic() error = %v", err)
	}

	got, ok, err := m.Nearest("yellow")
	if err != nil {
		t.Fatalf("Nearest() error = %v", err)
	}
	if !ok || got.Element != "hello" {
		t.Fatalf("Nearest(yellow) = (%v, %v), want (hello, true)", got.Element, ok)
	}

	// The query pronunciation has 5 phones and only the first consonant
	// differs, so the normalized distance is the j/h substitution over 5.
	h := distance.Embed(mustIPA(t, "h").At(0))
	j := distance.Embed(mustIPA(t, "j").At(0))
	var raw float64
	for i := 0; i < 3; i++ {
		d := float64(h.V[i] - j.V[i])
		raw += d * d
	}
	want := math.Sqrt(raw) / 5
	if math.Abs(got.Distance-want) > 1e-9 {
		t.Errorf("Nearest(yellow).Distance = %v, want %v", got.Distance, want)
	}
}

func TestPhoneticMatcherUnknownWords(t *testing.T) {
	t.Parallel()

	if _, err := match.NewPhonetic([]string{"zebra"}, identity, testLexicon, false); err == nil {
		t.Error("NewPhonetic with unknown target succeeded, want error")
	}

	m, err := match.NewPhonetic([]string{"cat"}, identity, testLexicon, false)
	if err != nil {
		t.Fatalf("NewPhonetic() error = %v", err)
	}
	if _, err := m.KNearest("zebra", 1); err == nil {
		t.Error("KNearest with unknown query succeeded, want error")
	}
}

func TestHybridMatcher(t *testing.T) {
	t.Parallel()

	targets := []string{"cat", "dog", "hello"}
	m, err := match.NewHybrid(targets, 0.7, identity, testLexicon, true)
	if err != nil {
		t.Fatalf("NewHybrid() error = %v", err)
	}
	if got := m.Weight(); got != 0.7 {
		t.Errorf("Weight() = %v, want 0.7", got)
	}

	got, ok, err := m.Nearest("bat")
	if err != nil {
		t.Fatalf("Nearest() error = %v", err)
	}
	if !ok || got.Element != "cat" {
		t.Fatalf("Nearest(bat) = (%v, %v), want (cat, true)", got.Element, ok)
	}

	// Raw hybrid distance over the weighted query size.
	raw := 0.7*distance.Phonetic(mustIPA(t, "bæt"), mustIPA(t, "kæt")) + 0.3*float64(distance.String("bat", "cat"))
	want := raw / (0.7*3 + 0.3*3)
	if math.Abs(got.Distance-want) > 1e-9 {
		t.Errorf("Nearest(bat).Distance = %v, want %v", got.Distance, want)
	}
}

func TestHybridMatcherWeightRange(t *testing.T) {
	t.Parallel()

	_, err := match.NewHybrid([]string{"cat"}, 1.5, identity, testLexicon, false)
	if !errors.Is(err, distance.ErrWeightRange) {
		t.Errorf("NewHybrid(1.5) error = %v, want ErrWeightRange", err)
	}
}

func mustIPA(t *testing.T, ipa string) speech.Pronunciation {
	t.Helper()
	pron, err := speech.FromIPA(ipa)
	if err != nil {
		t.Fatalf("FromIPA(%q) error = %v", ipa, err)
	}
	return pron
}
