package distance

import (
	"math"

	"github.com/MrWong99/phonomatch/pkg/speech"
)

// The phoneme embedding follows PatPho (Li & MacWhinney 2002), a
// phonological pattern generator for neural networks:
// http://blclab.org/wp-content/uploads/2013/02/patpho.pdf

// PhonemeVector is the three-dimensional PatPho embedding of a phone plus
// its syllabic flag. Vectors compare equal when all four components do.
type PhonemeVector struct {
	V        [3]float32
	Syllabic bool
}

func consonantVector(p speech.Phone) PhonemeVector {
	var v [3]float32

	switch p.Phonation() {
	case speech.Voiceless, speech.GlottalClosure:
		v[0] = 1.000
	default:
		v[0] = 0.750
	}

	switch p.Place() {
	case speech.Bilabial:
		v[1] = 0.450
	case speech.Labiodental:
		v[1] = 0.528
	case speech.Dental:
		v[1] = 0.606
	case speech.Alveolar:
		v[1] = 0.684
	case speech.PalatoAlveolar, speech.Retroflex, speech.AlveoloPalatal:
		v[1] = 0.762
	case speech.Palatal, speech.LabialPalatal, speech.PalatalVelar:
		v[1] = 0.841
	case speech.Velar, speech.LabialVelar, speech.Uvular:
		v[1] = 0.921
	case speech.Pharyngeal, speech.Epiglottal, speech.Glottal:
		v[1] = 1.000
	}

	switch p.Manner() {
	case speech.Nasal:
		v[2] = 0.644
	case speech.Plosive, speech.Click, speech.Implosive, speech.Ejective:
		v[2] = 0.733
	case speech.SibilantFricative, speech.NonSibilantFricative:
		v[2] = 0.822
	case speech.Approximant, speech.Flap, speech.Trill:
		v[2] = 0.911
	case speech.LateralFricative, speech.LateralApproximant, speech.LateralFlap:
		v[2] = 1.000
	}

	return PhonemeVector{V: v, Syllabic: p.Syllabic()}
}

func vowelVector(p speech.Phone) PhonemeVector {
	var v [3]float32

	v[0] = 0.100

	switch p.Backness() {
	case speech.Front, speech.NearFront:
		v[1] = 0.100
	case speech.Central:
		v[1] = 0.175
	case speech.NearBack, speech.Back:
		v[1] = 0.250
	}

	switch p.Height() {
	case speech.Close, speech.NearClose:
		v[2] = 0.100
	case speech.CloseMid:
		v[2] = 0.185
	case speech.Mid:
		v[2] = 0.270
	case speech.OpenMid:
		v[2] = 0.355
	case speech.NearOpen, speech.Open:
		v[2] = 0.444
	}

	return PhonemeVector{V: v, Syllabic: p.Syllabic()}
}

// Embed converts a phone to its PatPho phoneme vector.
func Embed(p speech.Phone) PhonemeVector {
	if p.Type() == speech.Consonant {
		return consonantVector(p)
	}
	return vowelVector(p)
}

// EmbedPronunciation embeds every phone of a pronunciation, in order.
func EmbedPronunciation(pron speech.Pronunciation) []PhonemeVector {
	out := make([]PhonemeVector, pron.Len())
	for i := range out {
		out[i] = Embed(pron.At(i))
	}
	return out
}

// phonemeSub is the substitution cost between two phoneme vectors, the L2
// distance of the embeddings.
func phonemeSub(a, b PhonemeVector) float64 {
	var sumSq float64
	for i := 0; i < 3; i++ {
		diff := float64(a.V[i] - b.V[i])
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq)
}

// phonemeCost is the insertion/deletion cost of a phoneme. Dropping a
// syllable nucleus hurts more than dropping a glide or consonant.
func phonemeCost(p PhonemeVector) float64 {
	if p.Syllabic {
		return 0.5
	}
	return 0.25
}

// PhoneticVectors is the phonetic edit distance between two embedded
// pronunciations.
func PhoneticVectors(a, b []PhonemeVector) float64 {
	l := Levenshtein[PhonemeVector, float64]{Sub: phonemeSub, Cost: phonemeCost}
	return l.Distance(a, b)
}

// Phonetic is the phonetic edit distance between two pronunciations.
// Callers comparing one pronunciation against many should embed once with
// [EmbedPronunciation] and use [PhoneticVectors].
func Phonetic(a, b speech.Pronunciation) float64 {
	return PhoneticVectors(EmbedPronunciation(a), EmbedPronunciation(b))
}
