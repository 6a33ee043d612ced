// Package speech models pronunciations as sequences of phones (single
// speech sounds described by their articulatory features) and provides
// codecs between IPA text, ARPAbet phoneme lists, and that model.
//
// A [Phone] is a 16-bit value type. Consonant features (place and manner of
// articulation) and vowel features (height, backness, roundedness, rhoticity)
// overlap in the bit layout past the five bits shared by both kinds, which
// keeps phone vectors cache-resident during index construction and makes
// equality a single integer compare.
package speech

import "fmt"

// PhoneType distinguishes consonants from vowels.
type PhoneType uint8

const (
	Consonant PhoneType = iota
	Vowel
)

// String returns "consonant" or "vowel".
func (t PhoneType) String() string {
	if t == Vowel {
		return "vowel"
	}
	return "consonant"
}

// Phonation is the voice intensity of a phone.
type Phonation uint8

const (
	Voiceless Phonation = iota
	Breathy
	Slack
	Modal
	Stiff
	Creaky
	GlottalClosure
)

// PlaceOfArticulation locates a consonant's constriction.
type PlaceOfArticulation uint8

const (
	Bilabial PlaceOfArticulation = iota
	Labiodental
	Dental
	Alveolar
	PalatoAlveolar
	Retroflex
	AlveoloPalatal
	LabialPalatal
	Palatal
	PalatalVelar
	LabialVelar
	Velar
	Uvular
	Pharyngeal
	Epiglottal
	Glottal
)

// MannerOfArticulation describes how a consonant's airflow is shaped.
type MannerOfArticulation uint8

const (
	Nasal MannerOfArticulation = iota
	Plosive
	SibilantFricative
	NonSibilantFricative
	Approximant
	Flap
	Trill
	LateralFricative
	LateralApproximant
	LateralFlap
	Click
	Implosive
	Ejective
)

// VowelHeight is the vertical tongue position of a vowel.
type VowelHeight uint8

const (
	Close VowelHeight = iota
	NearClose
	CloseMid
	Mid
	OpenMid
	NearOpen
	Open
)

// VowelBackness is the horizontal tongue position of a vowel.
type VowelBackness uint8

const (
	Front VowelBackness = iota
	NearFront
	Central
	NearBack
	Back
)

// VowelRoundedness is the lip rounding of a vowel.
type VowelRoundedness uint8

const (
	Unrounded VowelRoundedness = iota
	LessRounded
	Rounded
	MoreRounded
)

// Phone bit layout. The type, phonation, and syllabic fields are shared;
// consonant and vowel fields overlap past bit 4.
//
//	bit 0      type (0 = consonant, 1 = vowel)
//	bits 1-3   phonation
//	bit 4      syllabic
//	bits 5-8   place        (consonant)
//	bits 9-12  manner       (consonant)
//	bits 5-7   height       (vowel)
//	bits 8-10  backness     (vowel)
//	bits 11-12 roundedness  (vowel)
//	bit 13     rhotic       (vowel)
const (
	typeShift, typeBits               = 0, 1
	phonationShift, phonationBits     = 1, 3
	syllabicShift, syllabicBits       = 4, 1
	placeShift, placeBits             = 5, 4
	mannerShift, mannerBits           = 9, 4
	heightShift, heightBits           = 5, 3
	backnessShift, backnessBits       = 8, 3
	roundednessShift, roundednessBits = 11, 2
	rhoticShift, rhoticBits           = 13, 1
)

func fieldMask(bits uint16) uint16 { return 1<<bits - 1 }

func decodeField(repr uint16, shift, bits uint16) uint16 {
	return (repr >> shift) & fieldMask(bits)
}

func encodeField(repr uint16, v uint16, shift, bits uint16) uint16 {
	return repr&^(fieldMask(bits)<<shift) | v<<shift
}

// Phone is a single speech sound. The zero value is a voiceless,
// non-syllabic bilabial nasal consonant; construct phones with [NewPhone]
// or decode them from IPA via [FromIPA].
//
// Phones are value objects; copying is cheap and comparison with == is
// feature-wise equality.
type Phone struct {
	repr uint16
}

// NewPhone returns a phone of the given type with all features zeroed.
func NewPhone(t PhoneType) Phone {
	return Phone{encodeField(0, uint16(t), typeShift, typeBits)}
}

// PhoneFromBits reconstructs a phone from its packed representation,
// the inverse of [Phone.Bits].
func PhoneFromBits(bits uint16) Phone { return Phone{bits} }

// Bits returns the packed 16-bit representation of the phone.
func (p Phone) Bits() uint16 { return p.repr }

// Type reports whether the phone is a consonant or a vowel.
func (p Phone) Type() PhoneType {
	return PhoneType(decodeField(p.repr, typeShift, typeBits))
}

// Phonation returns the phone's voice intensity.
func (p Phone) Phonation() Phonation {
	return Phonation(decodeField(p.repr, phonationShift, phonationBits))
}

// SetPhonation sets the phone's voice intensity.
func (p *Phone) SetPhonation(ph Phonation) {
	p.repr = encodeField(p.repr, uint16(ph), phonationShift, phonationBits)
}

// Syllabic reports whether the phone forms a syllable nucleus.
func (p Phone) Syllabic() bool {
	return decodeField(p.repr, syllabicShift, syllabicBits) != 0
}

// SetSyllabic sets whether the phone forms a syllable nucleus.
func (p *Phone) SetSyllabic(syllabic bool) {
	p.repr = encodeField(p.repr, boolBit(syllabic), syllabicShift, syllabicBits)
}

// Place returns the place of articulation. Panics if the phone is not a
// consonant.
func (p Phone) Place() PlaceOfArticulation {
	p.mustBe(Consonant, "place of articulation")
	return PlaceOfArticulation(decodeField(p.repr, placeShift, placeBits))
}

// SetPlace sets the place of articulation. Panics if the phone is not a
// consonant.
func (p *Phone) SetPlace(place PlaceOfArticulation) {
	p.mustBe(Consonant, "place of articulation")
	p.repr = encodeField(p.repr, uint16(place), placeShift, placeBits)
}

// Manner returns the manner of articulation. Panics if the phone is not a
// consonant.
func (p Phone) Manner() MannerOfArticulation {
	p.mustBe(Consonant, "manner of articulation")
	return MannerOfArticulation(decodeField(p.repr, mannerShift, mannerBits))
}

// SetManner sets the manner of articulation. Panics if the phone is not a
// consonant.
func (p *Phone) SetManner(manner MannerOfArticulation) {
	p.mustBe(Consonant, "manner of articulation")
	p.repr = encodeField(p.repr, uint16(manner), mannerShift, mannerBits)
}

// Height returns the vowel height. Panics if the phone is not a vowel.
func (p Phone) Height() VowelHeight {
	p.mustBe(Vowel, "height")
	return VowelHeight(decodeField(p.repr, heightShift, heightBits))
}

// SetHeight sets the vowel height. Panics if the phone is not a vowel.
func (p *Phone) SetHeight(h VowelHeight) {
	p.mustBe(Vowel, "height")
	p.repr = encodeField(p.repr, uint16(h), heightShift, heightBits)
}

// Backness returns the vowel backness. Panics if the phone is not a vowel.
func (p Phone) Backness() VowelBackness {
	p.mustBe(Vowel, "backness")
	return VowelBackness(decodeField(p.repr, backnessShift, backnessBits))
}

// SetBackness sets the vowel backness. Panics if the phone is not a vowel.
func (p *Phone) SetBackness(b VowelBackness) {
	p.mustBe(Vowel, "backness")
	p.repr = encodeField(p.repr, uint16(b), backnessShift, backnessBits)
}

// Roundedness returns the vowel roundedness. Panics if the phone is not a
// vowel.
func (p Phone) Roundedness() VowelRoundedness {
	p.mustBe(Vowel, "roundedness")
	return VowelRoundedness(decodeField(p.repr, roundednessShift, roundednessBits))
}

// SetRoundedness sets the vowel roundedness. Panics if the phone is not a
// vowel.
func (p *Phone) SetRoundedness(r VowelRoundedness) {
	p.mustBe(Vowel, "roundedness")
	p.repr = encodeField(p.repr, uint16(r), roundednessShift, roundednessBits)
}

// Rhotic reports whether the vowel is rhotacized. Panics if the phone is
// not a vowel.
func (p Phone) Rhotic() bool {
	p.mustBe(Vowel, "rhotic")
	return decodeField(p.repr, rhoticShift, rhoticBits) != 0
}

// SetRhotic sets whether the vowel is rhotacized. Panics if the phone is
// not a vowel.
func (p *Phone) SetRhotic(rhotic bool) {
	p.mustBe(Vowel, "rhotic")
	p.repr = encodeField(p.repr, boolBit(rhotic), rhoticShift, rhoticBits)
}

// mustBe panics when a type-specific feature is accessed on the wrong kind
// of phone. This is a programming error, not an input error: the codecs
// never produce such accesses for any input.
func (p Phone) mustBe(t PhoneType, field string) {
	if p.Type() != t {
		panic(fmt.Sprintf("speech: %s is only defined for %s phones", field, t))
	}
}

func boolBit(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// consonantBits packs a modal-voicing-free consonant representation.
// Used by the IPA letter table.
func consonantBits(ph Phonation, place PlaceOfArticulation, manner MannerOfArticulation) uint16 {
	repr := encodeField(0, uint16(Consonant), typeShift, typeBits)
	repr = encodeField(repr, uint16(ph), phonationShift, phonationBits)
	repr = encodeField(repr, uint16(place), placeShift, placeBits)
	return encodeField(repr, uint16(manner), mannerShift, mannerBits)
}

// vowelBits packs a vowel representation. Vowels default to modal voicing
// and are syllabic unless a diacritic says otherwise.
func vowelBits(h VowelHeight, b VowelBackness, r VowelRoundedness, rhotic bool) uint16 {
	repr := encodeField(0, uint16(Vowel), typeShift, typeBits)
	repr = encodeField(repr, uint16(Modal), phonationShift, phonationBits)
	repr = encodeField(repr, 1, syllabicShift, syllabicBits)
	repr = encodeField(repr, uint16(h), heightShift, heightBits)
	repr = encodeField(repr, uint16(b), backnessShift, backnessBits)
	repr = encodeField(repr, uint16(r), roundednessShift, roundednessBits)
	return encodeField(repr, boolBit(rhotic), rhoticShift, rhoticBits)
}
