package speech

import (
	"errors"
	"fmt"
)

// ErrInvalidInput reports IPA or ARPAbet text the codec cannot interpret.
// Returned errors wrap it, so callers match with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ipaLetters maps each IPA base letter to its packed phone representation.
// Voiced letters carry modal phonation; vowels are additionally syllabic.
var ipaLetters = map[rune]uint16{
	// Pulmonic consonants

	// Bilabial
	'p': consonantBits(Voiceless, Bilabial, Plosive),
	'b': consonantBits(Modal, Bilabial, Plosive),
	'm': consonantBits(Modal, Bilabial, Nasal),
	'ʙ': consonantBits(Modal, Bilabial, Trill),
	'ɸ': consonantBits(Voiceless, Bilabial, NonSibilantFricative),
	'β': consonantBits(Modal, Bilabial, NonSibilantFricative),

	// Labiodental
	'ɱ': consonantBits(Modal, Labiodental, Nasal),
	'ⱱ': consonantBits(Modal, Labiodental, Flap),
	'f': consonantBits(Voiceless, Labiodental, NonSibilantFricative),
	'v': consonantBits(Modal, Labiodental, NonSibilantFricative),
	'ʋ': consonantBits(Modal, Labiodental, Approximant),

	// Dental
	'θ': consonantBits(Voiceless, Dental, NonSibilantFricative),
	'ð': consonantBits(Modal, Dental, NonSibilantFricative),

	// Alveolar
	't': consonantBits(Voiceless, Alveolar, Plosive),
	'd': consonantBits(Modal, Alveolar, Plosive),
	'n': consonantBits(Modal, Alveolar, Nasal),
	'r': consonantBits(Modal, Alveolar, Trill),
	'ɾ': consonantBits(Modal, Alveolar, Flap),
	'ɺ': consonantBits(Modal, Alveolar, LateralFlap),
	's': consonantBits(Voiceless, Alveolar, SibilantFricative),
	'z': consonantBits(Modal, Alveolar, SibilantFricative),
	'ɹ': consonantBits(Modal, Alveolar, Approximant),
	'ɬ': consonantBits(Voiceless, Alveolar, LateralFricative),
	'ɮ': consonantBits(Modal, Alveolar, LateralFricative),
	'l': consonantBits(Modal, Alveolar, LateralApproximant),

	// Palato-alveolar
	'ʃ': consonantBits(Voiceless, PalatoAlveolar, SibilantFricative),
	'ʒ': consonantBits(Modal, PalatoAlveolar, SibilantFricative),

	// Retroflex
	'ʈ': consonantBits(Voiceless, Retroflex, Plosive),
	'ɖ': consonantBits(Modal, Retroflex, Plosive),
	'ɳ': consonantBits(Modal, Retroflex, Nasal),
	'ɽ': consonantBits(Modal, Retroflex, Flap),
	'ʂ': consonantBits(Voiceless, Retroflex, SibilantFricative),
	'ʐ': consonantBits(Modal, Retroflex, SibilantFricative),
	'ɻ': consonantBits(Modal, Retroflex, Approximant),
	'ɭ': consonantBits(Modal, Retroflex, LateralApproximant),

	// Alveolo-palatal
	'ɕ': consonantBits(Voiceless, AlveoloPalatal, SibilantFricative),
	'ʑ': consonantBits(Modal, AlveoloPalatal, SibilantFricative),

	// Labial-palatal
	'ɥ': consonantBits(Modal, LabialPalatal, Approximant),

	// Palatal
	'c': consonantBits(Voiceless, Palatal, Plosive),
	'ɟ': consonantBits(Modal, Palatal, Plosive),
	'ɲ': consonantBits(Modal, Palatal, Nasal),
	'ç': consonantBits(Voiceless, Palatal, NonSibilantFricative),
	'ʝ': consonantBits(Modal, Palatal, NonSibilantFricative),
	'j': consonantBits(Modal, Palatal, Approximant),
	'ʎ': consonantBits(Modal, Palatal, LateralApproximant),

	// Palatal-velar
	'ɧ': consonantBits(Voiceless, PalatalVelar, NonSibilantFricative),

	// Labial-velar
	'ʍ': consonantBits(Voiceless, LabialVelar, Approximant),
	'w': consonantBits(Modal, LabialVelar, Approximant),

	// Velar
	'k': consonantBits(Voiceless, Velar, Plosive),
	'ɡ': consonantBits(Modal, Velar, Plosive),
	'ŋ': consonantBits(Modal, Velar, Nasal),
	'x': consonantBits(Voiceless, Velar, NonSibilantFricative),
	'ɣ': consonantBits(Modal, Velar, NonSibilantFricative),
	'ɰ': consonantBits(Modal, Velar, Approximant),
	'ʟ': consonantBits(Modal, Velar, LateralApproximant),

	// Uvular
	'q': consonantBits(Voiceless, Uvular, Plosive),
	'ɢ': consonantBits(Modal, Uvular, Plosive),
	'ɴ': consonantBits(Modal, Uvular, Nasal),
	'ʀ': consonantBits(Modal, Uvular, Trill),
	'χ': consonantBits(Voiceless, Uvular, NonSibilantFricative),
	'ʁ': consonantBits(Modal, Uvular, NonSibilantFricative),

	// Pharyngeal
	'ħ': consonantBits(Voiceless, Pharyngeal, NonSibilantFricative),
	'ʕ': consonantBits(Modal, Pharyngeal, NonSibilantFricative),

	// Epiglottal
	'ʡ': consonantBits(Modal, Epiglottal, Plosive),
	'ʜ': consonantBits(Voiceless, Epiglottal, NonSibilantFricative),
	'ʢ': consonantBits(Modal, Epiglottal, NonSibilantFricative),

	// Glottal
	'ʔ': consonantBits(Voiceless, Glottal, Plosive),
	'h': consonantBits(Voiceless, Glottal, NonSibilantFricative),
	'ɦ': consonantBits(Modal, Glottal, NonSibilantFricative),

	// Non-pulmonic consonants
	'ʘ': consonantBits(Voiceless, Bilabial, Click),
	'ǀ': consonantBits(Voiceless, Dental, Click),
	'ǃ': consonantBits(Voiceless, Alveolar, Click),
	'ǂ': consonantBits(Voiceless, Palatal, Click),
	'ǁ': consonantBits(Voiceless, Alveolar, Click),
	'ɓ': consonantBits(Modal, Bilabial, Implosive),
	'ɗ': consonantBits(Modal, Alveolar, Implosive),
	'ʄ': consonantBits(Modal, Palatal, Implosive),
	'ɠ': consonantBits(Modal, Velar, Implosive),
	'ʛ': consonantBits(Modal, Uvular, Implosive),

	// Vowels

	// Front
	'i': vowelBits(Close, Front, Unrounded, false),
	'y': vowelBits(Close, Front, Rounded, false),
	'e': vowelBits(CloseMid, Front, Unrounded, false),
	'ø': vowelBits(CloseMid, Front, Rounded, false),
	'ɛ': vowelBits(OpenMid, Front, Unrounded, false),
	'œ': vowelBits(OpenMid, Front, Rounded, false),
	'æ': vowelBits(NearOpen, Front, Unrounded, false),
	'a': vowelBits(Open, Front, Unrounded, false),
	'ɶ': vowelBits(Open, Front, Rounded, false),

	// Near-front
	'ɪ': vowelBits(NearClose, NearFront, Unrounded, false),
	'ʏ': vowelBits(NearClose, NearFront, Rounded, false),

	// Central
	'ɨ': vowelBits(Close, Central, Unrounded, false),
	'ʉ': vowelBits(Close, Central, Rounded, false),
	'ɘ': vowelBits(CloseMid, Central, Unrounded, false),
	'ɵ': vowelBits(CloseMid, Central, Rounded, false),
	'ə': vowelBits(Mid, Central, Unrounded, false),
	'ɜ': vowelBits(OpenMid, Central, Unrounded, false),
	'ɞ': vowelBits(OpenMid, Central, Rounded, false),
	'ɐ': vowelBits(NearOpen, Central, Unrounded, false),

	// Central rhotic
	'ɚ': vowelBits(Mid, Central, Unrounded, true),
	'ɝ': vowelBits(OpenMid, Central, Unrounded, true),

	// Near-back
	'ʊ': vowelBits(NearClose, NearBack, Rounded, false),

	// Back
	'ɯ': vowelBits(Close, Back, Unrounded, false),
	'u': vowelBits(Close, Back, Rounded, false),
	'ɤ': vowelBits(CloseMid, Back, Unrounded, false),
	'o': vowelBits(CloseMid, Back, Rounded, false),
	'ʌ': vowelBits(OpenMid, Back, Unrounded, false),
	'ɔ': vowelBits(OpenMid, Back, Rounded, false),
	'ɑ': vowelBits(Open, Back, Unrounded, false),
	'ɒ': vowelBits(Open, Back, Rounded, false),
}

func isIPALetter(r rune) bool {
	_, ok := ipaLetters[r]
	return ok
}

// IPA modifier code points handled by the parser.
const (
	modSyllabicBelow  = '̩'
	modSyllabicAbove  = '̍'
	modNonSyllabic    = '̯'
	modVoicelessBelow = '̥'
	modVoicelessAbove = '̊'
	modVoiced         = '̬'
	modBreathy        = '̤'
	modCreaky         = '̰'
	modMoreRounded    = '̹'
	modLessRounded    = '̜'
	modRhotic         = '˞'
	modVelarized      = 'ˠ'
	modNasalized      = '̃'
)

// applyModifier applies an IPA modifier to the preceding phone. keep
// reports whether the code point belongs in the retained IPA text;
// unrecognized code points are dropped. Vowel modifiers on a consonant
// are an input error.
func applyModifier(p *Phone, r rune) (keep bool, err error) {
	switch r {
	case modSyllabicBelow, modSyllabicAbove:
		p.SetSyllabic(true)

	case modNonSyllabic:
		p.SetSyllabic(false)

	case modVoicelessBelow, modVoicelessAbove:
		// IPA has no slack-voice diacritic, so devoicing an already
		// voiced phone means slack.
		if p.Phonation() != Voiceless {
			p.SetPhonation(Slack)
		}

	case modVoiced:
		// Likewise, voicing an already voiced phone means stiff.
		if p.Phonation() == Voiceless {
			p.SetPhonation(Modal)
		} else {
			p.SetPhonation(Stiff)
		}

	case modBreathy:
		p.SetPhonation(Breathy)

	case modCreaky:
		p.SetPhonation(Creaky)

	case modMoreRounded:
		if p.Type() != Vowel {
			return false, fmt.Errorf("speech: %q applies only to vowels: %w", r, ErrInvalidInput)
		}
		switch p.Roundedness() {
		case Unrounded:
			p.SetRoundedness(LessRounded)
		case LessRounded:
			p.SetRoundedness(Rounded)
		default:
			p.SetRoundedness(MoreRounded)
		}

	case modLessRounded:
		if p.Type() != Vowel {
			return false, fmt.Errorf("speech: %q applies only to vowels: %w", r, ErrInvalidInput)
		}
		switch p.Roundedness() {
		case Unrounded, LessRounded:
			p.SetRoundedness(Unrounded)
		case Rounded:
			p.SetRoundedness(LessRounded)
		case MoreRounded:
			p.SetRoundedness(Rounded)
		}

	case modRhotic:
		if p.Type() != Vowel {
			return false, fmt.Errorf("speech: %q applies only to vowels: %w", r, ErrInvalidInput)
		}
		p.SetRhotic(true)

	case modVelarized, modNasalized:
		// No feature bit for these; keep them in the text so the
		// pronunciation round-trips.

	default:
		return false, nil
	}
	return true, nil
}

// FromIPA parses an IPA transcription into a pronunciation. Each base
// letter becomes a phone; modifiers mutate the phone before them.
// Unrecognized code points after the first phone are dropped; anything
// before the first base letter is an error wrapping [ErrInvalidInput].
func FromIPA(ipa string) (Pronunciation, error) {
	var (
		phones []Phone
		text   []rune
	)
	for _, r := range ipa {
		if bits, ok := ipaLetters[r]; ok {
			phones = append(phones, Phone{bits})
			text = append(text, r)
			continue
		}
		if len(phones) == 0 {
			return Pronunciation{}, fmt.Errorf("speech: unexpected %q: %w", r, ErrInvalidInput)
		}
		keep, err := applyModifier(&phones[len(phones)-1], r)
		if err != nil {
			return Pronunciation{}, err
		}
		if keep {
			text = append(text, r)
		}
	}
	return Pronunciation{ipa: text, phones: phones}, nil
}
