package speech

import "fmt"

// arpabetIPA maps ARPAbet phonemes to their IPA spellings. Affricates and
// diphthongs expand to two letters; the dark L carries a velarization mark.
var arpabetIPA = map[string]string{
	// Monophthongs
	"AO": "ɔ",
	"AA": "ɑ",
	"IY": "i",
	"UW": "u",
	"EH": "ɛ",
	"IH": "ɪ",
	"UH": "ʊ",
	"AH": "ʌ",
	"AX": "ə",
	"AE": "æ",

	// Diphthongs
	"EY": "eɪ̯",
	"AY": "aɪ̯",
	"OW": "oʊ̯",
	"AW": "aʊ̯",
	"OY": "ɔɪ̯",

	// Rhotic vowels
	"ER":  "ɝ",
	"AXR": "ɚ",

	// Stops
	"P": "p",
	"B": "b",
	"T": "t",
	"D": "d",
	"K": "k",
	"G": "ɡ",

	// Affricates
	"CH": "tʃ",
	"JH": "dʒ",

	// Fricatives
	"F":  "f",
	"V":  "v",
	"TH": "θ",
	"DH": "ð",
	"S":  "s",
	"Z":  "z",
	"SH": "ʃ",
	"ZH": "ʒ",
	"HH": "h",

	// Nasals
	"M":   "m",
	"EM":  "m̩",
	"N":   "n",
	"EN":  "n̩",
	"NG":  "ŋ",
	"ENG": "ŋ̍",

	// Liquids
	"L":  "lˠ",
	"EL": "l̩ˠ",
	"R":  "r",
	"DX": "ɾ",
	"NX": "ɾ̃",

	// Semivowels
	"Y": "j",
	"W": "w",
	"Q": "ʔ",

	// Word boundary
	" ": " ",
}

// foldArpabet uppercases ASCII letters and strips a single trailing
// stress digit (0-2). Stress is not modelled, so the digit is discarded.
func foldArpabet(phoneme string) string {
	b := []byte(phoneme)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	if n := len(b); n > 0 && b[n-1] >= '0' && b[n-1] <= '2' {
		b = b[:n-1]
	}
	return string(b)
}

// FromARPAbet converts an ARPAbet phoneme sequence, as produced by CMUdict
// style lexicons, into a pronunciation. Phonemes are case-insensitive and
// may carry a stress digit. An unknown phoneme is an error wrapping
// [ErrInvalidInput].
func FromARPAbet(phonemes []string) (Pronunciation, error) {
	var ipa []rune
	for _, phoneme := range phonemes {
		folded := foldArpabet(phoneme)
		mapped, ok := arpabetIPA[folded]
		if !ok {
			return Pronunciation{}, fmt.Errorf("speech: unrecognized ARPABET phoneme %q: %w", phoneme, ErrInvalidInput)
		}
		ipa = append(ipa, []rune(mapped)...)
	}
	return FromIPA(string(ipa))
}
