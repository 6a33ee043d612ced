package speech

import "fmt"

// Pronunciation is an immutable sequence of phones together with the IPA
// text it was parsed from. Construct one with [FromIPA] or [FromARPAbet];
// the zero value is the empty pronunciation.
type Pronunciation struct {
	ipa    []rune
	phones []Phone
}

// Len returns the number of phones.
func (p Pronunciation) Len() int { return len(p.phones) }

// Empty reports whether the pronunciation has no phones.
func (p Pronunciation) Empty() bool { return len(p.phones) == 0 }

// At returns the phone at index i.
func (p Pronunciation) At(i int) Phone { return p.phones[i] }

// Phones returns a copy of the phone sequence.
func (p Pronunciation) Phones() []Phone {
	out := make([]Phone, len(p.phones))
	copy(out, p.phones)
	return out
}

// IPA returns the retained IPA transcription.
func (p Pronunciation) IPA() string { return string(p.ipa) }

// String returns the IPA transcription.
func (p Pronunciation) String() string { return p.IPA() }

// Subrange returns the pronunciation of phones [first, last), carrying the
// matching slice of IPA text including any modifiers attached to those
// phones. Panics if the range is out of bounds, like a slice expression.
func (p Pronunciation) Subrange(first, last int) Pronunciation {
	if first < 0 || last < first || last > len(p.phones) {
		panic(fmt.Sprintf("speech: subrange [%d:%d] of %d phones", first, last, len(p.phones)))
	}

	// The phones are not stored with an explicit alignment to the IPA
	// text, so align by scanning for base letters. Each phone owns its
	// letter plus the modifiers that follow it.
	ipaFirst := 0
	for i := 0; i < first; i++ {
		ipaFirst++
		for ipaFirst < len(p.ipa) && !isIPALetter(p.ipa[ipaFirst]) {
			ipaFirst++
		}
	}
	ipaLast := ipaFirst
	for i := first; i < last; i++ {
		ipaLast++
		for ipaLast < len(p.ipa) && !isIPALetter(p.ipa[ipaLast]) {
			ipaLast++
		}
	}

	out := Pronunciation{
		ipa:    make([]rune, ipaLast-ipaFirst),
		phones: make([]Phone, last-first),
	}
	copy(out.ipa, p.ipa[ipaFirst:ipaLast])
	copy(out.phones, p.phones[first:last])
	return out
}
