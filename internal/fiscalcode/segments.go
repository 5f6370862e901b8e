package fiscalcode

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	consonants = "BCDFGHJKLMNPQRSTVWXYZ"
	vowels     = "AEIOU"

	// month letters indexed by month-1: January→A … December→T
	monthLetters = "ABCDEHLMPRST"

	// female day-of-month offset
	femaleOffset = 40
)

// stripMarks decomposes, removes combining marks, recomposes.
// Covers the accented vowels that appear in Italian names (à è é ì ò ù).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize trims and uppercases. With stripDiacritics set, accented
// letters are mapped to their unaccented equivalents first. Empty input
// passes through unchanged; callers reject empty fields earlier.
func normalize(s string, stripDiacritics bool) string {
	s = strings.TrimSpace(s)
	if stripDiacritics {
		if out, _, err := transform.String(stripMarks, s); err == nil {
			s = out
		}
	}
	return strings.ToUpper(s)
}

// SurnameCode returns the 3-letter surname segment: the first three
// consonants, then vowels in order, padded with 'X'.
func SurnameCode(name string) string {
	return nameCode(normalize(name, true), false)
}

// FirstNameCode returns the 3-letter first-name segment. When the name
// has four or more consonants the second is skipped (first, third and
// fourth are used); otherwise the rule matches SurnameCode.
func FirstNameCode(name string) string {
	return nameCode(normalize(name, true), true)
}

// nameCode expects already-normalized input (uppercase, no diacritics).
// Characters outside A–Z are ignored, so a name with no letters at all
// yields "XXX".
func nameCode(s string, firstName bool) string {
	var cons, vow []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case strings.IndexByte(consonants, c) >= 0:
			cons = append(cons, c)
		case strings.IndexByte(vowels, c) >= 0:
			vow = append(vow, c)
		}
	}

	// first names with 4+ consonants use the 1st, 3rd and 4th
	if firstName && len(cons) >= 4 {
		cons = []byte{cons[0], cons[2], cons[3]}
	}

	code := cons
	if len(code) > 3 {
		code = code[:3]
	}
	for _, v := range vow {
		if len(code) == 3 {
			break
		}
		code = append(code, v)
	}
	for len(code) < 3 {
		code = append(code, 'X')
	}

	return string(code)
}

// BirthCode returns the 5-character birth segment: two year digits, the
// month letter, and the day of month (offset by 40 for Female).
func BirthCode(date time.Time, gender Gender) (string, error) {
	day := date.Day()
	switch gender {
	case Male:
	case Female:
		day += femaleOffset
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidGender, gender)
	}

	return fmt.Sprintf("%02d%c%02d", date.Year()%100, monthLetters[date.Month()-1], day), nil
}
