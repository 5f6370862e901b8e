// Package fiscalcode computes and validates Italian fiscal codes: the
// 16-character personal tax identifiers derived from a person's name,
// birth date, gender and place of birth.
// All functions are pure; no state is kept between calls.
package fiscalcode

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Errors returned by the encode path. The validate path never errors:
// malformed input is a legitimate false result.
var (
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidGender = errors.New("gender must be male or female")
	ErrBadPlaceCode  = errors.New("place code must be 4 characters")
	ErrMalformed     = errors.New("malformed fiscal code")
)

// Gender is the two-value enumeration used by the day-of-birth encoding.
type Gender int

const (
	Male Gender = iota
	Female
)

// ParseGender accepts "M"/"F" (any case) and the spelled-out forms.
func ParseGender(s string) (Gender, error) {
	switch normalize(s, false) {
	case "M", "MALE":
		return Male, nil
	case "F", "FEMALE":
		return Female, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGender, s)
}

func (g Gender) String() string {
	if g == Female {
		return "F"
	}
	return "M"
}

// MarshalJSON encodes the gender as "M" or "F".
func (g Gender) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON accepts the same forms as ParseGender.
func (g *Gender) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseGender(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Person holds the identity fields a fiscal code is derived from.
// PlaceCode is the 4-character ISTAT code of the municipality or country
// of birth (1 letter + 3 digits), supplied by the caller.
type Person struct {
	FirstName string
	LastName  string
	BirthDate time.Time
	Gender    Gender
	PlaceCode string
}

// codeGrammar is the positional grammar of a full 16-character code:
// surname, first name, year, month letter, day, place code, checksum.
var codeGrammar = regexp.MustCompile(`^[A-Z]{6}[0-9]{2}[A-Z][0-9]{2}[A-Z][0-9]{3}[A-Z]$`)

// Encode derives the 16-character fiscal code for a person.
// It fails when a required field is empty, the gender is outside the
// two-value enumeration, or the place code is not 4 characters.
// The place code is uppercased but otherwise used verbatim.
func Encode(p Person) (string, error) {
	last := normalize(p.LastName, true)
	if last == "" {
		return "", fmt.Errorf("last name: %w", ErrMissingField)
	}

	first := normalize(p.FirstName, true)
	if first == "" {
		return "", fmt.Errorf("first name: %w", ErrMissingField)
	}

	// place codes are already canonical tokens: no diacritic stripping
	place := normalize(p.PlaceCode, false)
	if place == "" {
		return "", fmt.Errorf("place code: %w", ErrMissingField)
	}
	if len(place) != 4 {
		return "", fmt.Errorf("%w: %q", ErrBadPlaceCode, place)
	}

	birth, err := BirthCode(p.BirthDate, p.Gender)
	if err != nil {
		return "", err
	}

	body := nameCode(last, false) + nameCode(first, true) + birth + place

	check, err := Checksum(body)
	if err != nil {
		return "", fmt.Errorf("place code: %w", err)
	}

	return body + string(check), nil
}

// IsValid reports whether a code is formally correct: 16 characters,
// matching the positional grammar either as-is or after omocode
// substitution, with a checksum computed over the original prefix.
// It never panics; any malformed input yields false.
func IsValid(code string) bool {
	code = normalize(code, false)
	if len(code) != 16 {
		return false
	}

	if !codeGrammar.MatchString(code) && !codeGrammar.MatchString(StripOmocode(code)) {
		return false
	}

	// the checksum was computed over the code as issued, omocode
	// substitutions included
	check, err := Checksum(code[:15])
	if err != nil {
		return false
	}
	return check == code[15]
}

// IsValidFor reports whether a code is formally correct and encodes the
// given person. Segments are compared against the omocode-stripped form;
// the checksum is still verified over the original prefix.
func IsValidFor(code string, p Person) bool {
	code = normalize(code, false)
	if !IsValid(code) {
		return false
	}

	last := normalize(p.LastName, true)
	first := normalize(p.FirstName, true)
	place := normalize(p.PlaceCode, false)
	if last == "" || first == "" || place == "" {
		return false
	}

	birth, err := BirthCode(p.BirthDate, p.Gender)
	if err != nil {
		return false
	}

	stripped := StripOmocode(code)
	return stripped[0:3] == nameCode(last, false) &&
		stripped[3:6] == nameCode(first, true) &&
		stripped[6:11] == birth &&
		stripped[11:15] == place
}
