package fiscalcode

import (
	"fmt"
	"strings"
	"time"
)

// Details holds the identity fields recoverable from a code. Names are
// not recoverable: the code keeps only three letters of each.
type Details struct {
	BirthDate time.Time
	Gender    Gender
	PlaceCode string
}

// Decode extracts the birth date, gender and place code from a formally
// valid fiscal code. The two-digit year is pivoted into the most recent
// century that does not land in the future.
func Decode(code string) (Details, error) {
	code = normalize(code, false)
	if !IsValid(code) {
		return Details{}, ErrMalformed
	}

	s := StripOmocode(code)

	year := int(s[6]-'0')*10 + int(s[7]-'0')
	month := strings.IndexByte(monthLetters, s[8])
	if month < 0 {
		return Details{}, fmt.Errorf("%w: month letter %q", ErrMalformed, s[8])
	}

	day := int(s[9]-'0')*10 + int(s[10]-'0')
	gender := Male
	if day > femaleOffset {
		day -= femaleOffset
		gender = Female
	}
	if day < 1 || day > 31 {
		return Details{}, fmt.Errorf("%w: day %d", ErrMalformed, day)
	}

	fullYear := 2000 + year
	if fullYear > time.Now().Year() {
		fullYear -= 100
	}

	date := time.Date(fullYear, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month+1) {
		// time.Date normalizes overflow, e.g. February 30th
		return Details{}, fmt.Errorf("%w: no such date", ErrMalformed)
	}

	return Details{
		BirthDate: date,
		Gender:    gender,
		PlaceCode: s[11:15],
	}, nil
}
