package fiscalcode

import "fmt"

// oddValues maps a character value (A=0…Z=25, digits by numeric value) to
// its contribution when the character sits at an odd 1-indexed position.
// Even positions contribute the value directly.
var oddValues = [26]int{
	1, 0, 5, 7, 9, 13, 15, 17, 19, 21,
	2, 4, 18, 20, 11, 3, 6, 8, 12, 14,
	16, 10, 22, 25, 24, 23,
}

// Checksum computes the control letter for the first 15 characters of a
// code. It errors when the input is not exactly 15 characters of digits
// and uppercase letters.
func Checksum(body string) (byte, error) {
	if len(body) != 15 {
		return 0, fmt.Errorf("%w: checksum needs 15 characters, got %d", ErrMalformed, len(body))
	}

	sum := 0
	for i := 0; i < len(body); i++ {
		c := body[i]

		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c >= 'A' && c <= 'Z':
			v = int(c - 'A')
		default:
			return 0, fmt.Errorf("%w: character %q at position %d", ErrMalformed, c, i)
		}

		// i is 0-indexed, the scheme counts from 1
		if i%2 == 0 {
			sum += oddValues[v]
		} else {
			sum += v
		}
	}

	return byte('A' + sum%26), nil
}
