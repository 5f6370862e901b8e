package fiscalcode

import "strings"

// omocodeAlphabet maps digits 0–9 to the letters substituted for them
// when the registry disambiguates colliding codes: L→0 … V→9.
const omocodeAlphabet = "LMNPQRSTUV"

// omocodePositions are the seven digit-bearing positions (0-indexed)
// eligible for omocode substitution: year, day and place-code digits.
var omocodePositions = [7]int{6, 7, 9, 10, 12, 13, 14}

// StripOmocode maps omocode letters at the digit-bearing positions back
// to their digits, producing the canonical form used for segment
// comparisons. Digits and unrecognized characters are left unchanged,
// so the function is idempotent and safe on arbitrary input.
func StripOmocode(code string) string {
	if len(code) < 15 {
		return code
	}

	b := []byte(code)
	for _, pos := range omocodePositions {
		c := b[pos]
		if c >= '0' && c <= '9' {
			continue
		}
		if i := strings.IndexByte(omocodeAlphabet, c); i >= 0 {
			b[pos] = byte('0' + i)
		}
	}
	return string(b)
}

// OmocodeVariants returns the 127 alternative codes obtained by
// substituting omocode letters at every non-empty combination of the
// seven digit positions, each with its recomputed checksum. Variants are
// ordered so the first substitutes only the rightmost position, matching
// the order the registry issues them in. The input may itself be an
// omocode form; variants are generated from its canonical form.
func OmocodeVariants(code string) ([]string, error) {
	code = normalize(code, false)
	if !IsValid(code) {
		return nil, ErrMalformed
	}

	canonical := StripOmocode(code)

	variants := make([]string, 0, 127)
	for mask := 1; mask < 1<<len(omocodePositions); mask++ {
		body := []byte(canonical[:15])
		for bit := 0; bit < len(omocodePositions); bit++ {
			if mask&(1<<bit) == 0 {
				continue
			}
			// bit 0 is the rightmost eligible position
			pos := omocodePositions[len(omocodePositions)-1-bit]
			body[pos] = omocodeAlphabet[body[pos]-'0']
		}

		check, err := Checksum(string(body))
		if err != nil {
			return nil, err
		}
		variants = append(variants, string(body)+string(check))
	}

	return variants, nil
}
