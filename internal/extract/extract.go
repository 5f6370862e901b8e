// Package extract finds fiscal-code-shaped tokens in free-form text.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/fiscalcode"
)

// Match is a candidate fiscal code found in text.
type Match struct {
	Code  string // uppercased code as found
	Valid bool   // grammar and checksum verified
}

// candidateRe matches the positional grammar loosely: the digit-bearing
// positions also admit letters so omocode forms are picked up. Validity
// is decided afterwards by the codec.
var candidateRe = regexp.MustCompile(`\b[A-Za-z]{6}[A-Za-z0-9]{2}[A-Za-z][A-Za-z0-9]{2}[A-Za-z][A-Za-z0-9]{3}[A-Za-z]\b`)

// patterns that indicate a token is not a fiscal code
var (
	urlRe   = regexp.MustCompile(`https?://\S+`)
	emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)
)

// Extract returns all candidate fiscal codes found in the text, verified
// ones first, preserving order of appearance within each group.
// Duplicates are reported once.
func Extract(text string) []Match {
	if text == "" {
		return nil
	}

	// pre-clean: remove URLs and email addresses so embedded tokens
	// don't get picked up
	cleaned := urlRe.ReplaceAllString(text, " ")
	cleaned = emailRe.ReplaceAllString(cleaned, " ")

	seen := make(map[string]bool)
	var matches []Match

	for _, raw := range candidateRe.FindAllString(cleaned, -1) {
		code := strings.ToUpper(raw)

		if seen[code] {
			continue
		}
		seen[code] = true

		// all-letter tokens are almost always ordinary words; a real
		// code carries at least one digit outside its omocode form,
		// so only keep letter-only tokens that actually verify
		m := Match{Code: code, Valid: fiscalcode.IsValid(code)}
		if !m.Valid && allLetters(code) {
			continue
		}

		matches = append(matches, m)
	}

	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Valid && !matches[j].Valid
	})

	return matches
}

// allLetters reports whether s contains no digits.
func allLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return false
		}
	}
	return true
}
