// Package phone extracts phone numbers from free-form text.
package phone

import (
	"regexp"
	"strings"
)

// numberPattern matches a contiguous run of 7-15 phone-number characters
// (digits, spaces, hyphens, parentheses) with an optional leading plus.
// This is a heuristic, not a validator: any run of plausible length is a
// candidate, false positives included.
var numberPattern = regexp.MustCompile(`\+?[0-9()\- ]{7,15}`)

// cleaner strips formatting characters from a matched candidate.
var cleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// Extract returns the first phone number found in text, reduced to digits
// with an optional leading '+'. The second return is false when no
// candidate is present. Absence is the normal outcome, not an error.
func Extract(text string) (string, bool) {
	for _, match := range numberPattern.FindAllString(text, -1) {
		cleaned := cleaner.Replace(match)
		// A run of only spaces or punctuation satisfies the character
		// class but is not a number.
		if strings.ContainsAny(cleaned, "0123456789") {
			return cleaned, true
		}
	}
	return "", false
}
