package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/passgate/models"
)

// MinPassphraseLength is the shortest passphrase accepted, in characters.
const MinPassphraseLength = 12

// minSequentialPrefix is how many ascending or descending characters at the
// start of a passphrase earn a suggestion.
const minSequentialPrefix = 3

var weakWords = []string{
	"password", "passphrase", "qwerty", "letmein", "welcome",
	"admin", "iloveyou", "monkey", "dragon", "123456",
}

// CheckPassphraseStrength applies the hard length and repetition rule and
// adds suggestions that never make a passphrase invalid. It does no I/O.
func CheckPassphraseStrength(passphrase string) models.PassphraseStrength {
	result := models.PassphraseStrength{Valid: true}

	if utf8.RuneCountInString(passphrase) < MinPassphraseLength {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("passphrase must be at least %d characters", MinPassphraseLength))
	}
	if isSingleRepeatedRune(passphrase) {
		result.Valid = false
		result.Errors = append(result.Errors, "passphrase must not be a single repeated character")
	}

	if sequentialPrefixLength(passphrase) >= minSequentialPrefix {
		result.Suggestions = append(result.Suggestions, "avoid starting with a sequence such as \"abc\" or \"123\"")
	}
	lower := strings.ToLower(passphrase)
	for _, w := range weakWords {
		if strings.Contains(lower, w) {
			result.Suggestions = append(result.Suggestions, fmt.Sprintf("avoid common words such as %q", w))
		}
	}

	return result
}

func isSingleRepeatedRune(s string) bool {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return false
	}
	for _, r := range s[size:] {
		if r != first {
			return false
		}
	}
	return true
}

// sequentialPrefixLength returns the length of the run of consecutive code
// points, ascending or descending, that s starts with.
func sequentialPrefixLength(s string) int {
	runes := []rune(s)
	if len(runes) < 2 {
		return len(runes)
	}

	step := runes[1] - runes[0]
	if step != 1 && step != -1 {
		return 1
	}
	n := 2
	for n < len(runes) && runes[n]-runes[n-1] == step {
		n++
	}
	return n
}
