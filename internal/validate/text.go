// Package validate holds the field predicates applied to contact and
// credential input before anything is written to the store.
package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsAlphaOrSpace reports whether every rune of text is a letter or a space.
// The empty string is accepted.
func IsAlphaOrSpace(text string) bool {
	for _, r := range text {
		if r != ' ' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// HasNoRepeatedSpace reports whether text is free of runs of two or more spaces.
func HasNoRepeatedSpace(text string) bool {
	return !strings.Contains(text, "  ")
}

// MeetsMinLength reports whether length >= minLen.
func MeetsMinLength(length, minLen int) bool {
	return length >= minLen
}

// Length counts characters, not bytes.
func Length(text string) int {
	return utf8.RuneCountInString(text)
}

// IsDigits reports whether text consists only of ASCII digits.
// The empty string is accepted; length is checked separately.
func IsDigits(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}
