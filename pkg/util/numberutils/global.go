package numberutils

import (
	"strings"
	"unicode"
)

// IsDigits checks if the given string contains only digits (0-9).
// It returns true if all characters in the string are digits, false otherwise.
func IsDigits(str string) bool {
	for _, r := range str {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// OnlyDigits drops every character that is not an ASCII digit.
func OnlyDigits(str string) string {
	var b strings.Builder
	b.Grow(len(str))
	for _, r := range str {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
