package ceputils

import (
	"cep-api/pkg/util/numberutils"
)

// Length is the number of digits in a CEP.
const Length = 8

// Clean strips every non-digit character.
func Clean(cep string) string {
	return numberutils.OnlyDigits(cep)
}

// IsValid reports whether cep has exactly eight digits once cleaned.
func IsValid(cep string) bool {
	return len(Clean(cep)) == Length
}

// Format renders a valid CEP as NNNNN-NNN. Other input is returned cleaned.
func Format(cep string) string {
	digits := Clean(cep)
	if len(digits) != Length {
		return digits
	}
	return digits[:5] + "-" + digits[5:]
}

// Mask applies the NNNNN-NNN mask progressively, the way an input field does while typing.
// Extra digits are dropped.
func Mask(value string) string {
	digits := Clean(value)
	if len(digits) > Length {
		digits = digits[:Length]
	}
	if len(digits) <= 5 {
		return digits
	}
	return digits[:5] + "-" + digits[5:]
}

// Equal compares two CEPs by their digits.
func Equal(a, b string) bool {
	return Clean(a) == Clean(b)
}
