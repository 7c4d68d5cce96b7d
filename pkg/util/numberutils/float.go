package numberutils

import (
	"math"
	"strconv"
	"strings"
)

// ToFloat64 parses a decimal string, rejecting NaN and infinities.
func ToFloat64(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !IsFinite(f) {
		return 0, false
	}
	return f, true
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsFloatInRange checks if f is finite and within [min, max].
func IsFloatInRange(f, min, max float64) bool {
	return IsFinite(f) && f >= min && f <= max
}
