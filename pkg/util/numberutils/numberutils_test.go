package numberutils

import (
	"math"
	"testing"
)

func TestOnlyDigits(t *testing.T) {
	cases := map[string]string{
		"01310-100":  "01310100",
		"01.310.100": "01310100",
		" 0131 0100": "01310100",
		"abc":        "",
		"٣٤٥":        "",
	}
	for in, want := range cases {
		if got := OnlyDigits(in); got != want {
			t.Errorf("OnlyDigits(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsDigits(t *testing.T) {
	if !IsDigits("01310100") || IsDigits("01310-100") {
		t.Fatal("IsDigits misclassified input")
	}
}

func TestToIntWithDefault(t *testing.T) {
	if got := ToIntWithDefault(" 5 ", 7); got != 5 {
		t.Fatalf("got %d", got)
	}
	if got := ToIntWithDefault("cinco", 7); got != 7 {
		t.Fatalf("got %d", got)
	}
}

func TestToFloat64(t *testing.T) {
	if f, ok := ToFloat64("-23.561414"); !ok || f != -23.561414 {
		t.Fatalf("got %v %v", f, ok)
	}
	for _, in := range []string{"", "abc", "NaN", "Inf", "-Inf"} {
		if _, ok := ToFloat64(in); ok {
			t.Errorf("ToFloat64(%q) should fail", in)
		}
	}
}

func TestIsFloatInRange(t *testing.T) {
	if !IsFloatInRange(-90, -90, 90) || IsFloatInRange(90.1, -90, 90) || IsFloatInRange(math.NaN(), -90, 90) {
		t.Fatal("IsFloatInRange misclassified input")
	}
}
