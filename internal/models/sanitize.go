package models

import (
	"strconv"
	"strings"
)

// DigitsOnly drops every character that is not an ASCII digit.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DecimalOnly keeps ASCII digits and the first decimal point.
func DecimalOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount sanitizes s to digits and parses it as grams.
// ok is false when nothing numeric remains.
func ParseAmount(s string) (int, bool) {
	digits := DigitsOnly(s)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseCost sanitizes s to a decimal and parses it.
// ok is false when nothing numeric remains ("" or ".").
func ParseCost(s string) (float64, bool) {
	clean := DecimalOnly(s)
	if clean == "" || clean == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(clean, "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
