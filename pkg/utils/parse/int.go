// ABOUTME: Utility functions for parsing numbers out of scraped text
// ABOUTME: Accepts Persian and Arabic-Indic digits alongside ASCII ones

package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var decimalPattern = regexp.MustCompile(`\d+\.?\d*`)

// Digits parses s when it consists only of decimal digits
func Digits(s string) (int, bool) {
	s = NormalizeDigits(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FirstFloat returns the first decimal token found in s ("6.7/10" -> 6.7),
// or 0 when s holds no digits.
func FirstFloat(s string) float64 {
	match := decimalPattern.FindString(NormalizeDigits(s))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(match, "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// NormalizeDigits maps Extended Arabic-Indic (Persian) and Arabic-Indic
// digits to ASCII.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		}
		return r
	}, s)
}
