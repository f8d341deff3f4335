// Package phone normalises and formats telephone numbers typed by hand.
package phone

import (
	"regexp"
	"strings"
)

var (
	formatting    = regexp.MustCompile(`[\s\-().]`)
	leadingZeros  = regexp.MustCompile(`^0+`)
	international = regexp.MustCompile(`^(\+\d{1,3})(\d{3})(\d{3})(\d+)$`)
	countryPrefix = regexp.MustCompile(`^(\+\d{1,4})(.*)$`)
	tenDigits     = regexp.MustCompile(`^(\d{3})(\d{3})(\d{4})$`)
)

// Normalize removes spaces, dashes, parentheses and dots.
func Normalize(number string) string {
	return formatting.ReplaceAllString(number, "")
}

// HasCountryCode reports whether the normalised number starts with "+".
func HasCountryCode(number string) bool {
	return strings.HasPrefix(Normalize(number), "+")
}

// AddCountryCode prefixes countryCode to a local number, dropping its leading
// zeros. Numbers that already carry a country code are only normalised.
func AddCountryCode(number, countryCode string) string {
	if number == "" {
		return ""
	}
	n := Normalize(number)
	if strings.HasPrefix(n, "+") {
		return n
	}
	return countryCode + leadingZeros.ReplaceAllString(n, "")
}

// Format renders "+C XXX XXX X..." for international numbers and "XXX XXX XXXX"
// for ten digit local ones. Anything else is returned normalised.
func Format(number string) string {
	n := Normalize(number)
	if n == "" {
		return ""
	}

	if strings.HasPrefix(n, "+") {
		if m := international.FindStringSubmatch(n); m != nil {
			return strings.Join(m[1:], " ")
		}
		if m := countryPrefix.FindStringSubmatch(n); m != nil {
			return m[1] + " " + m[2]
		}
	}

	if m := tenDigits.FindStringSubmatch(n); m != nil {
		return strings.Join(m[1:], " ")
	}
	return n
}

// ExtractCountryCode returns the leading "+" and up to four digits, or "" when
// the number has no country code.
func ExtractCountryCode(number string) string {
	m := countryPrefix.FindStringSubmatch(Normalize(number))
	if m == nil {
		return ""
	}
	return m[1]
}
