package common

import "strings"

// HasAny reports whether s contains any of the substrings, ignoring case.
func HasAny(s string, subs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// NormalizeCity trims surrounding whitespace and collapses inner runs of
// whitespace, so "  New   York " and "New York" name the same place.
func NormalizeCity(city string) string {
	return strings.Join(strings.Fields(city), " ")
}
