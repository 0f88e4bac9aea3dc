// Package isbn canonicalizes raw ISBN strings as typed by users or returned by
// OpenLibrary.
package isbn

import "strings"

// Normalize strips every character that is not a digit or X/x and uppercases
// the result. No length check is made here.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'X' || r == 'x':
			b.WriteByte('X')
		}
	}
	return b.String()
}

// Valid reports whether a normalized identifier has a storable length.
func Valid(canonical string) bool {
	return len(canonical) == 10 || len(canonical) == 13
}

// Canonical returns the normalized form of raw, or "" when it cannot be stored.
func Canonical(raw string) string {
	clean := Normalize(raw)
	if !Valid(clean) {
		return ""
	}
	return clean
}
