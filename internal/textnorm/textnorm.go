// Package textnorm provides the case- and diacritic-insensitive comparison
// primitives used by every matching stage of the assistant pipeline. The
// normalized form is only ever used for comparison; the original question
// text is preserved for anything that reaches an LLM prompt.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s and strips combining diacritical marks, so that
// "Hormigón" and "hormigon" compare equal. Whitespace is trimmed and runs of
// internal whitespace are collapsed to a single space. Normalize is
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	folded := stripDiacritics(strings.ToLower(s))
	return strings.Join(strings.Fields(folded), " ")
}

// Equal reports whether a and b are equal under normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Contains reports whether needle occurs inside haystack under normalization.
// An empty needle never matches.
func Contains(haystack, needle string) bool {
	n := Normalize(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Normalize(haystack), n)
}

// stripDiacritics decomposes to NFD, drops nonspacing marks, and recomposes.
// A fresh transformer chain is built per call: chained transformers carry
// internal state and must not be shared across goroutines.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
