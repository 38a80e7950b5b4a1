package entities

import (
	"regexp"
	"strings"

	"github.com/obraflow/obraflow/internal/textnorm"
)

// Candidate term extraction: three independent extractors unioned into one
// set. A term that two extractors both produce appears once.

var (
	quotedRe = regexp.MustCompile(`["“«']([^"”»']{3,})["”»']`)

	// Sequences of capitalized words, accent-aware.
	capitalizedRe = regexp.MustCompile(`\p{Lu}[\p{Ll}\p{M}]+(?:\s+\p{Lu}[\p{Ll}\p{M}]+)*`)

	// Text following a key preposition, at least 3 chars, up to the next
	// delimiter.
	prepositionRe = regexp.MustCompile(`(?i)\b(?:en|de|del|para|sobre|con)\s+([^,.;:?!¿¡"]{3,})`)
)

// commonWords filters sentence-initial capitalized words that are not
// proper nouns. Normalized forms.
var commonWords = map[string]bool{
	"cuanto": true, "cuanta": true, "cuantos": true, "cuantas": true,
	"que": true, "cual": true, "cuales": true, "como": true, "donde": true,
	"quien": true, "hola": true, "dame": true, "decime": true, "mostrame": true,
	"necesito": true, "quiero": true, "hay": true, "tengo": true,
	"el": true, "la": true, "los": true, "las": true, "un": true, "una": true,
	"este": true, "esta": true, "desde": true, "hasta": true, "total": true,
}

// extractTerms pulls candidate entity terms from the raw question.
func extractTerms(question string) []string {
	seen := make(map[string]bool)
	var terms []string
	add := func(t string) {
		t = strings.TrimSpace(t)
		key := textnorm.Normalize(t)
		if len([]rune(key)) < 3 || seen[key] {
			return
		}
		seen[key] = true
		terms = append(terms, t)
	}

	for _, m := range quotedRe.FindAllStringSubmatch(question, -1) {
		add(m[1])
	}

	for _, m := range capitalizedRe.FindAllString(question, -1) {
		add(stripCommonPrefix(m))
	}

	for _, m := range prepositionRe.FindAllStringSubmatch(question, -1) {
		add(m[1])
	}

	return terms
}

// stripCommonPrefix drops leading denylisted words from a capitalized
// sequence, so "Cuánto Casa Sur" yields "Casa Sur" and a bare "Cuánto"
// yields nothing.
func stripCommonPrefix(seq string) string {
	words := strings.Fields(seq)
	for len(words) > 0 && commonWords[textnorm.Normalize(words[0])] {
		words = words[1:]
	}
	return strings.Join(words, " ")
}
