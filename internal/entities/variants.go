package entities

import (
	"strings"

	"github.com/obraflow/obraflow/internal/textnorm"
)

// leadingArticles are stripped to build the article-free name variant.
var leadingArticles = map[string]bool{
	"el": true, "la": true, "los": true, "las": true,
	"un": true, "una": true, "de": true, "del": true,
}

// nameVariants generates the small set of normalized name variants used by
// the fuzzy tier: the full name, the name without a leading article, the
// first two words, the first three words (names of three or more words),
// the first word alone (four or more chars) and the last word alone (five
// or more chars).
func nameVariants(name string) []string {
	full := textnorm.Normalize(name)
	if full == "" {
		return nil
	}

	seen := map[string]bool{}
	var variants []string
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	add(full)

	words := strings.Fields(full)
	if len(words) > 1 && leadingArticles[words[0]] {
		add(strings.Join(words[1:], " "))
	}
	if len(words) >= 2 {
		add(strings.Join(words[:2], " "))
	}
	if len(words) >= 3 {
		add(strings.Join(words[:3], " "))
	}
	if len(words) > 1 {
		if len(words[0]) >= 4 {
			add(words[0])
		}
		if last := words[len(words)-1]; len(last) >= 5 {
			add(last)
		}
	}
	return variants
}

// fuzzyMatch reports whether the normalized term overlaps any generated
// variant of name, in either containment direction. The tier is
// deliberately binary: the first matching variant wins and the score is
// always the fuzzy score, however many variants matched or how large the
// overlap was.
func fuzzyMatch(name, normalizedTerm string) bool {
	for _, v := range nameVariants(name) {
		if strings.Contains(v, normalizedTerm) || strings.Contains(normalizedTerm, v) {
			return true
		}
	}
	return false
}
