// Package synonyms expands colloquial and abbreviated Spanish financial
// vocabulary into the canonical terms the intent patterns are written
// against, and extracts the bag-of-terms used for intent scoring.
package synonyms

import (
	"regexp"
	"sort"
	"strings"

	"github.com/obraflow/obraflow/internal/textnorm"
)

// abbreviations maps short tokens to their full canonical word. Expanded
// before synonym substitution so the expanded form participates in folding.
var abbreviations = map[string]string{
	"fc":  "factura",
	"cta": "cuenta",
	"mov": "movimiento",
	"sub": "subcontratista",
	"ars": "pesos",
	"usd": "dolares",
}

// synonymTable maps each canonical term to the aliases that fold into it.
// All matching happens on normalized (lower-case, unaccented) text.
var synonymTable = map[string][]string{
	"gasto":      {"egreso", "erogacion", "desembolso", "salida de dinero"},
	"ingreso":    {"cobro", "cobranza", "entrada de dinero"},
	"saldo":      {"balance", "disponible"},
	"proyecto":   {"obra", "edificio"},
	"billetera":  {"caja"},
	"categoria":  {"rubro", "concepto"},
	"movimiento": {"transaccion", "operacion"},
	"presupuesto": {"cotizacion"},
	"pago":       {"abono"},
}

// regionalVariants folds rioplatense slang into neutral vocabulary.
var regionalVariants = map[string]string{
	"plata":  "dinero",
	"guita":  "dinero",
	"mangos": "pesos",
	"palos":  "millones",
}

// stopWords are dropped by ExtractKeyTerms. Normalized forms only.
var stopWords = map[string]bool{
	"de": true, "del": true, "la": true, "las": true, "el": true, "los": true,
	"en": true, "un": true, "una": true, "unos": true, "unas": true,
	"que": true, "cuanto": true, "cuanta": true, "cuantos": true, "cuantas": true,
	"como": true, "cual": true, "cuales": true, "donde": true, "quien": true,
	"para": true, "por": true, "con": true, "sin": true, "al": true,
	"mi": true, "mis": true, "tu": true, "su": true, "sus": true,
	"este": true, "esta": true, "estos": true, "estas": true, "ese": true, "esa": true,
	"hay": true, "fue": true, "son": true, "ser": true, "estar": true,
	"tengo": true, "tiene": true, "quiero": true, "dame": true, "decime": true,
	"me": true, "te": true, "se": true, "lo": true, "le": true, "les": true,
	"muy": true, "mas": true, "menos": true, "todo": true, "todos": true, "toda": true,
}

type substitution struct {
	re   *regexp.Regexp
	with string
}

var (
	abbrevSubs   []substitution
	synonymSubs  []substitution
	regionalSubs []substitution

	nonLetter = regexp.MustCompile(`[^a-z\s]+`)
)

func init() {
	abbrevSubs = buildSubs(abbreviations)

	// Longer aliases first, so multi-word aliases win over their prefixes.
	var aliases []string
	target := make(map[string]string)
	for canonical, list := range synonymTable {
		for _, a := range list {
			na := textnorm.Normalize(a)
			aliases = append(aliases, na)
			target[na] = canonical
		}
	}
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})
	for _, a := range aliases {
		synonymSubs = append(synonymSubs, substitution{
			re:   wordBoundary(a),
			with: target[a],
		})
	}

	regionalSubs = buildSubs(regionalVariants)
}

func buildSubs(m map[string]string) []substitution {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	subs := make([]substitution, 0, len(keys))
	for _, k := range keys {
		subs = append(subs, substitution{re: wordBoundary(textnorm.Normalize(k)), with: m[k]})
	}
	return subs
}

func wordBoundary(term string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
}

// Expand normalizes text and applies, in order: abbreviation expansion,
// canonical synonym substitution, and regional-variant substitution.
// Absence of any match is not an error; the best-effort result is returned.
func Expand(text string) string {
	t := textnorm.Normalize(text)
	for _, s := range abbrevSubs {
		t = s.re.ReplaceAllString(t, s.with)
	}
	for _, s := range synonymSubs {
		t = s.re.ReplaceAllString(t, s.with)
	}
	for _, s := range regionalSubs {
		t = s.re.ReplaceAllString(t, s.with)
	}
	return t
}

// ExtractKeyTerms produces the deduplicated bag of scoring terms for a
// question: normalized, synonym-expanded, non-letters stripped, stop words
// and tokens of two runes or fewer removed. Order of first appearance is
// preserved.
func ExtractKeyTerms(text string) []string {
	expanded := Expand(text)
	cleaned := nonLetter.ReplaceAllString(expanded, " ")

	seen := make(map[string]bool)
	var terms []string
	for _, tok := range strings.Fields(cleaned) {
		if len([]rune(tok)) <= 2 || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		terms = append(terms, tok)
	}
	return terms
}
