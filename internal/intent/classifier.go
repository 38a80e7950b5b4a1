package intent

import (
	"strings"
	"time"

	"github.com/obraflow/obraflow/internal/entities"
	"github.com/obraflow/obraflow/internal/synonyms"
)

// entityBonus / entityPenalty adjust a pattern's keyword score according to
// whether all its required entity types were resolved.
const (
	entityBonus   = 15
	entityPenalty = 10
)

// Classifier scores questions against the pattern registry. It is
// stateless apart from its injected clock and safe for concurrent use.
type Classifier struct {
	patterns []Pattern
	clock    func() time.Time
}

// NewClassifier returns a classifier over the built-in pattern registry.
func NewClassifier() *Classifier {
	return &Classifier{patterns: defaultPatterns(), clock: time.Now}
}

// NewClassifierWithPatterns returns a classifier over a custom registry.
func NewClassifierWithPatterns(patterns []Pattern) *Classifier {
	return &Classifier{patterns: patterns, clock: time.Now}
}

// Classify scores the question against every registered pattern and
// returns the best intent. Ambiguity is not an error: when no pattern
// scores above zero, the sentinel unknown intent (confidence 0) is
// returned, still carrying the detected temporal scope and filters.
func (c *Classifier) Classify(question string, ents []entities.Entity) Intent {
	expanded := synonyms.Expand(question)
	keyTerms := synonyms.ExtractKeyTerms(question)

	temporal := detectTemporal(expanded, c.clock())
	filters := detectFilters(expanded)

	bestScore := 0
	var best *Pattern
	for i := range c.patterns {
		p := &c.patterns[i]
		score := c.scorePattern(p, expanded, keyTerms, ents)
		// Strict comparison: on ties the earlier registry entry wins.
		if score > bestScore {
			bestScore = score
			best = p
		}
	}

	if best == nil || bestScore <= 0 {
		return Intent{
			Type:     TypeUnknown,
			Entities: ents,
			Temporal: temporal,
			Filters:  filters,
		}
	}

	// Pattern-relative normalization: the denominator is this pattern's own
	// maximum attainable score, so confidence values are not comparable
	// across intent types.
	maxScore := best.Priority*len(best.Keywords) + entityBonus
	confidence := float64(bestScore) / float64(maxScore)
	if confidence > 1 {
		confidence = 1
	}

	return Intent{
		Type:       best.Type,
		Subtype:    best.Subtype,
		Confidence: confidence,
		Entities:   ents,
		Temporal:   temporal,
		Filters:    filters,
	}
}

// scorePattern computes matchedKeywords × priority, then applies the
// required-entity bonus or penalty. Patterns with no keyword hits score
// zero outright: entity presence alone is no evidence of the intent.
func (c *Classifier) scorePattern(p *Pattern, expanded string, keyTerms []string, ents []entities.Entity) int {
	matched := 0
	for _, kw := range p.Keywords {
		if keywordMatches(kw, expanded, keyTerms) {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}

	score := matched * p.Priority
	if len(p.RequiredEntities) > 0 {
		if hasAllTypes(ents, p.RequiredEntities) {
			score += entityBonus
		} else {
			score -= entityPenalty
		}
	}
	return score
}

// keywordMatches reports whether the expanded question contains the
// keyword verbatim, or any extracted key term contains it as a substring.
func keywordMatches(kw, expanded string, keyTerms []string) bool {
	if strings.Contains(expanded, kw) {
		return true
	}
	for _, term := range keyTerms {
		if strings.Contains(term, kw) {
			return true
		}
	}
	return false
}

func hasAllTypes(ents []entities.Entity, required []entities.Type) bool {
	for _, typ := range required {
		found := false
		for _, e := range ents {
			if e.Type == typ {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SuggestedTool looks up the downstream operation registered for the
// intent's pattern. Empty for unknown intents.
func (c *Classifier) SuggestedTool(in Intent) string {
	for _, p := range c.patterns {
		if p.Type == in.Type && p.Subtype == in.Subtype {
			return p.SuggestedTool
		}
	}
	return ""
}
