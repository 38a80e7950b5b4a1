package entities

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/obraflow/obraflow/internal/cache"
	"github.com/obraflow/obraflow/internal/store"
	"github.com/obraflow/obraflow/internal/synonyms"
	"github.com/obraflow/obraflow/internal/textnorm"
)

// Match-tier scores. The ordering exact > partial > fuzzy is an invariant
// the intent classifier and planner rely on.
const (
	scoreExact   = 1.0
	scorePartial = 0.8
	scoreFuzzy   = 0.6
)

// subQueryTTL bounds how long a per-(type, term, tenant) search result is
// memoized. Entity mutations invalidate eagerly; the TTL covers mutations
// that bypass the store.
const subQueryTTL = 30 * time.Minute

// Resolver finds candidate domain entities for a question within one
// tenant. Per-(term × type) searches run concurrently; they share no
// mutable state beyond the result collection.
type Resolver struct {
	store    store.Reader
	cache    *cache.Cache
	registry *synonyms.Registry
}

// NewResolver wires a resolver to its tenant store, shared cache, and
// alias registry.
func NewResolver(s store.Reader, c *cache.Cache, reg *synonyms.Registry) *Resolver {
	return &Resolver{store: s, cache: c, registry: reg}
}

// Resolve extracts candidate terms from the question and searches every
// requested entity type for each of them. A failed or empty tenant query
// for one type yields an empty set for that type only; Resolve itself
// never fails.
func (r *Resolver) Resolve(ctx context.Context, question, orgID string, opts Options) []Entity {
	opts = opts.withDefaults()

	terms := extractTerms(question)
	if len(terms) == 0 {
		return nil
	}

	var (
		mu  sync.Mutex
		all []SearchResult
	)
	g, gctx := errgroup.WithContext(ctx)

	for _, term := range terms {
		canonical, viaAlias := r.canonicalize(term)
		for _, typ := range opts.Types {
			g.Go(func() error {
				results := r.searchType(gctx, typ, canonical, orgID)
				stamped := make([]SearchResult, 0, len(results))
				for _, res := range results {
					res.MatchedTerm = term
					if viaAlias {
						res.Entity.MatchedAlias = term
						res.MatchType = MatchAlias
					}
					stamped = append(stamped, res)
				}
				mu.Lock()
				all = append(all, stamped...)
				mu.Unlock()
				return nil
			})
		}
	}
	g.Wait()

	return merge(all, opts)
}

// canonicalize resolves a term through the alias registry, falling back to
// the term itself.
func (r *Resolver) canonicalize(term string) (string, bool) {
	if r.registry != nil {
		if canonical, ok := r.registry.Resolve(term); ok && !textnorm.Equal(canonical, term) {
			return canonical, true
		}
	}
	return term, false
}

// searchType scores one canonical term against one tenant collection,
// memoizing the result set under a per-(type, normalized term, tenant) key.
func (r *Resolver) searchType(ctx context.Context, typ Type, term, orgID string) []SearchResult {
	collection, ok := collectionFor(typ)
	if !ok {
		return nil
	}

	key := cache.EntityKey(collection, orgID, textnorm.Normalize(term))
	if r.cache != nil {
		if cached, ok := cache.GetTyped[[]SearchResult](r.cache, key); ok {
			return cached
		}
	}

	records, err := r.queryCollection(ctx, typ, orgID)
	if err != nil {
		// Query errors and empty results are treated identically: an empty
		// candidate set for this type only.
		slog.Debug("entity search query failed",
			"type", string(typ), "organization", orgID, "error", err)
		records = nil
	}

	results := scoreRecords(records, typ, term, orgID)
	if r.cache != nil {
		r.cache.Set(key, results, subQueryTTL)
	}
	return results
}

func (r *Resolver) queryCollection(ctx context.Context, typ Type, orgID string) ([]store.Record, error) {
	switch typ {
	case TypeProject:
		return r.store.Projects(ctx, orgID)
	case TypeContact:
		return r.store.Contacts(ctx, orgID)
	case TypeWallet:
		return r.store.Wallets(ctx, orgID)
	case TypeCategory:
		return r.store.Categories(ctx, orgID)
	default:
		return nil, nil
	}
}

func collectionFor(typ Type) (string, bool) {
	switch typ {
	case TypeProject:
		return "projects", true
	case TypeContact:
		return "contacts", true
	case TypeWallet:
		return "wallets", true
	case TypeCategory:
		return "categories", true
	default:
		return "", false
	}
}

// scoreRecords matches every named record of a collection against a term.
// Wallets and categories skip the fuzzy tier: the collections are small and
// their names short enough that fuzzy containment mostly produces noise.
func scoreRecords(records []store.Record, typ Type, term, orgID string) []SearchResult {
	normTerm := textnorm.Normalize(term)
	if normTerm == "" {
		return nil
	}
	fuzzyTier := typ == TypeProject || typ == TypeContact

	var results []SearchResult
	for _, rec := range records {
		var (
			score float64
			match MatchType
		)
		switch {
		case textnorm.Equal(rec.Name, term):
			score, match = scoreExact, MatchExact
		case textnorm.Contains(rec.Name, term) || textnorm.Contains(term, rec.Name):
			score, match = scorePartial, MatchPartial
		case fuzzyTier && fuzzyMatch(rec.Name, normTerm):
			score, match = scoreFuzzy, MatchFuzzy
		default:
			continue
		}

		results = append(results, SearchResult{
			Entity: Entity{
				ID:             rec.ID,
				Name:           rec.Name,
				Type:           typ,
				OrganizationID: orgID,
				Confidence:     score,
			},
			Score:     score,
			MatchType: match,
		})
	}
	return results
}

// merge drops low-confidence candidates, collapses duplicates keeping the
// highest score per (type, id), sorts by score descending and truncates.
func merge(results []SearchResult, opts Options) []Entity {
	type key struct {
		typ Type
		id  string
	}
	best := make(map[key]SearchResult)
	for _, res := range results {
		if res.Score < opts.MinConfidence {
			continue
		}
		k := key{res.Entity.Type, res.Entity.ID}
		if prev, ok := best[k]; !ok || res.Score > prev.Score {
			best[k] = res
		}
	}

	merged := make([]Entity, 0, len(best))
	for _, res := range best {
		merged = append(merged, res.Entity)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Confidence != merged[j].Confidence {
			return merged[i].Confidence > merged[j].Confidence
		}
		return merged[i].Name < merged[j].Name
	})

	if len(merged) > opts.MaxResults {
		merged = merged[:opts.MaxResults]
	}
	return merged
}
