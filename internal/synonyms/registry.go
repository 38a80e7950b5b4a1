package synonyms

import (
	"sync"

	"github.com/obraflow/obraflow/internal/textnorm"
)

// EntitySynonym maps a canonical entity name to the aliases users employ
// for it. EntityType optionally narrows the mapping to one entity kind.
type EntitySynonym struct {
	Canonical  string
	Aliases    []string
	EntityType string
}

// RegistryStats summarizes registry contents.
type RegistryStats struct {
	Canonicals int
	Aliases    int
}

// Registry is the mutable alias registry shared by all in-flight requests.
// It is constructed once at startup and injected; aliases learned at runtime
// are added through Register. Reads are frequent and writes are rare, so a
// single RWMutex over a small linear-scanned slice is sufficient.
type Registry struct {
	mu      sync.RWMutex
	entries []EntitySynonym
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a synonym mapping. If the canonical term is already
// registered (case- and diacritic-insensitive), the new aliases are merged
// into the existing entry, skipping duplicates.
func (r *Registry) Register(s EntitySynonym) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if textnorm.Equal(r.entries[i].Canonical, s.Canonical) {
			for _, a := range s.Aliases {
				if !containsFold(r.entries[i].Aliases, a) {
					r.entries[i].Aliases = append(r.entries[i].Aliases, a)
				}
			}
			return
		}
	}
	cp := EntitySynonym{Canonical: s.Canonical, EntityType: s.EntityType}
	cp.Aliases = append(cp.Aliases, s.Aliases...)
	r.entries = append(r.entries, cp)
}

// Resolve maps an alias (or a canonical term itself) to its canonical form.
// The canonical names are checked before aliases.
func (r *Registry) Resolve(alias string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if textnorm.Equal(e.Canonical, alias) {
			return e.Canonical, true
		}
	}
	for _, e := range r.entries {
		if containsFold(e.Aliases, alias) {
			return e.Canonical, true
		}
	}
	return "", false
}

// Aliases returns a copy of the aliases registered for canonical, or nil.
func (r *Registry) Aliases(canonical string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if textnorm.Equal(e.Canonical, canonical) {
			out := make([]string, len(e.Aliases))
			copy(out, e.Aliases)
			return out
		}
	}
	return nil
}

// Clear removes every registered mapping.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// Stats reports the number of canonical terms and total aliases held.
func (r *Registry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := RegistryStats{Canonicals: len(r.entries)}
	for _, e := range r.entries {
		s.Aliases += len(e.Aliases)
	}
	return s
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if textnorm.Equal(v, s) {
			return true
		}
	}
	return false
}
