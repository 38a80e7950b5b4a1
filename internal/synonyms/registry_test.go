package synonyms

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	r.Register(EntitySynonym{
		Canonical:  "Casa Sur",
		Aliases:    []string{"la casita", "CS"},
		EntityType: "project",
	})

	if got, ok := r.Resolve("la casita"); !ok || got != "Casa Sur" {
		t.Errorf("Resolve(alias) = %q, %v", got, ok)
	}
	// Case and diacritics are ignored.
	if got, ok := r.Resolve("CASA SUR"); !ok || got != "Casa Sur" {
		t.Errorf("Resolve(canonical, folded) = %q, %v", got, ok)
	}
	if _, ok := r.Resolve("obra norte"); ok {
		t.Error("Resolve matched an unregistered alias")
	}
}

func TestRegistryRegisterMerges(t *testing.T) {
	r := NewRegistry()
	r.Register(EntitySynonym{Canonical: "López Hnos", Aliases: []string{"lopez"}})
	r.Register(EntitySynonym{Canonical: "lópez hnos", Aliases: []string{"lopez", "los lopez"}})

	stats := r.Stats()
	if stats.Canonicals != 1 {
		t.Fatalf("Canonicals = %d, want 1", stats.Canonicals)
	}
	if stats.Aliases != 2 {
		t.Errorf("Aliases = %d, want 2 (duplicate skipped)", stats.Aliases)
	}
	if got := r.Aliases("López Hnos"); len(got) != 2 {
		t.Errorf("Aliases = %v", got)
	}
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry()
	r.Register(EntitySynonym{Canonical: "Casa Sur"})
	r.Clear()
	if s := r.Stats(); s.Canonicals != 0 {
		t.Errorf("Stats after Clear = %+v", s)
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			r.Register(EntitySynonym{
				Canonical: fmt.Sprintf("proyecto %d", n),
				Aliases:   []string{fmt.Sprintf("p%d", n)},
			})
		}(i)
		go func(n int) {
			defer wg.Done()
			r.Resolve(fmt.Sprintf("p%d", n))
		}(i)
	}
	wg.Wait()

	if s := r.Stats(); s.Canonicals != 20 {
		t.Errorf("Canonicals = %d, want 20", s.Canonicals)
	}
}
