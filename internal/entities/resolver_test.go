package entities

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obraflow/obraflow/internal/cache"
	"github.com/obraflow/obraflow/internal/store"
	"github.com/obraflow/obraflow/internal/synonyms"
)

// mockStore implements store.Reader from fixed slices.
type mockStore struct {
	projects   []store.Record
	contacts   []store.Record
	wallets    []store.Record
	categories []store.Record
	err        error
	calls      int
}

func (m *mockStore) Projects(ctx context.Context, orgID string) ([]store.Record, error) {
	m.calls++
	return m.projects, m.err
}

func (m *mockStore) Contacts(ctx context.Context, orgID string) ([]store.Record, error) {
	m.calls++
	return m.contacts, m.err
}

func (m *mockStore) Wallets(ctx context.Context, orgID string) ([]store.Record, error) {
	m.calls++
	return m.wallets, m.err
}

func (m *mockStore) Categories(ctx context.Context, orgID string) ([]store.Record, error) {
	m.calls++
	return m.categories, m.err
}

func testStore() *mockStore {
	return &mockStore{
		projects: []store.Record{
			{ID: "p1", Name: "Casa Sur"},
			{ID: "p2", Name: "Edificio Güemes Torre B"},
			{ID: "p3", Name: "La Josefina"},
		},
		contacts: []store.Record{
			{ID: "c1", Name: "Juan López"},
			{ID: "c2", Name: "Corralón El Aguante"},
		},
		wallets: []store.Record{
			{ID: "w1", Name: "Caja ARS"},
			{ID: "w2", Name: "Banco USD"},
		},
		categories: []store.Record{
			{ID: "cat1", Name: "Materiales"},
			{ID: "cat2", Name: "Mano de Obra"},
		},
	}
}

func resolve(t *testing.T, ms *mockStore, question string, opts Options) []Entity {
	t.Helper()
	r := NewResolver(ms, cache.New(), synonyms.NewRegistry())
	return r.Resolve(context.Background(), question, "org1", opts)
}

func TestResolveExactMatch(t *testing.T) {
	got := resolve(t, testStore(), "¿Cuánto gasté en Casa Sur este mes?", Options{})

	require.NotEmpty(t, got)
	assert.Equal(t, "Casa Sur", got[0].Name)
	assert.Equal(t, TypeProject, got[0].Type)
	assert.Equal(t, 1.0, got[0].Confidence)
	assert.Equal(t, "org1", got[0].OrganizationID)
}

func TestResolveScoreTiers(t *testing.T) {
	ms := testStore()

	exact := scoreRecords(ms.projects, TypeProject, "Casa Sur", "org1")
	require.Len(t, exact, 1)
	assert.Equal(t, MatchExact, exact[0].MatchType)
	assert.Equal(t, scoreExact, exact[0].Score)

	partial := scoreRecords(ms.projects, TypeProject, "Güemes", "org1")
	require.Len(t, partial, 1)
	assert.Equal(t, MatchPartial, partial[0].MatchType)
	assert.Equal(t, scorePartial, partial[0].Score)

	// "lopez gasfiter" is not a substring of "Juan López" nor the other
	// way around, but the last-word variant "lopez" sits inside the term.
	fuzzy := scoreRecords(ms.contacts, TypeContact, "lópez gasfiter", "org1")
	require.Len(t, fuzzy, 1)
	assert.Equal(t, MatchFuzzy, fuzzy[0].MatchType)
	assert.Equal(t, scoreFuzzy, fuzzy[0].Score)
}

func TestScoreOrderingInvariant(t *testing.T) {
	assert.Greater(t, scoreExact, scorePartial)
	assert.Greater(t, scorePartial, scoreFuzzy)
}

func TestWalletsAndCategoriesSkipFuzzyTier(t *testing.T) {
	records := []store.Record{{ID: "w1", Name: "Caja Chica Obrador"}}

	// "obrador viejo" is not a substring of the name nor vice versa, so
	// only the fuzzy tier (last-word variant "obrador") can reach it —
	// and wallets intentionally have no fuzzy tier.
	asProject := scoreRecords(records, TypeProject, "obrador viejo", "org1")
	asWallet := scoreRecords(records, TypeWallet, "obrador viejo", "org1")

	require.NotEmpty(t, asProject)
	assert.Equal(t, MatchFuzzy, asProject[0].MatchType)
	assert.Empty(t, asWallet, "wallet matching must not use the fuzzy tier")
}

func TestResolveDedupKeepsHighestScore(t *testing.T) {
	// "Casa Sur" is matched exactly by the capitalized extractor and
	// partially by the preposition extractor ("Casa Sur este mes"); the
	// duplicate must collapse to the exact score.
	got := resolve(t, testStore(), "¿Cuánto gasté en Casa Sur este mes?", Options{})

	seen := map[string]int{}
	for _, e := range got {
		seen[string(e.Type)+"/"+e.ID]++
	}
	for k, n := range seen {
		assert.Equalf(t, 1, n, "duplicate entity %s", k)
	}
	require.NotEmpty(t, got)
	assert.Equal(t, 1.0, got[0].Confidence)
}

func TestResolveMinConfidenceAndMaxResults(t *testing.T) {
	ms := testStore()
	got := resolve(t, ms, `La obra "Casa Sur" de Juan López en Caja ARS`, Options{
		MinConfidence: 0.9,
		MaxResults:    2,
	})

	assert.LessOrEqual(t, len(got), 2)
	for _, e := range got {
		assert.GreaterOrEqual(t, e.Confidence, 0.9)
	}
}

func TestResolveAliasViaRegistry(t *testing.T) {
	reg := synonyms.NewRegistry()
	reg.Register(synonyms.EntitySynonym{
		Canonical:  "Casa Sur",
		Aliases:    []string{"La Casita"},
		EntityType: "project",
	})
	r := NewResolver(testStore(), cache.New(), reg)

	got := r.Resolve(context.Background(), `¿Cómo viene "La Casita"?`, "org1", Options{})

	require.NotEmpty(t, got)
	assert.Equal(t, "Casa Sur", got[0].Name)
	assert.Equal(t, "La Casita", got[0].MatchedAlias)
}

func TestResolveQueryErrorYieldsEmptySet(t *testing.T) {
	ms := &mockStore{err: errors.New("db down")}
	got := resolve(t, ms, "¿Cuánto gasté en Casa Sur?", Options{})
	assert.Empty(t, got)
}

func TestResolveUsesSubQueryCache(t *testing.T) {
	ms := testStore()
	c := cache.New()
	r := NewResolver(ms, c, synonyms.NewRegistry())
	ctx := context.Background()

	r.Resolve(ctx, "gastos de Casa Sur", "org1", Options{})
	first := ms.calls
	require.Greater(t, first, 0)

	r.Resolve(ctx, "gastos de Casa Sur", "org1", Options{})
	assert.Equal(t, first, ms.calls, "second resolution should hit the sub-query cache")
}

func TestResolveNoTerms(t *testing.T) {
	got := resolve(t, testStore(), "hola", Options{})
	assert.Empty(t, got)
}
