package store

import (
	"context"
	"testing"

	"github.com/obraflow/obraflow/internal/db"
)

func setupStore(t *testing.T, onChange func(string)) (*Store, string) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	s := New(database, onChange)
	orgID, err := s.CreateOrganization(context.Background(), "Constructora Sur", "ARS")
	if err != nil {
		t.Fatalf("CreateOrganization: %v", err)
	}
	return s, orgID
}

func TestProjectsScopedByTenant(t *testing.T) {
	s, orgID := setupStore(t, nil)
	ctx := context.Background()

	otherOrg, err := s.CreateOrganization(ctx, "Otra SA", "ARS")
	if err != nil {
		t.Fatalf("CreateOrganization: %v", err)
	}
	if _, err := s.CreateProject(ctx, orgID, "Casa Sur"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := s.CreateProject(ctx, otherOrg, "Torre Norte"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	records, err := s.Projects(ctx, orgID)
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Casa Sur" {
		t.Errorf("Projects = %+v, want only Casa Sur", records)
	}
}

func TestContactsJoinNames(t *testing.T) {
	s, orgID := setupStore(t, nil)
	ctx := context.Background()

	if _, err := s.CreateContact(ctx, orgID, "Juan", "López", "subcontratista"); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if _, err := s.CreateContact(ctx, orgID, "Corralón", "", "proveedor"); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	records, err := s.Contacts(ctx, orgID)
	if err != nil {
		t.Fatalf("Contacts: %v", err)
	}
	names := map[string]bool{}
	for _, r := range records {
		names[r.Name] = true
	}
	if !names["Juan López"] {
		t.Errorf("missing joined name, got %v", names)
	}
	if !names["Corralón"] {
		t.Errorf("empty last name not trimmed, got %v", names)
	}
}

func TestMutationsFireInvalidationHook(t *testing.T) {
	var calls []string
	s, orgID := setupStore(t, func(tenant string) { calls = append(calls, tenant) })
	ctx := context.Background()

	pid, err := s.CreateProject(ctx, orgID, "Casa Sur")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := s.CreateWallet(ctx, orgID, "Caja ARS", "ARS"); err != nil {
		t.Fatalf("CreateWallet: %v", err)
	}
	if _, err := s.CreateCategory(ctx, orgID, "Materiales", "Egreso"); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if err := s.RenameProject(ctx, orgID, pid, "Casa Sur II"); err != nil {
		t.Fatalf("RenameProject: %v", err)
	}

	if len(calls) != 4 {
		t.Fatalf("invalidation hook fired %d times, want 4", len(calls))
	}
	for _, c := range calls {
		if c != orgID {
			t.Errorf("hook called with tenant %q, want %q", c, orgID)
		}
	}
}

func TestAddMovementDoesNotInvalidate(t *testing.T) {
	fired := 0
	s, orgID := setupStore(t, func(string) { fired++ })
	ctx := context.Background()

	pid, err := s.CreateProject(ctx, orgID, "Casa Sur")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	fired = 0

	if _, err := s.AddMovement(ctx, orgID, Movement{
		ProjectID: pid, Type: "Egreso", Amount: 1500, Currency: "ARS",
	}); err != nil {
		t.Fatalf("AddMovement: %v", err)
	}
	if fired != 0 {
		t.Errorf("movement insert invalidated entity cache")
	}
}
