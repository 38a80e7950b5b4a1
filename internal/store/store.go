// Package store is the tenant-scoped data access layer for the four named
// collections the entity resolver searches (projects, contacts, wallets,
// categories), plus the mutations the rest of the system performs on them.
// Every query is partitioned by organization id.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/obraflow/obraflow/internal/db"
)

// Record is one named row of a searchable collection.
type Record struct {
	ID   string
	Name string
}

// Reader is the read-only boundary the entity resolver consumes.
type Reader interface {
	Projects(ctx context.Context, orgID string) ([]Record, error)
	Contacts(ctx context.Context, orgID string) ([]Record, error)
	Wallets(ctx context.Context, orgID string) ([]Record, error)
	Categories(ctx context.Context, orgID string) ([]Record, error)
}

// Store implements Reader over SQLite and notifies the entity-cache
// invalidation hook on every name-affecting mutation.
type Store struct {
	db *db.DB

	// onEntityChange is called with the tenant id after any create, rename
	// or delete of a project, contact, wallet or category. May be nil.
	onEntityChange func(tenantID string)
}

// New creates a Store. onEntityChange may be nil when no cache is attached.
func New(database *db.DB, onEntityChange func(tenantID string)) *Store {
	return &Store{db: database, onEntityChange: onEntityChange}
}

func (s *Store) notify(orgID string) {
	if s.onEntityChange != nil {
		s.onEntityChange(orgID)
	}
}

// Projects returns all project records for the organization.
func (s *Store) Projects(ctx context.Context, orgID string) ([]Record, error) {
	return s.queryRecords(ctx,
		`SELECT id, name FROM projects WHERE organization_id = ? ORDER BY name`, orgID)
}

// Contacts returns all contact records for the organization. The record
// name is the joined first and last name.
func (s *Store) Contacts(ctx context.Context, orgID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, first_name, last_name FROM contacts WHERE organization_id = ? ORDER BY last_name, first_name`, orgID)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var first, last string
		if err := rows.Scan(&r.ID, &first, &last); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		r.Name = strings.TrimSpace(first + " " + last)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Wallets returns all wallet records for the organization.
func (s *Store) Wallets(ctx context.Context, orgID string) ([]Record, error) {
	return s.queryRecords(ctx,
		`SELECT id, name FROM wallets WHERE organization_id = ? ORDER BY name`, orgID)
}

// Categories returns all category records for the organization.
func (s *Store) Categories(ctx context.Context, orgID string) ([]Record, error) {
	return s.queryRecords(ctx,
		`SELECT id, name FROM categories WHERE organization_id = ? ORDER BY name`, orgID)
}

func (s *Store) queryRecords(ctx context.Context, query, orgID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CreateOrganization inserts a tenant and returns its id.
func (s *Store) CreateOrganization(ctx context.Context, name, defaultCurrency string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO organizations (id, name, default_currency) VALUES (?, ?, ?)`,
		id, name, defaultCurrency)
	if err != nil {
		return "", fmt.Errorf("creating organization: %w", err)
	}
	return id, nil
}

// CreateProject inserts a project and invalidates the tenant's entity cache.
func (s *Store) CreateProject(ctx context.Context, orgID, name string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, organization_id, name) VALUES (?, ?, ?)`, id, orgID, name)
	if err != nil {
		return "", fmt.Errorf("creating project: %w", err)
	}
	s.notify(orgID)
	return id, nil
}

// CreateContact inserts a contact and invalidates the tenant's entity cache.
func (s *Store) CreateContact(ctx context.Context, orgID, firstName, lastName, role string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, organization_id, first_name, last_name, role) VALUES (?, ?, ?, ?, ?)`,
		id, orgID, firstName, lastName, role)
	if err != nil {
		return "", fmt.Errorf("creating contact: %w", err)
	}
	s.notify(orgID)
	return id, nil
}

// CreateWallet inserts a wallet and invalidates the tenant's entity cache.
func (s *Store) CreateWallet(ctx context.Context, orgID, name, currency string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wallets (id, organization_id, name, currency) VALUES (?, ?, ?, ?)`,
		id, orgID, name, currency)
	if err != nil {
		return "", fmt.Errorf("creating wallet: %w", err)
	}
	s.notify(orgID)
	return id, nil
}

// CreateCategory inserts a category and invalidates the tenant's entity cache.
func (s *Store) CreateCategory(ctx context.Context, orgID, name, kind string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, organization_id, name, kind) VALUES (?, ?, ?, ?)`,
		id, orgID, name, kind)
	if err != nil {
		return "", fmt.Errorf("creating category: %w", err)
	}
	s.notify(orgID)
	return id, nil
}

// RenameProject updates a project name and invalidates the tenant's entity
// cache; stale cached matches for the old name would otherwise survive.
func (s *Store) RenameProject(ctx context.Context, orgID, projectID, newName string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = ? WHERE id = ? AND organization_id = ?`, newName, projectID, orgID)
	if err != nil {
		return fmt.Errorf("renaming project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	s.notify(orgID)
	return nil
}

// Movement is one financial movement row, used by the seed loader.
type Movement struct {
	ProjectID  string
	ContactID  string
	WalletID   string
	CategoryID string
	Type       string
	Amount     float64
	Currency   string
	Description string
	OccurredAt time.Time
}

// AddMovement inserts a movement. Movements carry no searchable name, so
// the entity cache is left untouched.
func (s *Store) AddMovement(ctx context.Context, orgID string, m Movement) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO movements (id, organization_id, project_id, contact_id, wallet_id, category_id, type, amount, currency, description, occurred_at)
		 VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), ?, ?, ?, ?, ?)`,
		id, orgID, m.ProjectID, m.ContactID, m.WalletID, m.CategoryID, m.Type, m.Amount, m.Currency, m.Description, m.OccurredAt)
	if err != nil {
		return "", fmt.Errorf("adding movement: %w", err)
	}
	return id, nil
}
