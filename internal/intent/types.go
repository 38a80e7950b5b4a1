// Package intent performs rule-based intent classification over normalized
// questions: keyword scoring against a pattern registry, temporal-scope
// extraction, filter detection, and validation of subtype preconditions.
package intent

import (
	"time"

	"github.com/obraflow/obraflow/internal/entities"
)

// Intent types.
const (
	TypeUnknown           = "unknown"
	TypeFinancialQuery    = "financial_query"
	TypeProjectStatus     = "project_status"
	TypeContactMovements  = "contact_movements"
	TypeWalletBalance     = "wallet_balance"
	TypeCategoryBreakdown = "category_breakdown"
)

// Financial query subtypes.
const (
	SubtypeExpenses = "expenses"
	SubtypeIncome   = "income"
	SubtypeBalance  = "balance"
)

// Pattern is one static registry row. Registry order only matters as the
// documented tie-break: on equal scores the first registered pattern wins.
type Pattern struct {
	Type             string
	Subtype          string
	Keywords         []string
	Priority         int
	RequiredEntities []entities.Type
	SuggestedTool    string
}

// TemporalScope is an explicit or keyword-inferred date range.
type TemporalScope struct {
	Start  *time.Time `json:"start,omitempty"`
	End    *time.Time `json:"end,omitempty"`
	Period string     `json:"period,omitempty"`
}

// Filters carries the optional, independently detected query filters.
type Filters struct {
	Currency string `json:"currency,omitempty"` // ARS | USD
	Type     string `json:"type,omitempty"`     // Egreso | Ingreso
	Role     string `json:"role,omitempty"`     // subcontratista | personal | socio
}

// Intent is the classification result. Immutable once produced.
type Intent struct {
	Type       string
	Subtype    string
	Confidence float64
	Entities   []entities.Entity
	Temporal   *TemporalScope
	Filters    Filters
}

// IsUnknown reports whether classification found no applicable pattern.
func (in Intent) IsUnknown() bool {
	return in.Type == TypeUnknown
}

// Validation is the outcome of checking an intent's preconditions.
type Validation struct {
	Valid          bool
	MissingContext []string
	Warnings       []string
}
