// Package planner maps a classified intent to the structured query plan
// consumed by the delegated execution collaborator: a tool name plus a
// typed parameter set assembled from resolved entities, detected filters,
// and the temporal scope.
package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/obraflow/obraflow/internal/entities"
	"github.com/obraflow/obraflow/internal/intent"
)

// DateRange is a concrete inclusive [Start, End] day pair.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Params is the typed parameter set of a plan. Typed fields instead of a
// free-form map, so a misspelled key cannot silently vanish downstream.
type Params struct {
	ProjectName  string     `json:"projectName,omitempty"`
	ContactName  string     `json:"contactName,omitempty"`
	WalletName   string     `json:"walletName,omitempty"`
	CategoryName string     `json:"categoryName,omitempty"`
	MovementType string     `json:"movementType,omitempty"`
	Currency     string     `json:"currency,omitempty"`
	Role         string     `json:"role,omitempty"`
	DateRange    *DateRange `json:"dateRange,omitempty"`
}

// Plan is the planner's output.
type Plan struct {
	Tool       string  `json:"tool"`
	Params     Params  `json:"params"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Planner assembles plans. Stateless apart from the injected clock.
type Planner struct {
	clock func() time.Time
}

// New returns a Planner using the wall clock.
func New() *Planner {
	return &Planner{clock: time.Now}
}

// Build assembles the plan for a classified intent. The tool name comes
// from the classifier's suggested-tool lookup. Only the first resolved
// entity of each type contributes a parameter.
func (p *Planner) Build(in intent.Intent, tool string) *Plan {
	plan := &Plan{
		Tool:       tool,
		Confidence: in.Confidence,
	}

	for _, e := range in.Entities {
		switch e.Type {
		case entities.TypeProject:
			if plan.Params.ProjectName == "" {
				plan.Params.ProjectName = e.Name
			}
		case entities.TypeContact:
			if plan.Params.ContactName == "" {
				plan.Params.ContactName = e.Name
			}
		case entities.TypeWallet:
			if plan.Params.WalletName == "" {
				plan.Params.WalletName = e.Name
			}
		case entities.TypeCategory:
			if plan.Params.CategoryName == "" {
				plan.Params.CategoryName = e.Name
			}
		}
	}

	plan.Params.MovementType = in.Filters.Type
	plan.Params.Currency = in.Filters.Currency
	plan.Params.Role = in.Filters.Role
	plan.Params.DateRange = p.dateRange(in.Temporal)

	plan.Reasoning = reasoning(in, plan)
	return plan
}

// dateRange concretizes the temporal scope: an explicit range is passed
// through; a keyword period is converted to calendar dates as of now.
func (p *Planner) dateRange(ts *intent.TemporalScope) *DateRange {
	if ts == nil {
		return nil
	}
	if ts.Start != nil && ts.End != nil {
		return &DateRange{Start: *ts.Start, End: *ts.End}
	}
	if start, end, ok := intent.PeriodRange(ts.Period, p.clock()); ok {
		return &DateRange{Start: start, End: end}
	}
	return nil
}

// reasoning builds the human-readable trace attached for observability.
func reasoning(in intent.Intent, plan *Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "intent %s", in.Type)
	if in.Subtype != "" {
		fmt.Fprintf(&b, "/%s", in.Subtype)
	}
	fmt.Fprintf(&b, " (confidence %.2f) -> %s", in.Confidence, plan.Tool)

	if len(in.Entities) > 0 {
		names := make([]string, 0, len(in.Entities))
		for _, e := range in.Entities {
			names = append(names, fmt.Sprintf("%s:%s", e.Type, e.Name))
		}
		fmt.Fprintf(&b, "; entities [%s]", strings.Join(names, ", "))
	}
	if plan.Params.DateRange != nil {
		fmt.Fprintf(&b, "; range %s..%s",
			plan.Params.DateRange.Start.Format("2006-01-02"),
			plan.Params.DateRange.End.Format("2006-01-02"))
	}
	if in.Filters != (intent.Filters{}) {
		fmt.Fprintf(&b, "; filters %+v", in.Filters)
	}
	return b.String()
}
