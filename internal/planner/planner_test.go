package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obraflow/obraflow/internal/entities"
	"github.com/obraflow/obraflow/internal/intent"
)

func fixedPlanner(t *testing.T, now time.Time) *Planner {
	t.Helper()
	p := New()
	p.clock = func() time.Time { return now }
	return p
}

func TestBuildScenarioPlan(t *testing.T) {
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	p := fixedPlanner(t, now)

	in := intent.Intent{
		Type:       intent.TypeFinancialQuery,
		Subtype:    intent.SubtypeExpenses,
		Confidence: 0.8,
		Entities: []entities.Entity{{
			ID: "p1", Name: "Casa Sur", Type: entities.TypeProject, Confidence: 1.0,
		}},
		Temporal: &intent.TemporalScope{Period: intent.PeriodMonth},
		Filters:  intent.Filters{Type: intent.MovementExpense},
	}

	plan := p.Build(in, "getDateRangeMovements")

	assert.Equal(t, "getDateRangeMovements", plan.Tool)
	assert.Equal(t, "Casa Sur", plan.Params.ProjectName)
	assert.Equal(t, intent.MovementExpense, plan.Params.MovementType)
	assert.Equal(t, 0.8, plan.Confidence)
	require.NotNil(t, plan.Params.DateRange)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), plan.Params.DateRange.Start)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), plan.Params.DateRange.End)
	assert.NotEmpty(t, plan.Reasoning)
}

func TestBuildFirstEntityPerTypeOnly(t *testing.T) {
	p := New()
	in := intent.Intent{
		Type: intent.TypeFinancialQuery,
		Entities: []entities.Entity{
			{Name: "Casa Sur", Type: entities.TypeProject, Confidence: 1.0},
			{Name: "Torre Norte", Type: entities.TypeProject, Confidence: 0.8},
			{Name: "Juan López", Type: entities.TypeContact, Confidence: 0.9},
		},
	}

	plan := p.Build(in, "getDateRangeMovements")

	assert.Equal(t, "Casa Sur", plan.Params.ProjectName)
	assert.Equal(t, "Juan López", plan.Params.ContactName)
}

func TestBuildExplicitRangePassedThrough(t *testing.T) {
	p := New()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	in := intent.Intent{
		Type:     intent.TypeFinancialQuery,
		Temporal: &intent.TemporalScope{Start: &start, End: &end},
	}

	plan := p.Build(in, "getDateRangeMovements")

	require.NotNil(t, plan.Params.DateRange)
	assert.Equal(t, start, plan.Params.DateRange.Start)
	assert.Equal(t, end, plan.Params.DateRange.End)
}

func TestBuildNoTemporalScope(t *testing.T) {
	p := New()
	plan := p.Build(intent.Intent{Type: intent.TypeFinancialQuery}, "getGeneralSummary")
	assert.Nil(t, plan.Params.DateRange)
}

func TestBuildFiltersCopied(t *testing.T) {
	p := New()
	in := intent.Intent{
		Type: intent.TypeContactMovements,
		Filters: intent.Filters{
			Currency: "USD",
			Type:     intent.MovementExpense,
			Role:     "subcontratista",
		},
	}

	plan := p.Build(in, "getContactMovements")

	assert.Equal(t, "USD", plan.Params.Currency)
	assert.Equal(t, intent.MovementExpense, plan.Params.MovementType)
	assert.Equal(t, "subcontratista", plan.Params.Role)
}
