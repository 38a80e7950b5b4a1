// Package pipeline composes the text normalizer, synonym engine, entity
// resolver, intent classifier, and query planner into the sequential
// request-processing state machine that prepares a structured context
// before any LLM call is made.
package pipeline

import (
	"time"

	"github.com/obraflow/obraflow/internal/intent"
	"github.com/obraflow/obraflow/internal/planner"
)

// Phase is the pipeline state. Transitions are strictly sequential and
// forward-only within one invocation.
type Phase string

const (
	PhaseNormalizing       Phase = "normalizing"
	PhaseResolvingEntities Phase = "resolving_entities"
	PhaseClassifyingIntent Phase = "classifying_intent"
	PhasePlanningQuery     Phase = "planning_query"
	PhaseExecuting         Phase = "executing"
	PhaseFormatting        Phase = "formatting"
	PhaseComplete          Phase = "complete"
	PhaseError             Phase = "error"
)

// ReqContext identifies the caller of one pipeline invocation.
type ReqContext struct {
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId"`
	SessionID      string `json:"sessionId,omitempty"`
	Language       string `json:"language,omitempty"`
	Timezone       string `json:"timezone,omitempty"`
}

// Metadata carries per-request observability: the terminal phase, phase
// timings, whether the whole-answer cache short-circuited the run, the
// classification confidence, and any soft warnings.
type Metadata struct {
	Phase        Phase                   `json:"phase"`
	PhaseTimings map[Phase]time.Duration `json:"phaseTimings"`
	CacheHit     bool                    `json:"cacheHit"`
	Confidence   float64                 `json:"confidence"`
	Warnings     []string                `json:"warnings,omitempty"`
}

// Context is the top-level aggregate threaded through the phases: one
// instance per request, owned by the pipeline, handed to the caller at the
// end and then discarded.
type Context struct {
	Question           string
	NormalizedQuestion string
	Request            ReqContext

	Intent *intent.Intent
	Plan   *planner.Plan

	// Result holds the cached whole answer on a cache hit; Err holds the
	// terminal error message when Metadata.Phase is PhaseError.
	Result string
	Err    string

	Metadata Metadata

	started time.Time
	total   time.Duration
}

// Summary is the metrics view of a finished context.
type Summary struct {
	TotalTime      time.Duration           `json:"totalTime"`
	PhaseBreakdown map[Phase]time.Duration `json:"phaseBreakdown"`
	CacheHit       bool                    `json:"cacheHit"`
	Confidence     float64                 `json:"confidence"`
}

// Metrics exposes total and per-phase timings of a finished run.
func Metrics(pctx *Context) Summary {
	return Summary{
		TotalTime:      pctx.total,
		PhaseBreakdown: pctx.Metadata.PhaseTimings,
		CacheHit:       pctx.Metadata.CacheHit,
		Confidence:     pctx.Metadata.Confidence,
	}
}
