package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/obraflow/obraflow/internal/cache"
	"github.com/obraflow/obraflow/internal/entities"
	"github.com/obraflow/obraflow/internal/intent"
	"github.com/obraflow/obraflow/internal/metrics"
	"github.com/obraflow/obraflow/internal/planner"
	"github.com/obraflow/obraflow/internal/synonyms"
)

// aiResponseTTL bounds how long a whole answer short-circuits repeat
// questions.
const aiResponseTTL = 15 * time.Minute

// Pipeline is the orchestrator. All collaborators are injected at
// construction; the pipeline itself holds no per-request state.
type Pipeline struct {
	registry   *synonyms.Registry
	cache      *cache.Cache
	resolver   *entities.Resolver
	classifier *intent.Classifier
	planner    *planner.Planner
	metrics    metrics.Recorder
}

// New wires a pipeline. recorder may be metrics.Nop{} when observability
// is not attached.
func New(reg *synonyms.Registry, c *cache.Cache, r *entities.Resolver, cl *intent.Classifier, pl *planner.Planner, recorder metrics.Recorder) *Pipeline {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Pipeline{
		registry:   reg,
		cache:      c,
		resolver:   r,
		classifier: cl,
		planner:    pl,
		metrics:    recorder,
	}
}

// Run processes one question through the phase machine. It always returns
// a well-formed context and never panics to the caller: unexpected
// failures land in the error phase with their message recorded.
func (p *Pipeline) Run(ctx context.Context, question string, req ReqContext) (pctx *Context) {
	pctx = &Context{
		Question: question,
		Request:  req,
		Metadata: Metadata{
			Phase:        PhaseNormalizing,
			PhaseTimings: make(map[Phase]time.Duration),
		},
		started: time.Now(),
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("pipeline panic recovered", "error", r, "organization", req.OrganizationID)
			p.fail(pctx, fmt.Sprintf("%v", r))
		}
		pctx.total = time.Since(pctx.started)
	}()

	p.normalize(pctx)

	// The whole-response lookup happens right after entering
	// resolving_entities; a hit skips every remaining phase.
	pctx.Metadata.Phase = PhaseResolvingEntities
	if result, ok := p.cache.GetAIResponse(question, req.OrganizationID); ok {
		p.metrics.CacheLookup(true)
		pctx.Result = result
		pctx.Metadata.CacheHit = true
		pctx.Metadata.Phase = PhaseComplete
		return pctx
	}
	p.metrics.CacheLookup(false)

	p.resolveEntities(ctx, pctx)

	if !p.classifyIntent(pctx) {
		return pctx
	}

	p.planQuery(pctx)

	// Executing and formatting are intentionally pass-through: tool
	// execution and natural-language formatting belong to the delegated
	// LLM collaborator consuming this context.
	pctx.Metadata.Phase = PhaseExecuting
	pctx.Metadata.Phase = PhaseFormatting

	pctx.Metadata.Phase = PhaseComplete
	return pctx
}

func (p *Pipeline) normalize(pctx *Context) {
	start := time.Now()
	pctx.NormalizedQuestion = synonyms.Expand(pctx.Question)
	p.observe(pctx, PhaseNormalizing, start)
}

func (p *Pipeline) resolveEntities(ctx context.Context, pctx *Context) {
	start := time.Now()
	ents := p.resolver.Resolve(ctx, pctx.Question, pctx.Request.OrganizationID, entities.Options{})
	p.observe(pctx, PhaseResolvingEntities, start)

	pctx.Intent = &intent.Intent{Entities: ents}
}

// classifyIntent runs classification and validation. Returns false when
// validation terminates the pipeline.
func (p *Pipeline) classifyIntent(pctx *Context) bool {
	pctx.Metadata.Phase = PhaseClassifyingIntent
	start := time.Now()

	var ents []entities.Entity
	if pctx.Intent != nil {
		ents = pctx.Intent.Entities
	}
	in := p.classifier.Classify(pctx.Question, ents)
	pctx.Intent = &in
	pctx.Metadata.Confidence = in.Confidence
	p.metrics.Intent(string(in.Type))
	p.observe(pctx, PhaseClassifyingIntent, start)

	v := intent.Validate(in)
	pctx.Metadata.Warnings = append(pctx.Metadata.Warnings, v.Warnings...)
	if !v.Valid {
		p.fail(pctx, strings.Join(v.MissingContext, "; "))
		return false
	}
	return true
}

func (p *Pipeline) planQuery(pctx *Context) {
	pctx.Metadata.Phase = PhasePlanningQuery
	start := time.Now()
	tool := p.classifier.SuggestedTool(*pctx.Intent)
	pctx.Plan = p.planner.Build(*pctx.Intent, tool)
	p.observe(pctx, PhasePlanningQuery, start)
}

func (p *Pipeline) observe(pctx *Context, phase Phase, start time.Time) {
	d := time.Since(start)
	pctx.Metadata.PhaseTimings[phase] = d
	p.metrics.ObservePhase(string(phase), d)
}

func (p *Pipeline) fail(pctx *Context, msg string) {
	pctx.Metadata.Phase = PhaseError
	pctx.Err = msg
}

// CacheResult stores a finished answer so an identical question within the
// TTL window short-circuits the whole pipeline. Called by the external
// collaborator after it produces the final answer.
func (p *Pipeline) CacheResult(question, tenantID, result string) {
	p.cache.SetAIResponse(question, tenantID, result, aiResponseTTL)
}

// InvalidateEntityCache drops the tenant's memoized entity searches. The
// boundary entity-mutation collaborators call after create/rename/delete.
func (p *Pipeline) InvalidateEntityCache(tenantID string) int {
	return p.cache.InvalidateEntityCache(tenantID)
}
