// Package assistant ties the understanding pipeline to an LLM provider:
// the pipeline builds structured context from the user's question, the
// provider writes the reply, and good replies are cached per tenant.
package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/obraflow/obraflow/internal/llm"
	"github.com/obraflow/obraflow/internal/pipeline"
)

// DefaultSystemPrompt frames the provider as the finance copilot the
// product ships. Questions and answers are in Spanish.
const DefaultSystemPrompt = `Sos el asistente financiero de ObraFlow, una plataforma de gestión
de obras de construcción. Respondés preguntas sobre gastos, ingresos,
saldos, proyectos, contactos, billeteras y categorías, siempre en
español y en tono directo. Si la información detectada no alcanza para
responder con precisión, pedí la aclaración mínima necesaria.`

// Assistant answers one question at a time. Safe for concurrent use.
type Assistant struct {
	pipeline     *pipeline.Pipeline
	provider     llm.Provider
	systemPrompt string
	maxTokens    int
	temperature  float64
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithSystemPrompt overrides the base system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(a *Assistant) { a.systemPrompt = prompt }
}

// WithCompletionLimits sets the per-answer token cap and sampling temperature.
func WithCompletionLimits(maxTokens int, temperature float64) Option {
	return func(a *Assistant) {
		a.maxTokens = maxTokens
		a.temperature = temperature
	}
}

// New creates an assistant over the given pipeline and provider.
func New(p *pipeline.Pipeline, provider llm.Provider, opts ...Option) *Assistant {
	a := &Assistant{
		pipeline:     p,
		provider:     provider,
		systemPrompt: DefaultSystemPrompt,
		maxTokens:    1024,
		temperature:  0.3,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Response is one answered question plus how it was produced.
type Response struct {
	Text     string            `json:"text"`
	CacheHit bool              `json:"cacheHit"`
	Context  *pipeline.Context `json:"context,omitempty"`
}

// Answer runs the question through the pipeline and, unless the answer
// was cached or understanding failed, asks the provider to write the
// reply. Successful fresh answers are cached for identical repeats.
func (a *Assistant) Answer(ctx context.Context, question string, req pipeline.ReqContext) (*Response, error) {
	pctx := a.pipeline.Run(ctx, question, req)

	if pctx.Metadata.CacheHit {
		return &Response{Text: pctx.Result, CacheHit: true, Context: pctx}, nil
	}

	if pctx.Metadata.Phase == pipeline.PhaseError {
		// Understanding failed with a user-facing reason; no provider
		// call and no caching of the apology.
		return &Response{
			Text:    fmt.Sprintf("No pude resolver tu consulta: %s.", pctx.Err),
			Context: pctx,
		}, nil
	}

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: pipeline.EnrichSystemPrompt(a.systemPrompt, pctx)},
			{Role: llm.RoleUser, Content: question},
		},
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	slog.Debug("question answered",
		"organization", req.OrganizationID,
		"intent", intentType(pctx),
		"provider", a.provider.Name(),
		"inputTokens", resp.InputTokens,
		"outputTokens", resp.OutputTokens)

	a.pipeline.CacheResult(question, req.OrganizationID, resp.Content)
	pctx.Result = resp.Content
	return &Response{Text: resp.Content, Context: pctx}, nil
}

func intentType(pctx *pipeline.Context) string {
	if pctx.Intent == nil {
		return ""
	}
	return string(pctx.Intent.Type)
}
