package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/obraflow/obraflow/internal/assistant"
	"github.com/obraflow/obraflow/internal/cache"
	"github.com/obraflow/obraflow/internal/config"
	"github.com/obraflow/obraflow/internal/db"
	"github.com/obraflow/obraflow/internal/entities"
	"github.com/obraflow/obraflow/internal/intent"
	"github.com/obraflow/obraflow/internal/llm"
	"github.com/obraflow/obraflow/internal/metrics"
	"github.com/obraflow/obraflow/internal/pipeline"
	"github.com/obraflow/obraflow/internal/planner"
	"github.com/obraflow/obraflow/internal/store"
	"github.com/obraflow/obraflow/internal/synonyms"
)

// app bundles the wired components shared by the serve and ask commands.
type app struct {
	db        *db.DB
	store     *store.Store
	cache     *cache.Cache
	resolver  *entities.Resolver
	pipeline  *pipeline.Pipeline
	assistant *assistant.Assistant
}

func (a *app) Close() error {
	return a.db.Close()
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `obraflow init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildApp wires the full assistant stack from config. The recorder may be
// nil for commands that do not expose /metrics.
func buildApp(cfg *config.Config, recorder metrics.Recorder) (*app, error) {
	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := cache.New()
	reg := synonyms.NewRegistry()
	st := store.New(database, func(tenantID string) {
		c.InvalidateEntityCache(tenantID)
	})
	resolver := entities.NewResolver(st, c, reg)
	p := pipeline.New(reg, c, resolver, intent.NewClassifier(), planner.New(), recorder)

	provider, err := llm.NewProvider(llm.Options{
		Provider:       string(cfg.Provider),
		Model:          cfg.Model,
		OllamaHost:     cfg.OllamaHost,
		RequestsPerMin: cfg.RequestsPerMinute,
		CircuitBreaker: cfg.CircuitBreaker,
	})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("creating llm provider: %w", err)
	}

	opts := []assistant.Option{assistant.WithCompletionLimits(cfg.MaxTokens, cfg.Temperature)}
	if cfg.SystemPrompt != "" {
		opts = append(opts, assistant.WithSystemPrompt(cfg.SystemPrompt))
	}

	return &app{
		db:        database,
		store:     st,
		cache:     c,
		resolver:  resolver,
		pipeline:  p,
		assistant: assistant.New(p, provider, opts...),
	}, nil
}

// newRecorder registers pipeline metrics on the default Prometheus registry.
func newRecorder() metrics.Recorder {
	return metrics.NewPrometheusRecorder(prometheus.DefaultRegisterer)
}
