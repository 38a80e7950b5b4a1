// Package metrics exposes pipeline observability counters via Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives pipeline observations. The pipeline depends on this
// interface so tests can run with the no-op implementation.
type Recorder interface {
	// ObservePhase records the elapsed time of one pipeline phase.
	ObservePhase(phase string, d time.Duration)
	// CacheLookup records a whole-answer cache lookup outcome.
	CacheLookup(hit bool)
	// Intent counts a classification outcome by intent type.
	Intent(intentType string)
}

// PrometheusRecorder implements Recorder over Prometheus collectors.
type PrometheusRecorder struct {
	phaseSeconds *prometheus.HistogramVec
	cacheTotal   *prometheus.CounterVec
	intentsTotal *prometheus.CounterVec
}

// NewPrometheusRecorder registers the pipeline collectors on reg and
// returns the recorder. Must be called once per registry.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		phaseSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "obraflow_pipeline_phase_seconds",
			Help:    "Time spent per pipeline phase",
			Buckets: prometheus.DefBuckets,
		}, []string{"phase"}),
		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "obraflow_pipeline_cache_total",
			Help: "Whole-answer cache lookups by outcome",
		}, []string{"outcome"}),
		intentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "obraflow_intents_total",
			Help: "Classified intents by type",
		}, []string{"type"}),
	}
	reg.MustRegister(r.phaseSeconds, r.cacheTotal, r.intentsTotal)
	return r
}

func (r *PrometheusRecorder) ObservePhase(phase string, d time.Duration) {
	r.phaseSeconds.WithLabelValues(phase).Observe(d.Seconds())
}

func (r *PrometheusRecorder) CacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheTotal.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) Intent(intentType string) {
	r.intentsTotal.WithLabelValues(intentType).Inc()
}

// Nop is a Recorder that discards everything.
type Nop struct{}

func (Nop) ObservePhase(string, time.Duration) {}
func (Nop) CacheLookup(bool)                   {}
func (Nop) Intent(string)                      {}
