package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for generation.
type Metrics struct {
	registry *prometheus.Registry

	Generations *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	Segments    *prometheus.CounterVec
	CacheHits   prometheus.Counter
	Length      prometheus.Histogram
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_generations_total",
				Help: "Total number of completed generations",
			},
			[]string{"grammar"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_failures_total",
				Help: "Total number of failed generations by error kind",
			},
			[]string{"kind", "phase"},
		),
		Segments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_segments_total",
				Help: "Total number of segments drawn",
			},
			[]string{"grammar"},
		),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_expansion_cache_hits_total",
			Help: "Total number of expansions served from the cache",
		}),
		Length: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbor_expansion_length",
			Help:    "Length of expanded strings",
			Buckets: prometheus.ExponentialBuckets(16, 4, 10),
		}),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "arbor_generation_duration_seconds",
				Help: "Duration of each phase",
			},
			[]string{"phase"},
		),
	}
	m.registry.MustRegister(m.Generations, m.Failures, m.Segments, m.CacheHits, m.Length, m.Duration)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnExpand: func(_ context.Context, e *domain.ExpandEvent) {
			m.Length.Observe(float64(e.Length))
			if e.Cached {
				m.CacheHits.Inc()
			}
			m.Duration.WithLabelValues(string(domain.EventExpand)).Observe(e.Duration.Seconds())
		},
		OnGenerate: func(_ context.Context, e *domain.GenerateEvent) {
			m.Generations.WithLabelValues(e.Grammar).Inc()
			m.Segments.WithLabelValues(e.Grammar).Add(float64(e.Segments))
			m.Duration.WithLabelValues(string(domain.EventGenerate)).Observe(e.Duration.Seconds())
		},
		OnError: func(_ context.Context, e *domain.ErrorEvent) {
			m.Failures.WithLabelValues(e.Kind, e.Phase).Inc()
		},
	}
}
