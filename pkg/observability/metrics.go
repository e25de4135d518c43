package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/casegen/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by generation hooks.
type Metrics struct {
	RunsTotal      *prometheus.CounterVec
	RunDuration    *prometheus.HistogramVec
	CasesTotal     *prometheus.CounterVec
	FailuresTotal  *prometheus.CounterVec
	CaseLength     *prometheus.HistogramVec
	RedundantTotal prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "casegen_runs_total",
				Help: "Total number of strategy runs",
			},
			[]string{"strategy", "status"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "casegen_run_duration_seconds",
				Help:    "Duration of strategy runs",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"strategy"},
		),
		CasesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "casegen_cases_total",
				Help: "Total number of generated cases",
			},
			[]string{"strategy"},
		),
		FailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "casegen_case_failures_total",
				Help: "Total number of cases that could not be generated",
			},
			[]string{"strategy"},
		),
		CaseLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "casegen_case_transitions",
				Help:    "Number of transitions per generated case",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"strategy"},
		),
		RedundantTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "casegen_redundant_transitions_total",
				Help: "Total number of repeated transitions in covering trails",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.RunsTotal,
			m.RunDuration,
			m.CasesTotal,
			m.FailuresTotal,
			m.CaseLength,
			m.RedundantTotal,
		)
	}
	return m
}

// Hooks returns generation hooks recording into m.
func (m *Metrics) Hooks() domain.GenerationHooks {
	return domain.GenerationHooks{
		OnCase: func(_ context.Context, e *domain.CaseEvent) {
			s := string(e.Strategy)
			m.CasesTotal.WithLabelValues(s).Inc()
			m.CaseLength.WithLabelValues(s).Observe(float64(e.Length))
		},
		OnCaseFailure: func(_ context.Context, e *domain.CaseEvent) {
			m.FailuresTotal.WithLabelValues(string(e.Strategy)).Inc()
		},
		OnRunComplete: func(_ context.Context, e *domain.RunEvent) {
			s := string(e.Strategy)
			status := "ok"
			if e.Err != nil {
				status = "error"
			}
			m.RunsTotal.WithLabelValues(s, status).Inc()
			m.RunDuration.WithLabelValues(s).Observe(e.Duration.Seconds())
			m.RedundantTotal.Add(float64(e.Redundant))
		},
	}
}
