package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/casegen/pkg/domain"
	"github.com/aretw0/casegen/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnCase(ctx, &domain.CaseEvent{Strategy: domain.StrategyPath, Name: "a", Length: 2})
	hooks.OnCase(ctx, &domain.CaseEvent{Strategy: domain.StrategyPath, Name: "b", Length: 3})
	hooks.OnCaseFailure(ctx, &domain.CaseEvent{Strategy: domain.StrategyPath, Name: "c"})
	hooks.OnRunComplete(ctx, &domain.RunEvent{Strategy: domain.StrategyPath, Duration: time.Millisecond})
	hooks.OnRunComplete(ctx, &domain.RunEvent{Strategy: domain.StrategyEuler, Redundant: 4, Duration: time.Millisecond})
	hooks.OnRunComplete(ctx, &domain.RunEvent{Strategy: domain.StrategyEuler, Err: errors.New("boom")})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CasesTotal.WithLabelValues("path")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FailuresTotal.WithLabelValues("path")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("path", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("euler", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("euler", "error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.RedundantTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(m.CaseLength))
}

func TestCombine(t *testing.T) {
	var calls []string
	first := domain.GenerationHooks{
		OnCase: func(context.Context, *domain.CaseEvent) { calls = append(calls, "first") },
	}
	second := domain.GenerationHooks{
		OnCase:        func(context.Context, *domain.CaseEvent) { calls = append(calls, "second") },
		OnRunComplete: func(context.Context, *domain.RunEvent) { calls = append(calls, "complete") },
	}

	hooks := observability.Combine(first, second)
	hooks.OnRunStart(context.Background(), &domain.RunEvent{})
	hooks.OnCase(context.Background(), &domain.CaseEvent{})
	hooks.OnRunComplete(context.Background(), &domain.RunEvent{})

	assert.Equal(t, []string{"first", "second", "complete"}, calls)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := observability.LogHooks(logger)

	hooks.OnCaseFailure(context.Background(), &domain.CaseEvent{
		EventBase: domain.EventBase{RunID: "r1"},
		Name:      "A->B",
		Message:   "unreachable",
	})
	hooks.OnRunComplete(context.Background(), &domain.RunEvent{EventBase: domain.EventBase{RunID: "r1"}, Cases: 3})

	out := buf.String()
	assert.Contains(t, out, "case_failure")
	assert.Contains(t, out, "reason=unreachable")
	assert.Contains(t, out, "run_complete")
	assert.Contains(t, out, "cases=3")
}
