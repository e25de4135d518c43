package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/casegen/pkg/domain"
)

// LogHooks returns hooks that log every generation event on logger.
// Cases are logged at debug level, runs at info, failures at warn.
func LogHooks(logger *slog.Logger) domain.GenerationHooks {
	return domain.GenerationHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.DebugContext(ctx, "run_start", "run_id", e.RunID, "strategy", e.Strategy)
		},
		OnCase: func(ctx context.Context, e *domain.CaseEvent) {
			logger.DebugContext(ctx, "case", "run_id", e.RunID, "name", e.Name, "length", e.Length)
		},
		OnCaseFailure: func(ctx context.Context, e *domain.CaseEvent) {
			logger.WarnContext(ctx, "case_failure", "run_id", e.RunID, "name", e.Name, "reason", e.Message)
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			if e.Err != nil {
				logger.ErrorContext(ctx, "run_failed",
					"run_id", e.RunID,
					"strategy", e.Strategy,
					"error", e.Err,
				)
				return
			}
			logger.InfoContext(ctx, "run_complete",
				"run_id", e.RunID,
				"strategy", e.Strategy,
				"cases", e.Cases,
				"failures", e.Failures,
				"redundant", e.Redundant,
				"duration", e.Duration,
			)
		},
	}
}

// Combine returns hooks that call each of hooks in order. Nil callbacks are skipped.
func Combine(hooks ...domain.GenerationHooks) domain.GenerationHooks {
	return domain.GenerationHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			for _, h := range hooks {
				if h.OnRunStart != nil {
					h.OnRunStart(ctx, e)
				}
			}
		},
		OnCase: func(ctx context.Context, e *domain.CaseEvent) {
			for _, h := range hooks {
				if h.OnCase != nil {
					h.OnCase(ctx, e)
				}
			}
		},
		OnCaseFailure: func(ctx context.Context, e *domain.CaseEvent) {
			for _, h := range hooks {
				if h.OnCaseFailure != nil {
					h.OnCaseFailure(ctx, e)
				}
			}
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			for _, h := range hooks {
				if h.OnRunComplete != nil {
					h.OnRunComplete(ctx, e)
				}
			}
		},
	}
}
