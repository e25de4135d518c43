package casegen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/casegen/internal/presentation/graph"
	"github.com/aretw0/casegen/internal/strategy"
	"github.com/aretw0/casegen/pkg/domain"
	"github.com/aretw0/casegen/pkg/ports"
)

// ErrNoStore is returned by run lookups on an engine without a case store.
var ErrNoStore = errors.New("no case store configured")

// Options carries the per-strategy parameters of a run.
type Options = strategy.Options

// Engine is the high-level entry point for the casegen library.
// It loads machines, runs strategies, reports every case through hooks and
// persists the outcome when a store is configured.
type Engine struct {
	hooks  domain.GenerationHooks
	logger *slog.Logger
	store  ports.CaseStore
	Name   string

	now   func() time.Time
	newID func() string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithHooks registers observability hooks.
func WithHooks(hooks domain.GenerationHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore persists every generated run.
func WithStore(store ports.CaseStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithName labels logs and persisted runs with the machine's name.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("graph", eng.Name)
	}
	return eng
}

// Load reads all rows from src and builds the graph. Sources implementing
// ports.Beginner decide the begin state; ports.StateLister adds states without
// transitions.
func (e *Engine) Load(ctx context.Context, src ports.GraphSource) (*domain.Graph, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine: %w", err)
	}

	var begin string
	if b, ok := src.(ports.Beginner); ok {
		if begin, err = b.Begin(ctx); err != nil {
			return nil, fmt.Errorf("failed to read begin state: %w", err)
		}
	}

	g, err := domain.LoadGraphWithBegin(begin, rows)
	if err != nil {
		return nil, err
	}
	if l, ok := src.(ports.StateLister); ok {
		states, err := l.States(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list states: %w", err)
		}
		for _, id := range states {
			g.AddNode(id)
		}
	}

	logger := e.logger
	if n, ok := src.(ports.Named); ok && e.Name == "" {
		logger = logger.With("graph", n.Name())
	}
	logger.DebugContext(ctx, "graph_loaded",
		"begin", g.Begin(),
		"states", g.Len(),
		"transitions", g.Size(),
	)
	return g, nil
}

// Generate runs strategy s over g and returns the run.
// When a store is configured the run is saved before it is returned.
func (e *Engine) Generate(ctx context.Context, g *domain.Graph, s domain.Strategy, opts Options) (*domain.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run := &domain.Run{
		ID:        e.newID(),
		Graph:     e.Name,
		Strategy:  s,
		CreatedAt: e.now().UTC(),
	}
	base := domain.EventBase{RunID: run.ID}

	started := time.Now()
	if e.hooks.OnRunStart != nil {
		base.Timestamp, base.Type = e.now(), domain.EventRunStart
		e.hooks.OnRunStart(ctx, &domain.RunEvent{EventBase: base, Strategy: s})
	}

	res, err := strategy.Generate(g, s, opts)
	if err != nil {
		e.complete(ctx, base, &domain.RunEvent{Strategy: s, Duration: time.Since(started), Err: err})
		e.logger.ErrorContext(ctx, "generation failed", "run_id", run.ID, "strategy", s, "error", err)
		return nil, err
	}

	run.Cases = res.Cases
	run.Failures = res.Failures
	run.Redundant = res.Redundant

	for _, c := range res.Cases {
		if e.hooks.OnCase != nil {
			base.Timestamp, base.Type = e.now(), domain.EventCase
			e.hooks.OnCase(ctx, &domain.CaseEvent{EventBase: base, Strategy: s, Name: c.Name, Length: c.Len()})
		}
	}
	for _, f := range res.Failures {
		if e.hooks.OnCaseFailure != nil {
			base.Timestamp, base.Type = e.now(), domain.EventCaseFailure
			e.hooks.OnCaseFailure(ctx, &domain.CaseEvent{EventBase: base, Strategy: s, Name: f.Case, Message: f.Message})
		}
		e.logger.WarnContext(ctx, "case not generated", "run_id", run.ID, "case", f.Case, "reason", f.Message)
	}

	e.complete(ctx, base, &domain.RunEvent{
		Strategy:  s,
		Cases:     len(run.Cases),
		Failures:  len(run.Failures),
		Redundant: run.Redundant,
		Duration:  time.Since(started),
	})
	e.logger.InfoContext(ctx, "cases generated",
		"run_id", run.ID,
		"strategy", s,
		"cases", len(run.Cases),
		"failures", len(run.Failures),
	)

	if e.store != nil {
		if err := e.store.Save(ctx, run); err != nil {
			return run, fmt.Errorf("failed to save run %s: %w", run.ID, err)
		}
	}
	return run, nil
}

func (e *Engine) complete(ctx context.Context, base domain.EventBase, ev *domain.RunEvent) {
	if e.hooks.OnRunComplete == nil {
		return
	}
	base.Timestamp, base.Type = e.now(), domain.EventRunComplete
	ev.EventBase = base
	e.hooks.OnRunComplete(ctx, ev)
}

// Render returns the printable steps of c.
func (e *Engine) Render(c domain.TestCase) []domain.Step {
	return domain.Render(c)
}

// Mermaid renders g as a Mermaid flowchart, highlighting c when it is not nil.
func (e *Engine) Mermaid(g *domain.Graph, c *domain.TestCase) string {
	var overlay *graph.Overlay
	if c != nil {
		overlay = graph.OverlayFor(*c)
	}
	return graph.GenerateMermaid(g, overlay)
}

// Run loads a persisted run.
func (e *Engine) Run(ctx context.Context, id string) (*domain.Run, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	return e.store.Load(ctx, id)
}

// Runs lists the IDs of persisted runs.
func (e *Engine) Runs(ctx context.Context) ([]string, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	return e.store.List(ctx)
}

// Watch returns a channel that signals when the source's machine changes.
// Returns an error if the source does not support watching.
func (e *Engine) Watch(ctx context.Context, src ports.GraphSource) (<-chan string, error) {
	if w, ok := src.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("source does not support watching")
}
