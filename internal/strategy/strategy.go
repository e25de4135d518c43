package strategy

import (
	"fmt"
	"math/rand/v2"

	"github.com/aretw0/casegen/pkg/domain"
)

// Options carries the per-strategy parameters. Fields a strategy does not use are ignored.
type Options struct {
	// Begin is the first state for node and all. Defaults to the graph's begin state.
	// May be domain.AnyNode for node.
	Begin string
	// End is the last state for node and all, and the optional exit for path.
	// May be domain.AnyNode for node.
	End string
	// Entry is the state every path case starts from. Defaults to the graph's begin state.
	Entry string
	// Start is the preferred first state of the euler trail.
	Start string
	// Open lets the euler trail end away from its start.
	Open bool
	// MaxDepth bounds transitions per case for all. Zero means unbounded.
	MaxDepth int
	// MaxCases bounds the number of cases for all. Zero means unbounded.
	MaxCases int
	// Shuffle seeds a permutation of every state's outgoing transitions before the run,
	// changing which of several equally short walks are picked. The same seed always
	// gives the same cases. Zero keeps insertion order.
	Shuffle int64
}

// Result is the outcome of one strategy run.
type Result struct {
	Strategy domain.Strategy
	Cases    []domain.TestCase
	// Failures lists cases that could not be built. Only path and wildcard node runs
	// report failures; other strategies abort instead.
	Failures []domain.Failure
	// Redundant counts repeated transitions across all cases (euler only).
	Redundant int
}

// Generate runs the named strategy over g.
func Generate(g *domain.Graph, s domain.Strategy, opts Options) (*Result, error) {
	if opts.Shuffle != 0 {
		seed := uint64(opts.Shuffle)
		g = g.Shuffled(rand.New(rand.NewPCG(seed, seed)))
	}

	switch s {
	case domain.StrategyNode:
		return nodeCases(g, opts)

	case domain.StrategyPath:
		entry := opts.Entry
		if entry == "" {
			entry = g.Begin()
		}
		if entry == "" {
			return nil, ErrEmptyGraph
		}
		cases, failures, err := CoverTransitions(g, entry, opts.End)
		if err != nil {
			return nil, err
		}
		return &Result{Strategy: s, Cases: cases, Failures: failures}, nil

	case domain.StrategyEuler:
		c, err := BuildEulerTrail(g, EulerOptions{Start: opts.Start, Open: opts.Open})
		if err != nil {
			return nil, err
		}
		return &Result{Strategy: s, Cases: []domain.TestCase{c}, Redundant: c.Redundant}, nil

	case domain.StrategyAll:
		begin := opts.Begin
		if begin == "" {
			begin = g.Begin()
		}
		if begin == "" {
			return nil, ErrEmptyGraph
		}
		end := opts.End
		if end == "" {
			return nil, ErrMissingEnd
		}
		cases, err := AllPaths(g, begin, end, opts.MaxDepth, opts.MaxCases)
		if err != nil {
			return nil, err
		}
		return &Result{Strategy: s, Cases: cases}, nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, s)
	}
}
