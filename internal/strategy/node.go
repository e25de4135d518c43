package strategy

import (
	"errors"

	"github.com/aretw0/casegen/pkg/domain"
)

// ErrMissingEnd is returned by strategies that need an end state when none is given.
var ErrMissingEnd = errors.New("end state is required")

// ErrEmptyGraph is returned when a strategy needs at least one state.
var ErrEmptyGraph = errors.New("graph has no states")

// NodeCase returns the shortest case from begin to end, named "<begin>-><end>".
func NodeCase(g *domain.Graph, begin, end string) (domain.TestCase, error) {
	walk, err := ShortestPath(g, begin, end)
	if err != nil {
		return domain.TestCase{}, err
	}
	return domain.TestCase{
		Name:        begin + "->" + end,
		Start:       begin,
		Transitions: walk,
	}, nil
}

// nodeCases runs the node strategy. A wildcard on either side expands to every state;
// in that mode unreachable pairs become failures and pairs with begin == end are skipped.
func nodeCases(g *domain.Graph, opts Options) (*Result, error) {
	begin := opts.Begin
	if begin == "" {
		begin = g.Begin()
	}
	if begin == "" {
		return nil, ErrEmptyGraph
	}
	if opts.End == "" {
		return nil, ErrMissingEnd
	}

	res := &Result{Strategy: domain.StrategyNode}
	if begin != domain.AnyNode && opts.End != domain.AnyNode {
		c, err := NodeCase(g, begin, opts.End)
		if err != nil {
			return nil, err
		}
		res.Cases = append(res.Cases, c)
		return res, nil
	}

	begins, err := expand(g, begin)
	if err != nil {
		return nil, err
	}
	ends, err := expand(g, opts.End)
	if err != nil {
		return nil, err
	}

	for _, b := range begins {
		// One BFS per begin state serves every end state.
		t := search(g, b, "")
		for _, e := range ends {
			if b == e {
				continue
			}
			name := b + "->" + e
			walk, ok := t.path(e)
			if !ok {
				cause := &domain.UnreachableError{From: b, To: e}
				res.Failures = append(res.Failures, domain.Failure{
					Case:    name,
					Message: cause.Error(),
					Err:     cause,
				})
				continue
			}
			res.Cases = append(res.Cases, domain.TestCase{Name: name, Start: b, Transitions: walk})
		}
	}
	return res, nil
}

func expand(g *domain.Graph, id string) ([]string, error) {
	if id == domain.AnyNode {
		return g.Nodes(), nil
	}
	if !g.HasNode(id) {
		return nil, &domain.UnknownNodeError{Node: id}
	}
	return []string{id}, nil
}
