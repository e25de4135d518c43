package strategy

import (
	"strconv"

	"github.com/aretw0/casegen/pkg/domain"
)

// frame is one level of the depth-first enumeration.
type frame struct {
	edges []domain.Transition
	next  int
}

// AllPaths enumerates the simple paths from begin to end, depth first, in insertion order.
// A path never revisits a state, except that it may close back on begin when begin == end.
// maxDepth bounds the transitions per path and maxCases the number of paths; zero means
// no bound.
func AllPaths(g *domain.Graph, begin, end string, maxDepth, maxCases int) ([]domain.TestCase, error) {
	if !g.HasNode(begin) {
		return nil, &domain.UnknownNodeError{Node: begin}
	}
	if !g.HasNode(end) {
		return nil, &domain.UnknownNodeError{Node: end}
	}

	var cases []domain.TestCase
	onPath := map[string]bool{begin: true}
	var path []domain.Transition
	stack := []frame{{edges: g.Outgoing(begin)}}

	for len(stack) > 0 {
		if maxCases > 0 && len(cases) >= maxCases {
			break
		}

		top := &stack[len(stack)-1]
		if top.next >= len(top.edges) || (maxDepth > 0 && len(path) >= maxDepth) {
			stack = stack[:len(stack)-1]
			if len(path) > 0 {
				delete(onPath, path[len(path)-1].To)
				path = path[:len(path)-1]
			}
			continue
		}

		tr := top.edges[top.next]
		top.next++

		if tr.To == end {
			walk := make([]domain.Transition, 0, len(path)+1)
			walk = append(walk, path...)
			walk = append(walk, tr)
			cases = append(cases, domain.TestCase{
				Name:        begin + "->" + end + " #" + strconv.Itoa(len(cases)+1),
				Start:       begin,
				Transitions: walk,
			})
			continue
		}
		if onPath[tr.To] {
			continue
		}

		onPath[tr.To] = true
		path = append(path, tr)
		stack = append(stack, frame{edges: g.Outgoing(tr.To)})
	}

	if len(cases) == 0 {
		return nil, &domain.UnreachableError{From: begin, To: end}
	}
	return cases, nil
}
