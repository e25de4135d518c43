package strategy

import (
	"slices"

	"github.com/aretw0/casegen/pkg/domain"
)

// tree is a breadth-first search tree rooted at one state.
// pred holds the first transition that discovered each state.
type tree struct {
	root string
	pred map[string]domain.Transition
}

// search runs a BFS from root, expanding transitions in insertion order.
// It stops as soon as stop is discovered; an empty stop explores everything reachable.
// Predecessors are fixed at first discovery, so stopping early never changes a path.
func search(g *domain.Graph, root, stop string) *tree {
	t := &tree{
		root: root,
		pred: make(map[string]domain.Transition),
	}
	visited := map[string]bool{root: true}
	queue := []string{root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, tr := range g.Outgoing(current) {
			if visited[tr.To] {
				continue
			}
			visited[tr.To] = true
			t.pred[tr.To] = tr
			if tr.To == stop {
				return t
			}
			queue = append(queue, tr.To)
		}
	}
	return t
}

// path reconstructs the walk from the root to id.
func (t *tree) path(id string) ([]domain.Transition, bool) {
	if id == t.root {
		return []domain.Transition{}, true
	}
	if _, ok := t.pred[id]; !ok {
		return nil, false
	}

	var walk []domain.Transition
	for node := id; node != t.root; {
		tr := t.pred[node]
		walk = append(walk, tr)
		node = tr.From
	}
	slices.Reverse(walk)
	return walk, true
}

// distance returns the number of transitions from the root to id, or -1.
func (t *tree) distance(id string) int {
	if id == t.root {
		return 0
	}
	if _, ok := t.pred[id]; !ok {
		return -1
	}
	n := 0
	for node := id; node != t.root; node = t.pred[node].From {
		n++
	}
	return n
}

// ShortestPath returns the walk with the fewest transitions from begin to end.
// The walk never repeats a state. begin == end yields an empty walk.
func ShortestPath(g *domain.Graph, begin, end string) ([]domain.Transition, error) {
	if !g.HasNode(begin) {
		return nil, &domain.UnknownNodeError{Node: begin}
	}
	if !g.HasNode(end) {
		return nil, &domain.UnknownNodeError{Node: end}
	}
	if begin == end {
		return []domain.Transition{}, nil
	}

	walk, ok := search(g, begin, end).path(end)
	if !ok {
		return nil, &domain.UnreachableError{From: begin, To: end}
	}
	return walk, nil
}

// Distances returns the BFS distance from root to every state it can reach, root included.
func Distances(g *domain.Graph, root string) (map[string]int, error) {
	if !g.HasNode(root) {
		return nil, &domain.UnknownNodeError{Node: root}
	}
	t := search(g, root, "")
	res := make(map[string]int, len(t.pred)+1)
	res[root] = 0
	for id := range t.pred {
		res[id] = t.distance(id)
	}
	return res, nil
}
