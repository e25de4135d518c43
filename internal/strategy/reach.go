package strategy

import (
	"github.com/aretw0/casegen/pkg/domain"
)

// ReachTable records, for every state, the states reachable through at least one
// transition. A state reaches itself only when it lies on a cycle.
type ReachTable struct {
	nodes []string
	reach map[string]map[string]bool
}

// Reachability scans the graph from every state.
func Reachability(g *domain.Graph) *ReachTable {
	rt := &ReachTable{
		nodes: g.Nodes(),
		reach: make(map[string]map[string]bool, g.Len()),
	}
	for _, from := range rt.nodes {
		set := make(map[string]bool)
		queue := []string{from}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, tr := range g.Outgoing(current) {
				if set[tr.To] {
					continue
				}
				set[tr.To] = true
				queue = append(queue, tr.To)
			}
		}
		rt.reach[from] = set
	}
	return rt
}

// Reachable reports whether to can be reached from from with one or more transitions.
func (rt *ReachTable) Reachable(from, to string) bool {
	return rt.reach[from][to]
}

// Unreachable lists, in insertion order, the states other than from that cannot be
// reached from it.
func (rt *ReachTable) Unreachable(from string) []string {
	var res []string
	for _, n := range rt.nodes {
		if n != from && !rt.reach[from][n] {
			res = append(res, n)
		}
	}
	return res
}

// DeadEnds lists the states without outgoing transitions.
func DeadEnds(g *domain.Graph) []string {
	var res []string
	for _, n := range g.Nodes() {
		if g.OutDegree(n) == 0 {
			res = append(res, n)
		}
	}
	return res
}

// Components lists the weakly connected components of the states that have at least one
// transition. A single euler trail exists only when there is at most one.
func Components(g *domain.Graph) [][]string {
	return newArena(g).components()
}
