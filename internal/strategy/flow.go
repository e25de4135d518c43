package strategy

import "math"

type flowEdge struct {
	to, cap, cost int
	rev           int
}

// network is a residual graph for min-cost flow.
type network struct {
	adj [][]flowEdge
}

func newNetwork(n int) *network {
	return &network{adj: make([][]flowEdge, n)}
}

// addEdge adds from->to with its zero-capacity reverse edge and returns the edge's
// position in adj[from].
func (n *network) addEdge(from, to, cap, cost int) int {
	n.adj[from] = append(n.adj[from], flowEdge{to: to, cap: cap, cost: cost, rev: len(n.adj[to])})
	n.adj[to] = append(n.adj[to], flowEdge{to: from, cap: 0, cost: -cost, rev: len(n.adj[from]) - 1})
	return len(n.adj[from]) - 1
}

// minCostFlow pushes at most limit units from s to t, always along the cheapest
// residual path (successive shortest paths with SPFA). Each intermediate flow value is
// reached at minimum cost, so stopping at limit is optimal for that limit.
func (n *network) minCostFlow(s, t, limit int) (flow, cost int) {
	size := len(n.adj)
	for flow < limit {
		dist := make([]int, size)
		for i := range dist {
			dist[i] = math.MaxInt
		}
		prevNode := make([]int, size)
		prevEdge := make([]int, size)
		queued := make([]bool, size)

		dist[s] = 0
		queue := []int{s}
		queued[s] = true
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			queued[v] = false
			for i, e := range n.adj[v] {
				if e.cap <= 0 || dist[v]+e.cost >= dist[e.to] {
					continue
				}
				dist[e.to] = dist[v] + e.cost
				prevNode[e.to], prevEdge[e.to] = v, i
				if !queued[e.to] {
					queued[e.to] = true
					queue = append(queue, e.to)
				}
			}
		}
		if dist[t] == math.MaxInt {
			break
		}

		push := limit - flow
		for v := t; v != s; v = prevNode[v] {
			if c := n.adj[prevNode[v]][prevEdge[v]].cap; c < push {
				push = c
			}
		}
		for v := t; v != s; v = prevNode[v] {
			e := &n.adj[prevNode[v]][prevEdge[v]]
			e.cap -= push
			n.adj[v][e.rev].cap += push
		}
		flow += push
		cost += push * dist[t]
	}
	return flow, cost
}
