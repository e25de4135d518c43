package strategy

import (
	"slices"

	"github.com/aretw0/casegen/pkg/domain"
)

// arc is one traversable copy of a transition. Augmented arcs are duplicates added
// while balancing degrees.
type arc struct {
	t         domain.Transition
	from, to  int
	augmented bool
}

// arena is a private adjacency structure over the graph's transitions.
// The graph itself is never modified.
type arena struct {
	g       *domain.Graph
	nodes   []string
	arcs    []arc
	out     [][]int
	surplus []int
}

func newArena(g *domain.Graph) *arena {
	nodes := g.Nodes()
	a := &arena{
		g:       g,
		nodes:   nodes,
		out:     make([][]int, len(nodes)),
		surplus: make([]int, len(nodes)),
	}
	for _, t := range g.Transitions() {
		a.add(t, false)
	}
	// Arc IDs equal transition IDs; each state's arcs follow the graph's outgoing order.
	for i, n := range nodes {
		for k, t := range g.Outgoing(n) {
			a.out[i][k] = t.ID
		}
	}
	return a
}

func (a *arena) add(t domain.Transition, augmented bool) {
	from, to := a.g.IndexOf(t.From), a.g.IndexOf(t.To)
	a.out[from] = append(a.out[from], len(a.arcs))
	a.arcs = append(a.arcs, arc{t: t, from: from, to: to, augmented: augmented})
	a.surplus[from]++
	a.surplus[to]--
}

// components returns the weakly connected components of nodes with at least one
// incident arc. Nodes and components are listed in insertion order.
func (a *arena) components() [][]string {
	adj := make([][]int, len(a.nodes))
	for _, arc := range a.arcs {
		adj[arc.from] = append(adj[arc.from], arc.to)
		adj[arc.to] = append(adj[arc.to], arc.from)
	}

	comp := make([]int, len(a.nodes))
	for i := range comp {
		comp[i] = -1
	}

	var groups [][]int
	for i := range a.nodes {
		if comp[i] >= 0 || len(adj[i]) == 0 {
			continue
		}
		id := len(groups)
		comp[i] = id
		members := []int{i}
		for queue := []int{i}; len(queue) > 0; {
			v := queue[0]
			queue = queue[1:]
			for _, w := range adj[v] {
				if comp[w] < 0 {
					comp[w] = id
					members = append(members, w)
					queue = append(queue, w)
				}
			}
		}
		groups = append(groups, members)
	}

	res := make([][]string, len(groups))
	for i, members := range groups {
		slices.Sort(members)
		for _, m := range members {
			res[i] = append(res[i], a.nodes[m])
		}
	}
	return res
}

// balance duplicates shortest paths from deficit nodes (in > out) to surplus nodes
// (out > in) until every node is balanced, or, when open is set, until one unit of
// surplus remains. In open mode a unit of surplus on reserve is the one left over.
//
// Deficits are paired with surpluses by a min-cost flow over BFS distances, so a
// pairing is found whenever one exists and the number of duplicated transitions is
// minimal.
func (a *arena) balance(open bool, reserve int) error {
	var deficits, surpluses []int
	total := 0
	for i, s := range a.surplus {
		switch {
		case s < 0:
			deficits = append(deficits, i)
		case s > 0:
			surpluses = append(surpluses, i)
			total += s
		}
	}
	need := total
	if open && need > 0 {
		need--
	}
	if need == 0 {
		return nil
	}

	// Node layout: source, deficits, surpluses, sink.
	source, sink := 0, 1+len(deficits)+len(surpluses)
	net := newNetwork(sink + 1)

	trees := make([]*tree, len(deficits))
	supply := make([]int, len(deficits))
	demand := make([]int, len(surpluses))
	pairs := make([][]int, len(deficits))
	for j, s := range surpluses {
		units := a.surplus[s]
		if open && s == reserve {
			units--
		}
		demand[j] = net.addEdge(1+len(deficits)+j, sink, units, 0)
	}
	for i, d := range deficits {
		supply[i] = net.addEdge(source, 1+i, -a.surplus[d], 0)
		trees[i] = search(a.g, a.nodes[d], "")
		pairs[i] = make([]int, len(surpluses))
		for j, s := range surpluses {
			pairs[i][j] = -1
			if dist := trees[i].distance(a.nodes[s]); dist > 0 {
				pairs[i][j] = net.addEdge(1+i, 1+len(deficits)+j, -a.surplus[d], dist)
			}
		}
	}

	if flow, _ := net.minCostFlow(source, sink, need); flow < need {
		return &domain.DisconnectedGraphError{Cause: a.stuck(net, deficits, surpluses, supply, demand)}
	}

	for i := range deficits {
		for j, s := range surpluses {
			if pairs[i][j] < 0 {
				continue
			}
			e := net.adj[1+i][pairs[i][j]]
			units := net.adj[e.to][e.rev].cap
			walk, _ := trees[i].path(a.nodes[s])
			for ; units > 0; units-- {
				for _, t := range walk {
					a.add(t, true)
				}
			}
		}
	}
	return nil
}

// stuck names a deficit and a surplus left unpaired by a maximum flow. No path joins
// them, otherwise the flow could have been augmented.
func (a *arena) stuck(net *network, deficits, surpluses, supply, demand []int) error {
	from, to := "", ""
	for i, d := range deficits {
		if net.adj[0][supply[i]].cap > 0 {
			from = a.nodes[d]
			break
		}
	}
	base := 1 + len(deficits)
	for j, s := range surpluses {
		if net.adj[base+j][demand[j]].cap > 0 {
			to = a.nodes[s]
			break
		}
	}
	return &domain.UnreachableError{From: from, To: to}
}

// trail extracts an Eulerian trail from start with Hierholzer's algorithm, using explicit
// node and arc stacks. Each node's arcs are consumed in the graph's outgoing order.
func (a *arena) trail(start int) []int {
	next := make([]int, len(a.nodes))
	nodes := []int{start}
	arcs := []int{-1}
	res := make([]int, 0, len(a.arcs))

	for len(nodes) > 0 {
		v := nodes[len(nodes)-1]
		if next[v] < len(a.out[v]) {
			id := a.out[v][next[v]]
			next[v]++
			nodes = append(nodes, a.arcs[id].to)
			arcs = append(arcs, id)
			continue
		}
		nodes = nodes[:len(nodes)-1]
		if id := arcs[len(arcs)-1]; id >= 0 {
			res = append(res, id)
		}
		arcs = arcs[:len(arcs)-1]
	}

	slices.Reverse(res)
	return res
}

// defaultStart is the graph's begin node when it has outgoing arcs, otherwise the source
// of the first transition.
func (a *arena) defaultStart() int {
	if len(a.out[0]) > 0 {
		return 0
	}
	return a.arcs[0].from
}

// EulerOptions tunes BuildEulerTrail.
type EulerOptions struct {
	// Start is the preferred first state of the trail. Empty picks one automatically.
	Start string
	// Open allows the trail to end away from its start when that saves repetitions.
	Open bool
}

// BuildEulerTrail returns one case whose walk covers every transition at least once.
//
// Degrees are balanced by re-traversing existing transitions along shortest paths, with
// deficits and surpluses paired to minimize the repeats. The case's Redundant field counts
// the repeated transitions. A closed circuit is preferred; when none can be built (or opts.Open
// is set) the trail may end away from its start. Transitions spread over more than one
// weakly connected component fail with a DisconnectedGraphError.
func BuildEulerTrail(g *domain.Graph, opts EulerOptions) (domain.TestCase, error) {
	if opts.Start != "" && !g.HasNode(opts.Start) {
		return domain.TestCase{}, &domain.UnknownNodeError{Node: opts.Start}
	}
	if g.Len() == 0 {
		return domain.TestCase{}, ErrEmptyGraph
	}

	a := newArena(g)
	if len(a.arcs) == 0 {
		start := opts.Start
		if start == "" {
			start = g.Begin()
		}
		return domain.TestCase{Name: "euler " + start, Start: start}, nil
	}

	if comps := a.components(); len(comps) > 1 {
		return domain.TestCase{}, &domain.DisconnectedGraphError{Components: comps}
	}

	preferred := -1
	if opts.Start != "" {
		preferred = g.IndexOf(opts.Start)
		if len(a.out[preferred]) == 0 {
			return domain.TestCase{}, &domain.DeadEndError{Node: opts.Start}
		}
	}

	open := opts.Open
	if open && preferred >= 0 && a.surplus[preferred] <= 0 {
		// The trail has to leave from the preferred state, so close it there.
		open = false
	}
	if err := a.balance(open, preferred); err != nil {
		if open {
			return domain.TestCase{}, err
		}
		// No closed circuit exists; settle for an open trail.
		a = newArena(g)
		if err := a.balance(true, preferred); err != nil {
			return domain.TestCase{}, err
		}
	}

	start := preferred
	for i, s := range a.surplus {
		if s > 0 {
			start = i
			break
		}
	}
	if start < 0 {
		start = a.defaultStart()
	}

	order := a.trail(start)
	if len(order) != len(a.arcs) {
		return domain.TestCase{}, &domain.DisconnectedGraphError{Components: a.components()}
	}

	c := domain.TestCase{
		Name:        "euler " + a.nodes[start],
		Start:       a.nodes[start],
		Transitions: make([]domain.Transition, 0, len(order)),
	}
	for _, id := range order {
		c.Transitions = append(c.Transitions, a.arcs[id].t)
		if a.arcs[id].augmented {
			c.Redundant++
		}
	}
	return c, nil
}
