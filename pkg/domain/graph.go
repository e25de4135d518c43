package domain

import (
	"maps"
	"math/rand/v2"
	"slices"
)

// Graph is a directed multigraph of states and transitions.
// It is built once per run and treated as read-only afterwards, so it can be
// shared by concurrent strategy runs.
type Graph struct {
	nodes       []string
	index       map[string]int
	transitions []Transition
	out         [][]int // transition IDs per node index, insertion order
	in          []int   // in-degree per node index
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]int),
	}
}

// AddTransition appends a transition between two existing states.
func (g *Graph) AddTransition(from, to, label string) (Transition, error) {
	src, ok := g.index[from]
	if !ok {
		return Transition{}, &UnknownNodeError{Node: from}
	}
	dst, ok := g.index[to]
	if !ok {
		return Transition{}, &UnknownNodeError{Node: to}
	}

	t := Transition{
		ID:    len(g.transitions),
		From:  from,
		To:    to,
		Label: label,
	}
	g.transitions = append(g.transitions, t)
	g.out[src] = append(g.out[src], t.ID)
	g.in[dst]++
	return t, nil
}

// Outgoing returns the transitions leaving id in insertion order.
// Unknown states have no outgoing transitions.
func (g *Graph) Outgoing(id string) []Transition {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	res := make([]Transition, 0, len(g.out[i]))
	for _, tid := range g.out[i] {
		res = append(res, g.transitions[tid])
	}
	return res
}

// Transitions returns a copy of all transitions in insertion order.
func (g *Graph) Transitions() []Transition {
	res := make([]Transition, len(g.transitions))
	copy(res, g.transitions)
	return res
}

// Transition returns the transition with the given ID.
func (g *Graph) Transition(id int) (Transition, bool) {
	if id < 0 || id >= len(g.transitions) {
		return Transition{}, false
	}
	return g.transitions[id], true
}

// Shuffled returns a copy of g with each state's outgoing transitions permuted by rng.
// States, transition IDs and Transitions() order are unchanged.
func (g *Graph) Shuffled(rng *rand.Rand) *Graph {
	c := &Graph{
		nodes:       slices.Clone(g.nodes),
		index:       maps.Clone(g.index),
		transitions: slices.Clone(g.transitions),
		out:         make([][]int, len(g.out)),
		in:          slices.Clone(g.in),
	}
	for i, ids := range g.out {
		perm := slices.Clone(ids)
		rng.Shuffle(len(perm), func(a, b int) {
			perm[a], perm[b] = perm[b], perm[a]
		})
		c.out[i] = perm
	}
	return c
}

// Size returns the number of transitions.
func (g *Graph) Size() int {
	return len(g.transitions)
}

// Row is one loaded edge record: (source, target[, label]).
type Row struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

// LoadGraph builds a graph from rows. States are added in order of first
// appearance (source before target), transitions in row order.
// Row numbers in errors are 1-based positions in rows.
func LoadGraph(rows []Row) (*Graph, error) {
	return LoadGraphWithBegin("", rows)
}

// LoadGraphWithBegin is LoadGraph with begin inserted as the first state, so it becomes
// the graph's begin state whatever the row order. An empty begin changes nothing.
func LoadGraphWithBegin(begin string, rows []Row) (*Graph, error) {
	g := NewGraph()
	if begin != "" {
		g.AddNode(begin)
	}
	for i, r := range rows {
		if r.Source == "" {
			return nil, &MalformedInputError{Row: i + 1, Column: "source", Reason: "empty source"}
		}
		if r.Target == "" {
			return nil, &MalformedInputError{Row: i + 1, Column: "target", Reason: "empty target"}
		}
		g.AddNode(r.Source)
		g.AddNode(r.Target)
		if _, err := g.AddTransition(r.Source, r.Target, r.Label); err != nil {
			return nil, err
		}
	}
	return g, nil
}
