package domain

// AddNode registers a state. Adding an existing state is a no-op.
func (g *Graph) AddNode(id string) {
	if _, ok := g.index[id]; ok {
		return
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, id)
	g.out = append(g.out, nil)
	g.in = append(g.in, 0)
}

// HasNode reports whether id is a state of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Nodes returns a copy of the states in insertion order.
func (g *Graph) Nodes() []string {
	res := make([]string, len(g.nodes))
	copy(res, g.nodes)
	return res
}

// Len returns the number of states.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Begin returns the declared begin state: the first one inserted.
// It is empty for an empty graph.
func (g *Graph) Begin() string {
	if len(g.nodes) == 0 {
		return ""
	}
	return g.nodes[0]
}

// IndexOf returns the insertion position of a state, or -1.
func (g *Graph) IndexOf(id string) int {
	i, ok := g.index[id]
	if !ok {
		return -1
	}
	return i
}

// OutDegree returns the number of transitions leaving id.
func (g *Graph) OutDegree(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.out[i])
}

// InDegree returns the number of transitions entering id.
func (g *Graph) InDegree(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return g.in[i]
}

// Balance returns out-degree minus in-degree.
// Positive values mark states where a covering walk must start more often than it ends.
func (g *Graph) Balance(id string) int {
	return g.OutDegree(id) - g.InDegree(id)
}
