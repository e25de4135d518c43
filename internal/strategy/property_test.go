package strategy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/casegen/pkg/domain"
)

const propertyNodes = 5

// randomGraph decodes each value into one transition between propertyNodes states.
func randomGraph(edges []int) *domain.Graph {
	g := domain.NewGraph()
	for i := 0; i < propertyNodes; i++ {
		g.AddNode(fmt.Sprintf("S%d", i))
	}
	for _, e := range edges {
		from, to := e/propertyNodes, e%propertyNodes
		_, _ = g.AddTransition(fmt.Sprintf("S%d", from), fmt.Sprintf("S%d", to), "")
	}
	return g
}

// floyd computes all-pairs transition distances; -1 means unreachable.
func floyd(g *domain.Graph) [][]int {
	n := g.Len()
	const inf = 1 << 20
	d := make([][]int, n)
	for i := range d {
		d[i] = make([]int, n)
		for j := range d[i] {
			d[i][j] = inf
		}
		d[i][i] = 0
	}
	for _, t := range g.Transitions() {
		from, to := g.IndexOf(t.From), g.IndexOf(t.To)
		if from != to {
			d[from][to] = 1
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if d[i][k]+d[k][j] < d[i][j] {
					d[i][j] = d[i][k] + d[k][j]
				}
			}
		}
	}
	for i := range d {
		for j := range d[i] {
			if d[i][j] == inf {
				d[i][j] = -1
			}
		}
	}
	return d
}

func isWalk(start string, ts []domain.Transition) bool {
	current := start
	for _, t := range ts {
		if t.From != current {
			return false
		}
		current = t.To
	}
	return true
}

// coverable reports whether one walk can cover every transition: the transitions form a
// single weakly connected part, and every unit of surplus but one can be paired with a
// unit of deficit that reaches it.
func coverable(g *domain.Graph, d [][]int) bool {
	if len(Components(g)) > 1 {
		return false
	}

	var deficits, surpluses []int
	for i, n := range g.Nodes() {
		for b := g.Balance(n); b != 0; {
			if b < 0 {
				deficits = append(deficits, i)
				b++
			} else {
				surpluses = append(surpluses, i)
				b--
			}
		}
	}

	owner := make([]int, len(surpluses))
	for j := range owner {
		owner[j] = -1
	}
	var augment func(u int, seen []bool) bool
	augment = func(u int, seen []bool) bool {
		for j, s := range surpluses {
			if seen[j] || d[deficits[u]][s] < 0 {
				continue
			}
			seen[j] = true
			if owner[j] < 0 || augment(owner[j], seen) {
				owner[j] = u
				return true
			}
		}
		return false
	}

	matched := 0
	for u := range deficits {
		if augment(u, make([]bool, len(surpluses))) {
			matched++
		}
	}
	return matched >= len(surpluses)-1
}

// baselineRedundant is the repetition count of the naive covering walk from start: take
// every transition in insertion order, reaching its source by a shortest path each time,
// and return to start when closed is set. It reports false when that walk gets stuck.
func baselineRedundant(g *domain.Graph, start string, closed bool) (int, bool) {
	extra, current := 0, start
	for _, t := range g.Transitions() {
		walk, err := ShortestPath(g, current, t.From)
		if err != nil {
			return 0, false
		}
		extra += len(walk)
		current = t.To
	}
	if closed {
		walk, err := ShortestPath(g, current, start)
		if err != nil {
			return 0, false
		}
		extra += len(walk)
	}
	return extra, true
}

// bestBaseline is the smallest baseline over every start state.
func bestBaseline(g *domain.Graph, closed bool) (int, bool) {
	best, found := 0, false
	for _, n := range g.Nodes() {
		if extra, ok := baselineRedundant(g, n, closed); ok && (!found || extra < best) {
			best, found = extra, true
		}
	}
	return best, found
}

func edgeList() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, propertyNodes*propertyNodes-1))
}

func TestBuildEulerTrail_NoWorseThanNaiveWalk(t *testing.T) {
	tests := []struct {
		name string
		rows []domain.Row
		open bool
	}{
		{
			name: "Unbalanced Pair",
			rows: []domain.Row{
				{Source: "A", Target: "B", Label: "x"},
				{Source: "B", Target: "A", Label: "y"},
				{Source: "A", Target: "B", Label: "z"},
			},
		},
		{
			name: "Hub And Spokes",
			rows: []domain.Row{
				{Source: "hub", Target: "a"},
				{Source: "hub", Target: "b"},
				{Source: "hub", Target: "c"},
				{Source: "a", Target: "hub"},
				{Source: "b", Target: "a"},
				{Source: "c", Target: "b"},
			},
		},
		{
			name: "Chain With Shortcut Open",
			rows: []domain.Row{
				{Source: "A", Target: "B"},
				{Source: "B", Target: "C"},
				{Source: "C", Target: "D"},
				{Source: "A", Target: "D"},
				{Source: "D", Target: "A"},
			},
			open: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := domain.LoadGraph(tt.rows)
			require.NoError(t, err)

			c, err := BuildEulerTrail(g, EulerOptions{Open: tt.open})
			require.NoError(t, err)

			baseline, ok := bestBaseline(g, !tt.open)
			require.True(t, ok)
			assert.LessOrEqual(t, c.Redundant, baseline)
		})
	}
}

func TestStrategyProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("shortest path has minimum length", prop.ForAll(
		func(edges []int) bool {
			g := randomGraph(edges)
			d := floyd(g)
			nodes := g.Nodes()
			for i, begin := range nodes {
				for j, end := range nodes {
					walk, err := ShortestPath(g, begin, end)
					if d[i][j] < 0 {
						var unreachable *domain.UnreachableError
						if !errors.As(err, &unreachable) {
							return false
						}
						continue
					}
					if err != nil || len(walk) != d[i][j] || !isWalk(begin, walk) {
						return false
					}
					if len(walk) > 0 && walk[len(walk)-1].To != end {
						return false
					}
				}
			}
			return true
		},
		edgeList(),
	))

	properties.Property("coverage ends every case with its transition", prop.ForAll(
		func(edges []int) bool {
			g := randomGraph(edges)
			cases, failures, err := CoverTransitions(g, "S0", "")
			if err != nil || len(cases)+len(failures) != g.Size() {
				return false
			}
			for _, c := range cases {
				if !isWalk("S0", c.Transitions) || c.Transitions[len(c.Transitions)-1] != *c.Target {
					return false
				}
			}
			return true
		},
		edgeList(),
	))

	properties.Property("euler trail covers every coverable machine", prop.ForAll(
		func(edges []int, open bool) bool {
			g := randomGraph(edges)
			d := floyd(g)

			c, err := BuildEulerTrail(g, EulerOptions{Open: open})
			if !coverable(g, d) {
				var disconnected *domain.DisconnectedGraphError
				return errors.As(err, &disconnected)
			}
			if err != nil {
				return false
			}

			if !isWalk(c.Start, c.Transitions) || len(c.Transitions) != g.Size()+c.Redundant {
				return false
			}
			seen := make(map[int]bool)
			for _, t := range c.Transitions {
				seen[t.ID] = true
			}
			return len(seen) == g.Size()
		},
		edgeList(),
		gen.Bool(),
	))

	properties.Property("euler repeats no more than the naive covering walk", prop.ForAll(
		func(edges []int, open bool) bool {
			g := randomGraph(edges)
			c, err := BuildEulerTrail(g, EulerOptions{Open: open})
			if err != nil {
				return true
			}
			closed := !open && len(c.Transitions) > 0 && c.Transitions[len(c.Transitions)-1].To == c.Start
			baseline, ok := bestBaseline(g, closed)
			return !ok || c.Redundant <= baseline
		},
		edgeList(),
		gen.Bool(),
	))

	properties.Property("balanced connected graphs need no repetition", prop.ForAll(
		func(edges []int) bool {
			// Closing every transition with its reverse keeps all degrees balanced.
			var doubled []int
			for _, e := range edges {
				from, to := e/propertyNodes, e%propertyNodes
				doubled = append(doubled, e, to*propertyNodes+from)
			}
			g := randomGraph(doubled)
			c, err := BuildEulerTrail(g, EulerOptions{})
			if err != nil {
				var disconnected *domain.DisconnectedGraphError
				return errors.As(err, &disconnected)
			}
			return c.Redundant == 0 && len(c.Transitions) == g.Size()
		},
		edgeList(),
	))

	properties.TestingRun(t)
}
