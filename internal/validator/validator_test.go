package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/casegen/pkg/domain"
)

func load(t *testing.T, rows ...domain.Row) *domain.Graph {
	t.Helper()
	g, err := domain.LoadGraph(rows)
	require.NoError(t, err)
	return g
}

func TestValidateGraph_Valid(t *testing.T) {
	g := load(t,
		domain.Row{Source: "start", Target: "a"},
		domain.Row{Source: "a", Target: "b"},
	)

	r := ValidateGraph(g)
	assert.NoError(t, r.Err())
	assert.Equal(t, "start", r.Begin)
	assert.Equal(t, []string{"b"}, r.DeadEnds)
	assert.Equal(t, []string{"state 'b' has no outgoing transitions"}, r.Warnings())
	assert.Equal(t, []Imbalance{{State: "start", Balance: 1}, {State: "b", Balance: -1}}, r.Imbalanced)
}

func TestValidateGraph_Unreachable(t *testing.T) {
	g := load(t,
		domain.Row{Source: "start", Target: "a"},
		domain.Row{Source: "ghost", Target: "a"},
	)

	r := ValidateGraph(g)
	assert.Equal(t, []string{"ghost"}, r.Unreachable)
	assert.Len(t, r.Components, 1)

	err := r.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 1 errors")
	assert.Contains(t, err.Error(), "state 'ghost' is unreachable from 'start'")
}

func TestValidateGraph_Components(t *testing.T) {
	g := load(t,
		domain.Row{Source: "A", Target: "B"},
		domain.Row{Source: "B", Target: "A"},
		domain.Row{Source: "C", Target: "D"},
	)
	g.AddNode("E")

	r := ValidateGraph(g)
	assert.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, r.Components)
	assert.Equal(t, []string{"E"}, r.Isolated)
	assert.Equal(t, []string{"C", "D", "E"}, r.Unreachable)
	assert.Contains(t, r.Errors(), "machine splits into 2 components: {A, B} {C, D}")
	assert.Equal(t, []string{
		"state 'D' has no outgoing transitions",
		"state 'E' has no transitions",
	}, r.Warnings())
}

func TestValidateGraph_Empty(t *testing.T) {
	r := ValidateGraph(domain.NewGraph())
	assert.EqualError(t, r.Err(), "found 1 errors:\n- machine has no states")
}
