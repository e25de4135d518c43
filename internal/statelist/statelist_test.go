package statelist_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/casegen/internal/statelist"
	"github.com/aretw0/casegen/pkg/domain"
)

func TestParse(t *testing.T) {
	m, err := statelist.Parse(strings.NewReader("# power wifi\n0 0\n\n1 0\n1 1\n"))
	require.NoError(t, err)
	assert.Equal(t, statelist.Matrix{{false, false}, {true, false}, {true, true}}, m)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		row    int
		column string
	}{
		{name: "Ragged Row", input: "0 1\n1\n", row: 2},
		{name: "Not A Bit", input: "0 1\n1 2\n", row: 2, column: "2"},
		{name: "Counts Skipped Lines", input: "# power wifi\n0 1\n\n1 1 0\n", row: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := statelist.Parse(strings.NewReader(tt.input))
			var malformed *domain.MalformedInputError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.row, malformed.Row)
			assert.Equal(t, tt.column, malformed.Column)
		})
	}
}

func TestRows(t *testing.T) {
	m := statelist.Matrix{{false, false}, {true, false}, {true, true}, {false, true}}

	rows := statelist.Rows(m, nil)
	assert.Equal(t, []domain.Row{
		{Source: "S0", Target: "S1", Label: "set0"},
		{Source: "S0", Target: "S3", Label: "set1"},
		{Source: "S1", Target: "S0", Label: "clear0"},
		{Source: "S1", Target: "S2", Label: "set1"},
		{Source: "S2", Target: "S1", Label: "clear1"},
		{Source: "S2", Target: "S3", Label: "clear0"},
		{Source: "S3", Target: "S0", Label: "clear1"},
		{Source: "S3", Target: "S2", Label: "set0"},
	}, rows)

	named := statelist.Rows(m[:2], []string{"power"})
	assert.Equal(t, "set_power", named[0].Label)
	assert.Equal(t, "clear_power", named[1].Label)
}

func TestBuild_KeepsIsolatedStates(t *testing.T) {
	m := statelist.Matrix{{false, false}, {true, true}}

	g, err := statelist.Build(m, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"S0", "S1"}, g.Nodes())
	assert.Equal(t, 0, g.Size())
}
