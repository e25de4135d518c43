package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/casegen/internal/testutils"
	"github.com/aretw0/casegen/pkg/domain"
	"github.com/aretw0/casegen/pkg/ports/tests"
)

var turnstile = map[string]string{
	"locked.md": `---
begin: true
transitions:
  - to: unlocked
    label: coin
  - to: locked
    event: push
---
The turnstile waits for a coin.`,
	"unlocked.md": `---
transitions:
  - locked.md
---
Anyone can pass.`,
	"broken.json": `{
  "id": "broken",
  "transitions": []
}`,
}

func newSource(t *testing.T, files map[string]string) *Source {
	t.Helper()
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, files)
	return New(loam.NewTypedRepository[StateMetadata](repo), "turnstile")
}

func TestSource_Contract(t *testing.T) {
	src := newSource(t, turnstile)

	tests.GraphSourceContractTest(t, src, []domain.Row{
		{Source: "locked", Target: "unlocked", Label: "coin"},
		{Source: "locked", Target: "locked", Label: "push"},
		{Source: "unlocked", Target: "locked"},
	})
}

func TestSource_BeginAndStates(t *testing.T) {
	src := newSource(t, turnstile)
	ctx := context.Background()

	begin, err := src.Begin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "locked", begin)

	states, err := src.States(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"locked", "broken", "unlocked"}, states)
	assert.Equal(t, "turnstile", src.Name())
}

func TestSource_StatesMatchLastRows(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, map[string]string{
		"a.md": "---\nbegin: true\nto: b\n---\n",
		"b.md": "---\nto: a\n---\n",
	})
	src := New(loam.NewTypedRepository[StateMetadata](repo), "pair")
	ctx := context.Background()

	_, err := src.Rows(ctx)
	require.NoError(t, err)

	testutils.WriteFiles(t, dir, map[string]string{"c.md": "---\nto: a\n---\n"})

	states, err := src.States(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, states)

	begin, err := src.Begin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", begin)
}

func TestSource_ShorthandTo(t *testing.T) {
	src := newSource(t, map[string]string{
		"a.md": "---\nto: b\n---\n",
		"b.md": "---\ntransitions:\n  - a\n---\n",
	})

	rows, err := src.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Row{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "a"},
	}, rows)
}

func TestSource_Errors(t *testing.T) {
	t.Run("Missing Target", func(t *testing.T) {
		src := newSource(t, map[string]string{
			"a.md": "---\ntransitions:\n  - label: nowhere\n---\n",
		})

		_, err := src.Rows(context.Background())
		var malformed *domain.MalformedInputError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "to", malformed.Column)
	})

	t.Run("Two Begin States", func(t *testing.T) {
		src := newSource(t, map[string]string{
			"a.md": "---\nbegin: true\n---\n",
			"b.md": "---\nbegin: true\n---\n",
		})

		_, err := src.Rows(context.Background())
		assert.ErrorContains(t, err, "marked as begin")
	})

	t.Run("ID Collision", func(t *testing.T) {
		src := newSource(t, map[string]string{
			"a.md":   "---\nto: a\n---\n",
			"a.json": `{"to": "a"}`,
		})

		_, err := src.Rows(context.Background())
		assert.ErrorContains(t, err, "collision detected")
	})
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, turnstile)

	src, err := Open(dir)
	require.NoError(t, err)

	rows, err := src.Rows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
