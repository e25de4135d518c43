package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/casegen/pkg/adapters/sqlite"
	"github.com/aretw0/casegen/pkg/domain"
	"github.com/aretw0/casegen/pkg/ports"
)

func newStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	ports.RunCaseStoreContract(t, newStore(t, ":memory:"))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	first, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, &domain.Run{ID: "r1", Strategy: domain.StrategyNode, CreatedAt: time.Now()}))
	require.NoError(t, first.Close())

	second := newStore(t, path)
	run, err := second.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyNode, run.Strategy)
}

func TestSQLiteStore_ListByStrategy(t *testing.T) {
	store := newStore(t, ":memory:")
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, &domain.Run{ID: "b", Strategy: domain.StrategyEuler, CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, store.Save(ctx, &domain.Run{ID: "a", Strategy: domain.StrategyEuler, CreatedAt: base}))
	require.NoError(t, store.Save(ctx, &domain.Run{ID: "c", Strategy: domain.StrategyPath, CreatedAt: base}))

	ids, err := store.ListByStrategy(ctx, domain.StrategyEuler)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, all)
}
