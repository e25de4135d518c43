package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/casegen/pkg/domain"
)

func contractRun(id string) *domain.Run {
	target := domain.Transition{ID: 1, From: "B", To: "C", Label: "ok"}
	return &domain.Run{
		ID:        id,
		Graph:     "contract",
		Strategy:  domain.StrategyPath,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Cases: []domain.TestCase{
			{
				Name:  "cover B--ok-->C",
				Start: "A",
				Transitions: []domain.Transition{
					{ID: 0, From: "A", To: "B", Label: "go"},
					target,
				},
				Target: &target,
			},
		},
		Failures: []domain.Failure{
			{Case: "cover D--E2-->A", Message: `node "D" is unreachable from "A"`},
		},
	}
}

// RunCaseStoreContract runs a suite of tests to verify that a CaseStore implementation
// adheres to the defined interface contract.
func RunCaseStoreContract(t *testing.T, store CaseStore) {
	ctx := context.Background()
	runID := "contract-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		run := contractRun(runID)

		err := store.Save(ctx, run)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, run.ID, loaded.ID)
		assert.Equal(t, run.Graph, loaded.Graph)
		assert.Equal(t, run.Strategy, loaded.Strategy)
		assert.True(t, run.CreatedAt.Equal(loaded.CreatedAt))
		assert.Equal(t, run.Cases, loaded.Cases)
		require.Len(t, loaded.Failures, 1)
		assert.Equal(t, run.Failures[0].Message, loaded.Failures[0].Message)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		run := contractRun(runID)
		run.Strategy = domain.StrategyEuler
		run.Redundant = 2
		require.NoError(t, store.Save(ctx, run))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, domain.StrategyEuler, loaded.Strategy)
		assert.Equal(t, 2, loaded.Redundant)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractRun(runID)))

		err := store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.Save(ctx, contractRun(id1)))
		require.NoError(t, store.Save(ctx, contractRun(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
