package tests

import (
	"context"
	"testing"

	"github.com/aretw0/casegen/pkg/domain"
	"github.com/aretw0/casegen/pkg/ports"
)

// GraphSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphSource.
// want lists the rows the source is expected to produce, in order.
func GraphSourceContractTest(t *testing.T, src ports.GraphSource, want []domain.Row) {
	t.Helper()

	t.Run("Rows_Order", func(t *testing.T) {
		rows, err := src.Rows(context.Background())
		if err != nil {
			t.Fatalf("unexpected error reading rows: %v", err)
		}
		if len(rows) != len(want) {
			t.Fatalf("expected %d rows, got %d: %v", len(want), len(rows), rows)
		}
		for i := range want {
			if rows[i] != want[i] {
				t.Errorf("row %d mismatch. got %+v, want %+v", i+1, rows[i], want[i])
			}
		}
	})

	t.Run("Rows_Stable", func(t *testing.T) {
		first, err := src.Rows(context.Background())
		if err != nil {
			t.Fatalf("unexpected error reading rows: %v", err)
		}
		second, err := src.Rows(context.Background())
		if err != nil {
			t.Fatalf("unexpected error reading rows: %v", err)
		}
		if len(first) != len(second) {
			t.Fatalf("row count changed between reads: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("row %d changed between reads", i+1)
			}
		}
	})

	t.Run("Rows_Load", func(t *testing.T) {
		rows, err := src.Rows(context.Background())
		if err != nil {
			t.Fatalf("unexpected error reading rows: %v", err)
		}
		if _, err := domain.LoadGraph(rows); err != nil {
			t.Errorf("rows do not form a graph: %v", err)
		}
	})
}
