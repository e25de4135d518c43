package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/casegen/pkg/adapters/file"
	"github.com/aretw0/casegen/pkg/domain"
	"github.com/aretw0/casegen/pkg/ports"
)

// Ensure Store implements CaseStore
var _ ports.CaseStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunCaseStoreContract(t, file.NewStore(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	if err := store.Save(ctx, &domain.Run{ID: "run-1", Strategy: domain.StrategyPath}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "run-1.json")); err != nil {
		t.Fatalf("expected run file on disk: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the run file, temp files leaked: %v", entries)
	}

	if err := store.Save(ctx, &domain.Run{}); err == nil {
		t.Error("expected error for empty run ID")
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "missing"))
	ids, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no runs, got %v", ids)
	}
}
