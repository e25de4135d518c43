package loam

import (
	"context"
	"fmt"

	"github.com/aretw0/loam"

	"github.com/aretw0/casegen/pkg/domain"
)

// WriteMachine saves rows as a Loam repository at dir: one document per state, listing
// its outgoing transitions in row order. begin (or the first source) is marked as the
// begin state.
func WriteMachine(ctx context.Context, dir string, begin string, rows []domain.Row) error {
	repo, err := loam.Init(dir, loam.WithVersioning(false))
	if err != nil {
		return fmt.Errorf("failed to initialize loam: %w", err)
	}
	typedRepo := loam.NewTypedRepository[StateMetadata](repo)

	var order []string
	outgoing := make(map[string][]any)
	seen := make(map[string]bool)
	visit := func(id string) {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	if begin != "" {
		visit(begin)
	}
	for _, r := range rows {
		visit(r.Source)
		visit(r.Target)
		entry := map[string]any{"to": r.Target}
		if r.Label != "" {
			entry["label"] = r.Label
		}
		outgoing[r.Source] = append(outgoing[r.Source], entry)
	}
	if len(order) == 0 {
		return fmt.Errorf("machine has no states")
	}

	for i, id := range order {
		meta := StateMetadata{
			ID:          id,
			Begin:       i == 0,
			Transitions: outgoing[id],
		}
		if meta.Transitions == nil {
			meta.Transitions = []any{}
		}
		err := typedRepo.Save(ctx, &loam.DocumentModel[StateMetadata]{
			ID:      id,
			Content: fmt.Sprintf("State %s.", id),
			Data:    meta,
		})
		if err != nil {
			return fmt.Errorf("failed to save state %q: %w", id, err)
		}
	}
	return nil
}
