package ports

import (
	"context"

	"github.com/aretw0/casegen/pkg/domain"
)

// GraphSource defines how the engine retrieves a machine description.
// This allows the storage layer (files, Loam, memory) to be decoupled.
type GraphSource interface {
	// Rows returns one row per transition.
	// The order must be stable: it decides node order and every tie-break downstream.
	Rows(ctx context.Context) ([]domain.Row, error)
}

// Named is implemented by sources that can describe where their rows came from.
// The engine uses it to label logs and persisted runs.
type Named interface {
	Name() string
}

// Beginner is implemented by sources that declare their begin state explicitly.
// An empty result means the first state of the first row.
type Beginner interface {
	Begin(ctx context.Context) (string, error)
}

// Watchable is implemented by sources that can report changes to their rows.
// Each value sent names the changed resource; the channel closes with ctx.
type Watchable interface {
	Watch(ctx context.Context) (<-chan string, error)
}

// StateLister is implemented by sources that can declare states without transitions.
// Such states are added after the ones the rows introduce.
type StateLister interface {
	States(ctx context.Context) ([]string, error)
}
