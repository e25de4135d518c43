package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/casegen/pkg/domain"
)

// Source implements ports.GraphSource over rows held in memory.
type Source struct {
	name string
	rows []domain.Row
}

// NewSource creates a source that returns the given rows in order.
func NewSource(name string, rows ...domain.Row) *Source {
	return &Source{name: name, rows: slices.Clone(rows)}
}

// NewFromTriples builds a source from flat (source, target, label) triples.
// This keeps tests and examples short.
func NewFromTriples(name string, triples ...[3]string) *Source {
	rows := make([]domain.Row, 0, len(triples))
	for _, t := range triples {
		rows = append(rows, domain.Row{Source: t[0], Target: t[1], Label: t[2]})
	}
	return &Source{name: name, rows: rows}
}

// NewFromGraph captures the transitions of an existing graph as rows.
// States without transitions cannot be expressed as rows and are rejected.
func NewFromGraph(name string, g *domain.Graph) (*Source, error) {
	for _, n := range g.Nodes() {
		if g.OutDegree(n)+g.InDegree(n) == 0 {
			return nil, fmt.Errorf("state %q has no transitions", n)
		}
	}
	rows := make([]domain.Row, 0, g.Size())
	for _, t := range g.Transitions() {
		rows = append(rows, domain.Row{Source: t.From, Target: t.To, Label: t.Label})
	}
	return &Source{name: name, rows: rows}, nil
}

// Name returns the source name.
func (s *Source) Name() string {
	return s.name
}

// Rows returns a copy of the rows.
func (s *Source) Rows(ctx context.Context) ([]domain.Row, error) {
	return slices.Clone(s.rows), nil
}
