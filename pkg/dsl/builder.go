package dsl

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/casegen/pkg/domain"
)

// Builder manages the machine construction.
type Builder struct {
	name   string
	begin  string
	order  []string
	states map[string]*StateBuilder
}

// New creates a new machine builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		states: make(map[string]*StateBuilder),
	}
}

// State declares a state, in declaration order.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(id string) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{id: id, builder: b}
	b.states[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Begin marks the state generation starts from. Defaults to the first declared state.
func (b *Builder) Begin(id string) *Builder {
	b.begin = id
	return b
}

// Build compiles the declarations into a Machine.
// Every transition target and the begin state must be declared.
func (b *Builder) Build() (*Machine, error) {
	if len(b.order) == 0 {
		return nil, fmt.Errorf("machine %q has no states", b.name)
	}
	if b.begin != "" {
		if _, ok := b.states[b.begin]; !ok {
			return nil, &domain.UnknownNodeError{Node: b.begin}
		}
	}

	m := &Machine{name: b.name, begin: b.begin, states: slices.Clone(b.order)}
	if m.begin == "" {
		m.begin = b.order[0]
	}
	for _, id := range b.order {
		for _, t := range b.states[id].transitions {
			if _, ok := b.states[t.Target]; !ok {
				return nil, fmt.Errorf("state %q: %w", id, &domain.UnknownNodeError{Node: t.Target})
			}
			m.rows = append(m.rows, t)
		}
	}
	return m, nil
}

// Machine is a built machine. It implements ports.GraphSource, ports.Beginner,
// ports.StateLister and ports.Named.
type Machine struct {
	name   string
	begin  string
	states []string
	rows   []domain.Row
}

// Name returns the machine name.
func (m *Machine) Name() string {
	return m.name
}

// Rows returns the transitions grouped by source state, in declaration order.
func (m *Machine) Rows(ctx context.Context) ([]domain.Row, error) {
	return slices.Clone(m.rows), nil
}

// Begin returns the begin state.
func (m *Machine) Begin(ctx context.Context) (string, error) {
	return m.begin, nil
}

// States returns every declared state.
func (m *Machine) States(ctx context.Context) ([]string, error) {
	return slices.Clone(m.states), nil
}
