package dsl

import "github.com/aretw0/casegen/pkg/domain"

// StateBuilder provides a fluent API for configuring a state's transitions.
type StateBuilder struct {
	id          string
	builder     *Builder
	transitions []domain.Row
}

// On adds a labelled transition to the target state.
func (s *StateBuilder) On(label string, target string) *StateBuilder {
	s.transitions = append(s.transitions, domain.Row{Source: s.id, Target: target, Label: label})
	return s
}

// Go adds an unlabelled transition to the target state.
func (s *StateBuilder) Go(target string) *StateBuilder {
	return s.On("", target)
}

// Loop adds a labelled transition back to the same state.
func (s *StateBuilder) Loop(label string) *StateBuilder {
	return s.On(label, s.id)
}

// State continues with another state of the same machine.
func (s *StateBuilder) State(id string) *StateBuilder {
	return s.builder.State(id)
}
