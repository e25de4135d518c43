package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned when a strategy name is not one of node, path, euler or all.
var ErrUnknownStrategy = errors.New("unknown strategy")

// ErrRunNotFound is returned when a run ID cannot be found in a case store.
var ErrRunNotFound = errors.New("run not found")

// UnknownNodeError is returned when a referenced state is absent from the graph.
type UnknownNodeError struct {
	Node string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node %q", e.Node)
}

// UnreachableError is returned when no path exists between two required states.
type UnreachableError struct {
	From string
	To   string
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("node %q is unreachable from %q", e.To, e.From)
}

// DeadEndError is returned when a walk has to leave a state that has no outgoing transitions.
type DeadEndError struct {
	Node string
}

func (e *DeadEndError) Error() string {
	return fmt.Sprintf("node %q has no outgoing transitions", e.Node)
}

// MalformedInputError reports a structurally invalid input row.
// Row is 1-based: the file line for line-oriented inputs, counting every line of the file,
// otherwise the position in the row list. Zero refers to the input as a whole.
type MalformedInputError struct {
	Row    int
	Column string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Reason)
}

// DisconnectedGraphError is returned when the transitions cannot be covered by a single walk.
// Components lists the states of each weakly connected component when the graph is split;
// Cause holds the pair that could not be joined when balancing failed instead.
type DisconnectedGraphError struct {
	Components [][]string
	Cause      error
}

func (e *DisconnectedGraphError) Error() string {
	if len(e.Components) > 1 {
		parts := make([]string, 0, len(e.Components))
		for _, c := range e.Components {
			parts = append(parts, "{"+strings.Join(c, ", ")+"}")
		}
		return fmt.Sprintf("graph has %d disjoint components: %s", len(e.Components), strings.Join(parts, " "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("graph cannot be covered by one walk: %v", e.Cause)
	}
	return "graph cannot be covered by one walk"
}

func (e *DisconnectedGraphError) Unwrap() error {
	return e.Cause
}
