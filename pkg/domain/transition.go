package domain

import "strconv"

// Transition is a directed, labeled move from one state to another.
type Transition struct {
	// ID is the insertion index of the transition in its Graph.
	ID int `json:"id" yaml:"id"`

	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`

	// Label is the event name used for case naming. Optional.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Name returns the label, or "E<id>" for unlabeled transitions.
func (t Transition) Name() string {
	if t.Label != "" {
		return t.Label
	}
	return "E" + strconv.Itoa(t.ID)
}

// Loop reports whether the transition starts and ends on the same state.
func (t Transition) Loop() bool {
	return t.From == t.To
}

// String formats the transition as "from--name-->to".
func (t Transition) String() string {
	return t.From + "--" + t.Name() + "-->" + t.To
}
