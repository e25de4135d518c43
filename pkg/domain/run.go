package domain

import "time"

// Failure reports a case that could not be generated while the rest of the batch was.
type Failure struct {
	// Case names what was attempted, e.g. the transition or the begin/end pair.
	Case       string      `json:"case" yaml:"case"`
	Transition *Transition `json:"transition,omitempty" yaml:"transition,omitempty"`
	Message    string      `json:"message" yaml:"message"`

	Err error `json:"-" yaml:"-"`
}

// Run is one persisted strategy invocation.
type Run struct {
	ID        string     `json:"id" yaml:"id"`
	Graph     string     `json:"graph,omitempty" yaml:"graph,omitempty"`
	Strategy  Strategy   `json:"strategy" yaml:"strategy"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	Cases     []TestCase `json:"cases" yaml:"cases"`
	Failures  []Failure  `json:"failures,omitempty" yaml:"failures,omitempty"`
	Redundant int        `json:"redundant,omitempty" yaml:"redundant,omitempty"`
}
