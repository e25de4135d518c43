package domain

import "strings"

// TestCase is an ordered walk of transitions: the target of each transition is the
// source of the next one. A case owns copies of its transitions and holds no
// reference to the graph it was generated from.
type TestCase struct {
	Name string `json:"name" yaml:"name"`

	// Start is the state the walk begins in. It is set even when the walk is empty.
	Start string `json:"start" yaml:"start"`

	Transitions []Transition `json:"transitions" yaml:"transitions"`

	// Target is the transition a per-transition coverage case was generated for.
	Target *Transition `json:"target,omitempty" yaml:"target,omitempty"`

	// Redundant counts repeated transitions inserted to make a covering trail possible.
	Redundant int `json:"redundant,omitempty" yaml:"redundant,omitempty"`
}

// Len returns the number of transitions in the case.
func (c TestCase) Len() int {
	return len(c.Transitions)
}

// End returns the state the walk finishes in.
func (c TestCase) End() string {
	if len(c.Transitions) == 0 {
		return c.Start
	}
	return c.Transitions[len(c.Transitions)-1].To
}

// String formats the case as "A--go-->B--ok-->C".
func (c TestCase) String() string {
	var sb strings.Builder
	sb.WriteString(c.Start)
	for _, t := range c.Transitions {
		sb.WriteString("--")
		sb.WriteString(t.Name())
		sb.WriteString("-->")
		sb.WriteString(t.To)
	}
	return sb.String()
}

// Step is the printable form of one traversed transition.
type Step struct {
	Source string `json:"source" yaml:"source"`
	Label  string `json:"label" yaml:"label"`
	Target string `json:"target" yaml:"target"`
}

// Render returns the (source, label, target) triples of the case in traversal order.
// Unlabeled transitions are rendered with their generated name.
func Render(c TestCase) []Step {
	steps := make([]Step, 0, len(c.Transitions))
	for _, t := range c.Transitions {
		steps = append(steps, Step{
			Source: t.From,
			Label:  t.Name(),
			Target: t.To,
		})
	}
	return steps
}
