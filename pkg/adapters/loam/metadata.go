package loam

// StateMetadata is the frontmatter of one state document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type StateMetadata struct {
	ID string `json:"id" mapstructure:"id"`

	// Begin marks the machine's begin state. At most one document may set it.
	Begin bool `json:"begin" mapstructure:"begin"`

	// Transitions lists outgoing transitions in order. Each entry is either a target
	// state ID or a map decoded into TransitionMetadata.
	Transitions []any `json:"transitions" mapstructure:"transitions"`

	// To is shorthand for a single unlabeled transition, appended last.
	To string `json:"to" mapstructure:"to"`
}

// TransitionMetadata is the long form of a transition entry.
type TransitionMetadata struct {
	To    string `json:"to" mapstructure:"to"`
	Label string `json:"label" mapstructure:"label"`
	// Event is an alias for Label.
	Event string `json:"event" mapstructure:"event"`
}
