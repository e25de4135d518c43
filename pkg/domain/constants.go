package domain

import "fmt"

// Strategy selects how cases are derived from a graph.
type Strategy string

const (
	// StrategyNode generates one shortest case from a begin state to an end state.
	StrategyNode Strategy = "node"
	// StrategyPath generates one case per transition.
	StrategyPath Strategy = "path"
	// StrategyEuler generates a single trail covering every transition with the fewest repeats.
	StrategyEuler Strategy = "euler"
	// StrategyAll generates every simple path between two states, within limits.
	StrategyAll Strategy = "all"
)

// AnyNode is the wildcard accepted for begin and end states: every state of the graph.
const AnyNode = "*"

// Strategies lists the supported strategies in display order.
func Strategies() []Strategy {
	return []Strategy{StrategyNode, StrategyPath, StrategyEuler, StrategyAll}
}

// ParseStrategy validates a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
