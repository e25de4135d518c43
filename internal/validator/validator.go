// Package validator checks a loaded machine for states and transitions that test
// generation cannot reach.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/casegen/internal/strategy"
	"github.com/aretw0/casegen/pkg/domain"
)

// Imbalance is a state whose out-degree differs from its in-degree.
type Imbalance struct {
	State   string
	Balance int
}

// Report summarizes a machine.
type Report struct {
	Begin       string
	States      int
	Transitions int

	// Unreachable lists states the begin state cannot reach, in insertion order.
	Unreachable []string
	// DeadEnds lists states without outgoing transitions.
	DeadEnds []string
	// Isolated lists states without any transition.
	Isolated []string
	// Components are the weakly connected parts of the machine.
	Components [][]string
	// Imbalanced lists the states an euler trail has to repeat transitions around.
	Imbalanced []Imbalance
}

// ValidateGraph crawls g from its begin state and reports what a generated suite
// could not cover.
func ValidateGraph(g *domain.Graph) *Report {
	r := &Report{
		Begin:       g.Begin(),
		States:      g.Len(),
		Transitions: g.Size(),
		DeadEnds:    strategy.DeadEnds(g),
		Components:  strategy.Components(g),
	}
	if r.Begin == "" {
		return r
	}

	reach := strategy.Reachability(g)
	r.Unreachable = reach.Unreachable(r.Begin)

	for _, n := range g.Nodes() {
		if g.OutDegree(n)+g.InDegree(n) == 0 {
			r.Isolated = append(r.Isolated, n)
		}
		if b := g.Balance(n); b != 0 {
			r.Imbalanced = append(r.Imbalanced, Imbalance{State: n, Balance: b})
		}
	}
	return r
}

// Errors lists the problems that make some states or transitions untestable.
func (r *Report) Errors() []string {
	var errs []string
	if r.States == 0 {
		return []string{"machine has no states"}
	}
	for _, n := range r.Unreachable {
		errs = append(errs, fmt.Sprintf("state '%s' is unreachable from '%s'", n, r.Begin))
	}
	if len(r.Components) > 1 {
		parts := make([]string, 0, len(r.Components))
		for _, c := range r.Components {
			parts = append(parts, "{"+strings.Join(c, ", ")+"}")
		}
		errs = append(errs, fmt.Sprintf("machine splits into %d components: %s", len(r.Components), strings.Join(parts, " ")))
	}
	return errs
}

// Warnings lists findings that do not block generation.
func (r *Report) Warnings() []string {
	var warns []string
	for _, n := range r.DeadEnds {
		if r.isIsolated(n) {
			continue
		}
		warns = append(warns, fmt.Sprintf("state '%s' has no outgoing transitions", n))
	}
	for _, n := range r.Isolated {
		warns = append(warns, fmt.Sprintf("state '%s' has no transitions", n))
	}
	return warns
}

func (r *Report) isIsolated(n string) bool {
	for _, i := range r.Isolated {
		if i == n {
			return true
		}
	}
	return false
}

// Err returns nil for a machine without errors.
func (r *Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
}
