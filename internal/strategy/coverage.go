package strategy

import (
	"github.com/aretw0/casegen/pkg/domain"
)

// CoverTransitions builds one case per transition, in insertion order.
//
// Each case is the shortest walk from entry to the transition's source followed by the
// transition itself. When end is not empty the shortest walk from the transition's target
// to end is appended if one exists; otherwise the case stops at the target. Transitions
// whose source cannot be reached from entry are reported as failures and the remaining
// cases are still returned.
func CoverTransitions(g *domain.Graph, entry, end string) ([]domain.TestCase, []domain.Failure, error) {
	if !g.HasNode(entry) {
		return nil, nil, &domain.UnknownNodeError{Node: entry}
	}
	if end != "" && !g.HasNode(end) {
		return nil, nil, &domain.UnknownNodeError{Node: end}
	}

	prefixes := search(g, entry, "")
	suffixes := make(map[string]*tree)

	var cases []domain.TestCase
	var failures []domain.Failure
	for _, tr := range g.Transitions() {
		target := tr
		name := "cover " + tr.String()

		walk, ok := prefixes.path(tr.From)
		if !ok {
			failures = append(failures, failure(name, &target, &domain.UnreachableError{From: entry, To: tr.From}))
			continue
		}
		walk = append(walk, tr)

		if end != "" && tr.To != end {
			t, cached := suffixes[tr.To]
			if !cached {
				t = search(g, tr.To, "")
				suffixes[tr.To] = t
			}
			if tail, ok := t.path(end); ok {
				walk = append(walk, tail...)
			}
		}

		cases = append(cases, domain.TestCase{
			Name:        name,
			Start:       entry,
			Transitions: walk,
			Target:      &target,
		})
	}
	return cases, failures, nil
}

func failure(name string, target *domain.Transition, err error) domain.Failure {
	return domain.Failure{
		Case:       name,
		Transition: target,
		Message:    err.Error(),
		Err:        err,
	}
}
