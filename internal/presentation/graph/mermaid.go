package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/casegen/pkg/domain"
)

// Overlay highlights one generated case on the graph.
type Overlay struct {
	VisitedNodes []string
	CurrentNode  string
	// Transitions lists the IDs of the transitions the case walks.
	Transitions []int
}

// OverlayFor builds an overlay from a test case: the states it visits, the state it ends
// in and the transitions it walks.
func OverlayFor(c domain.TestCase) *Overlay {
	o := &Overlay{
		VisitedNodes: []string{c.Start},
		CurrentNode:  c.End(),
	}
	for _, t := range c.Transitions {
		o.VisitedNodes = append(o.VisitedNodes, t.To)
		o.Transitions = append(o.Transitions, t.ID)
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the machine.
// It applies semantic styling:
// - Begin: ((Circle))
// - Dead end (no outgoing transitions): ([Stadium])
// - Default: [Rectangle]
// Transitions are emitted in insertion order, so a transition's link index is its ID.
func GenerateMermaid(g *domain.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	begin := g.Begin()
	for _, id := range g.Nodes() {
		opener, closer := "[", "]"
		switch {
		case id == begin:
			opener, closer = "((", "))"
		case g.OutDegree(id) == 0:
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(id), opener, escapeLabel(id), closer))
	}

	for _, t := range g.Transitions() {
		arrow := "-->"
		if t.Label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escapeLabel(t.Label))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(t.From), arrow, sanitizeMermaidID(t.To)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills in both themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visited[safeID] && safeID != "" {
				visited[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}

		walked := make(map[int]bool)
		for _, id := range overlay.Transitions {
			if walked[id] || id < 0 || id >= g.Size() {
				continue
			}
			walked[id] = true
			sb.WriteString(fmt.Sprintf("    linkStyle %d stroke:#01579b,stroke-width:3px;\n", id))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", "*", "_")
	return r.Replace(id)
}
