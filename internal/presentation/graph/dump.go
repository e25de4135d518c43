package graph

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/casegen/pkg/domain"
)

// Dump writes a plain-text report of the machine: one line per state with its degrees and
// balance (out - in), followed by every transition in insertion order.
func Dump(w io.Writer, g *domain.Graph) error {
	fmt.Fprintf(w, "states: %d  transitions: %d  begin: %s\n\n", g.Len(), g.Size(), g.Begin())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATE\tOUT\tIN\tBALANCE")
	for _, id := range g.Nodes() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%+d\n", id, g.OutDegree(id), g.InDegree(id), g.Balance(id))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, t := range g.Transitions() {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	return nil
}
