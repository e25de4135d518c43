package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/casegen/pkg/domain"
)

// CasesMarkdown formats a run as markdown: a heading per case with a table of its steps,
// followed by the failures.
func CasesMarkdown(run *domain.Run) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s: %d case(s)\n\n", run.Strategy, len(run.Cases))
	if run.Redundant > 0 {
		fmt.Fprintf(&sb, "Repeated transitions: **%d**\n\n", run.Redundant)
	}

	for i, c := range run.Cases {
		fmt.Fprintf(&sb, "## %d. %s\n\n", i+1, escape(c.Name))
		steps := domain.Render(c)
		if len(steps) == 0 {
			fmt.Fprintf(&sb, "_Stays in `%s`._\n\n", c.Start)
			continue
		}
		sb.WriteString("| # | Source | Label | Target |\n|---|---|---|---|\n")
		for j, s := range steps {
			fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", j+1, escape(s.Source), escape(s.Label), escape(s.Target))
		}
		sb.WriteString("\n")
	}

	if len(run.Failures) > 0 {
		sb.WriteString("## Failures\n\n")
		for _, f := range run.Failures {
			fmt.Fprintf(&sb, "- **%s**: %s\n", escape(f.Case), escape(f.Message))
		}
	}
	return sb.String()
}

func escape(s string) string {
	return strings.NewReplacer("|", "\\|", "*", "\\*", "_", "\\_").Replace(s)
}
