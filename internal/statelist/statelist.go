// Package statelist builds a state machine from a list of states described by on/off
// attributes. Two states are linked when they differ in exactly one attribute, i.e. one
// step toggles one feature.
package statelist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/casegen/pkg/domain"
)

const (
	MaxStates     = 16386
	MaxAttributes = 1024
)

// Matrix holds one attribute vector per state.
type Matrix [][]bool

// Parse reads a whitespace-separated 0/1 matrix, one state per line.
// Blank lines and lines starting with '#' are skipped. Row numbers in errors are file
// lines.
func Parse(r io.Reader) (Matrix, error) {
	var m Matrix
	cols := -1

	sc := bufio.NewScanner(r)
	for row := 1; sc.Scan(); row++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(m) >= MaxStates {
			return nil, &domain.MalformedInputError{Row: row, Reason: fmt.Sprintf("more than %d states", MaxStates)}
		}

		fields := strings.Fields(line)
		if cols < 0 {
			cols = len(fields)
			if cols > MaxAttributes {
				return nil, &domain.MalformedInputError{Row: row, Reason: fmt.Sprintf("more than %d attributes", MaxAttributes)}
			}
		}
		if len(fields) != cols {
			return nil, &domain.MalformedInputError{
				Row:    row,
				Reason: fmt.Sprintf("expected %d attributes, got %d", cols, len(fields)),
			}
		}

		attrs := make([]bool, cols)
		for j, f := range fields {
			switch f {
			case "0":
			case "1":
				attrs[j] = true
			default:
				return nil, &domain.MalformedInputError{
					Row:    row,
					Column: strconv.Itoa(j + 1),
					Reason: fmt.Sprintf("attribute value %q is not 0 or 1", f),
				}
			}
		}
		m = append(m, attrs)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read state list: %w", err)
	}
	return m, nil
}

// StateName is the name of the i-th state.
func StateName(i int) string {
	return "S" + strconv.Itoa(i)
}

// Rows links every ordered pair of states that differ in exactly one attribute.
// The label says what the step does to that attribute: "set<j>" or "clear<j>", with j
// the 0-based attribute index, or the attribute name when names has one for j.
func Rows(m Matrix, names []string) []domain.Row {
	var rows []domain.Row
	for i := range m {
		for j := range m {
			if i == j {
				continue
			}
			bit, ok := singleDiff(m[i], m[j])
			if !ok {
				continue
			}
			rows = append(rows, domain.Row{
				Source: StateName(i),
				Target: StateName(j),
				Label:  label(bit, m[i][bit], names),
			})
		}
	}
	return rows
}

// Build returns the machine for m. Every state is present even when no other state is
// one step away from it.
func Build(m Matrix, names []string) (*domain.Graph, error) {
	g := domain.NewGraph()
	for i := range m {
		g.AddNode(StateName(i))
	}
	for _, r := range Rows(m, names) {
		if _, err := g.AddTransition(r.Source, r.Target, r.Label); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func singleDiff(a, b []bool) (int, bool) {
	if len(a) != len(b) {
		return 0, false
	}
	bit := -1
	for k := range a {
		if a[k] != b[k] {
			if bit >= 0 {
				return 0, false
			}
			bit = k
		}
	}
	return bit, bit >= 0
}

// label names the toggle of bit for a source whose bit is on.
func label(bit int, on bool, names []string) string {
	name := strconv.Itoa(bit)
	if bit < len(names) && names[bit] != "" {
		name = "_" + names[bit]
	}
	if on {
		return "clear" + name
	}
	return "set" + name
}
