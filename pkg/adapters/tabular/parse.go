package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/casegen/pkg/domain"
)

// Format is the layout of a machine description.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension, defaulting to CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return FormatTSV
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// ParseFormat validates a format name. An empty name yields an empty format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "", FormatCSV, FormatTSV, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown input format %q", name)
	}
}

// Machine is a parsed description: an optional begin state and its transition rows.
type Machine struct {
	Begin string
	Rows  []domain.Row
}

// Header aliases, matched case-insensitively.
var columns = map[string]string{
	"source": "source",
	"from":   "source",
	"state":  "source",
	"target": "target",
	"to":     "target",
	"next":   "target",
	"label":  "label",
	"event":  "label",
	"name":   "label",
}

// Parse reads a machine description in the given format.
func Parse(r io.Reader, f Format) (*Machine, error) {
	switch f {
	case FormatCSV, "":
		return parseDelimited(r, ',')
	case FormatTSV:
		return parseDelimited(r, '\t')
	case FormatYAML, FormatJSON:
		return parseDocument(r)
	default:
		return nil, fmt.Errorf("unknown input format %q", f)
	}
}

// parseDelimited reads a header row followed by one transition per record.
// Lines starting with '#' are comments. Errors name the line of the offending record in
// the file, comments and blank lines included.
func parseDelimited(r io.Reader, comma rune) (*Machine, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Machine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	headerLine, _ := cr.FieldPos(0)

	index := map[string]int{}
	for i, h := range header {
		if col, ok := columns[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := index[col]; !dup {
				index[col] = i
			}
		}
	}
	for _, col := range []string{"source", "target"} {
		if _, ok := index[col]; !ok {
			return nil, &domain.MalformedInputError{Row: headerLine, Column: col, Reason: "missing " + col + " column in header"}
		}
	}

	field := func(record []string, col string) (string, bool) {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}

	m := &Machine{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		line, _ := cr.FieldPos(0)

		source, ok := field(record, "source")
		if !ok {
			return nil, &domain.MalformedInputError{Row: line, Column: "source", Reason: "missing column"}
		}
		if source == "" {
			return nil, &domain.MalformedInputError{Row: line, Column: "source", Reason: "empty source"}
		}
		target, ok := field(record, "target")
		if !ok {
			return nil, &domain.MalformedInputError{Row: line, Column: "target", Reason: "missing column"}
		}
		if target == "" {
			return nil, &domain.MalformedInputError{Row: line, Column: "target", Reason: "empty target"}
		}
		label, _ := field(record, "label")
		m.Rows = append(m.Rows, domain.Row{Source: source, Target: target, Label: label})
	}
	return m, nil
}

type transitionDoc struct {
	From  string `yaml:"from" json:"from"`
	To    string `yaml:"to" json:"to"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
}

type document struct {
	Begin       string          `yaml:"begin,omitempty" json:"begin,omitempty"`
	Transitions []transitionDoc `yaml:"transitions" json:"transitions"`
}

// parseDocument reads {begin, transitions: [{from, to, label}]}. JSON is valid YAML, so
// one decoder serves both.
func parseDocument(r io.Reader) (*Machine, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Machine{}, nil
		}
		return nil, fmt.Errorf("failed to decode machine: %w", err)
	}

	m := &Machine{Begin: strings.TrimSpace(doc.Begin)}
	for _, t := range doc.Transitions {
		m.Rows = append(m.Rows, domain.Row{
			Source: strings.TrimSpace(t.From),
			Target: strings.TrimSpace(t.To),
			Label:  strings.TrimSpace(t.Label),
		})
	}
	return m, nil
}
