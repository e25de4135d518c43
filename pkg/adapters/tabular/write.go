package tabular

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Write renders m in the given format, in the layout Parse reads back.
func Write(w io.Writer, f Format, m *Machine) error {
	switch f {
	case FormatCSV, "":
		return writeDelimited(w, ',', m)
	case FormatTSV:
		return writeDelimited(w, '\t', m)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toDocument(m)); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toDocument(m))
	default:
		return fmt.Errorf("unknown input format %q", f)
	}
}

// writeDelimited cannot carry the begin state; the first row's source is used on reload.
func writeDelimited(w io.Writer, comma rune, m *Machine) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write([]string{"source", "target", "label"}); err != nil {
		return err
	}
	for _, r := range m.Rows {
		if err := cw.Write([]string{r.Source, r.Target, r.Label}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toDocument(m *Machine) document {
	doc := document{Begin: m.Begin, Transitions: make([]transitionDoc, 0, len(m.Rows))}
	for _, r := range m.Rows {
		doc.Transitions = append(doc.Transitions, transitionDoc{From: r.Source, To: r.Target, Label: r.Label})
	}
	return doc
}
