package file

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/casegen/pkg/domain"
)

// Format selects how cases are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatCSV}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == strings.ToLower(name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", name)
}

// FormatFromPath guesses the format from a file extension, defaulting to text.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv":
		return FormatCSV
	default:
		return FormatText
	}
}

// Write renders a run in the given format.
func Write(w io.Writer, f Format, run *domain.Run) error {
	switch f {
	case FormatText, "":
		return writeText(w, run)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(run); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, run)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// WriteFile renders a run into path atomically.
// An empty format is derived from the path extension.
func WriteFile(path string, f Format, run *domain.Run) error {
	if f == "" {
		f = FormatFromPath(path)
	}
	var buf bytes.Buffer
	if err := Write(&buf, f, run); err != nil {
		return err
	}
	return writeAtomic(path, buf.Bytes())
}

// writeText prints one walk per line, e.g. "A--go-->B--ok-->C".
func writeText(w io.Writer, run *domain.Run) error {
	for _, c := range run.Cases {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return err
		}
	}
	if run.Redundant > 0 {
		if _, err := fmt.Fprintf(w, "# redundant: %d\n", run.Redundant); err != nil {
			return err
		}
	}
	for _, f := range run.Failures {
		if _, err := fmt.Fprintf(w, "# failed %s: %s\n", f.Case, f.Message); err != nil {
			return err
		}
	}
	return nil
}

// writeCSV emits one record per step. Empty cases keep a step 0 record naming their state.
func writeCSV(w io.Writer, run *domain.Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"case", "step", "source", "label", "target"}); err != nil {
		return err
	}
	for _, c := range run.Cases {
		steps := domain.Render(c)
		if len(steps) == 0 {
			if err := cw.Write([]string{c.Name, "0", c.Start, "", ""}); err != nil {
				return err
			}
			continue
		}
		for i, s := range steps {
			if err := cw.Write([]string{c.Name, strconv.Itoa(i + 1), s.Source, s.Label, s.Target}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
