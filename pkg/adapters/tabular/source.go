package tabular

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/casegen/pkg/domain"
)

// Source implements ports.GraphSource over a machine description file.
// Begin answers from the file as parsed by the last Rows call, so one load never mixes
// two versions of the file.
type Source struct {
	path   string
	format Format

	mu   sync.Mutex
	last *Machine
}

// NewSource creates a source for path. An empty format is derived from the extension.
func NewSource(path string, format Format) *Source {
	if format == "" {
		format = FormatFromPath(path)
	}
	return &Source{path: path, format: format}
}

// Name returns the file name without extension.
func (s *Source) Name() string {
	base := filepath.Base(s.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *Source) read() (*Machine, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open machine: %w", err)
	}
	defer f.Close()

	m, err := Parse(f, s.format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return m, nil
}

// Rows reads the file and returns its transitions in file order.
func (s *Source) Rows(ctx context.Context) ([]domain.Row, error) {
	m, err := s.read()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.last = m
	s.mu.Unlock()
	return m.Rows, nil
}

// Begin returns the declared begin state, if the format carries one.
// The file is read only when Rows has not been called yet.
func (s *Source) Begin(ctx context.Context) (string, error) {
	s.mu.Lock()
	m := s.last
	s.mu.Unlock()
	if m == nil {
		var err error
		if m, err = s.read(); err != nil {
			return "", err
		}
	}
	return m.Begin, nil
}
