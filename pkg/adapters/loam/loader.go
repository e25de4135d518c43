package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/casegen/pkg/domain"
)

// Source adapts a Loam repository to ports.GraphSource.
// Every document is one state; its frontmatter lists the outgoing transitions.
// Begin and States answer from the documents listed by the last Rows call.
type Source struct {
	Repo *loam.TypedRepository[StateMetadata]
	name string

	mu       sync.Mutex
	snapshot []state
}

// New creates a new Loam source.
func New(repo *loam.TypedRepository[StateMetadata], name string) *Source {
	return &Source{
		Repo: repo,
		name: name,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Source, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[StateMetadata](repo), filepath.Base(absPath)), nil
}

// Name returns the repository name.
func (s *Source) Name() string {
	return s.name
}

type state struct {
	id   string
	path string
	meta StateMetadata
}

// states lists documents sorted by state ID, with the begin state first.
func (s *Source) states(ctx context.Context) ([]state, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	res := make([]state, 0, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		res = append(res, state{id: id, path: doc.ID, meta: doc.Data})
	}

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].meta.Begin != res[j].meta.Begin {
			return res[i].meta.Begin
		}
		return res[i].id < res[j].id
	})
	if len(res) > 1 && res[1].meta.Begin {
		return nil, fmt.Errorf("both '%s' and '%s' are marked as begin", res[0].path, res[1].path)
	}
	return res, nil
}

// current returns the snapshot of the last Rows call, listing the repository only when
// there is none.
func (s *Source) current(ctx context.Context) ([]state, error) {
	s.mu.Lock()
	states := s.snapshot
	s.mu.Unlock()
	if states != nil {
		return states, nil
	}
	return s.states(ctx)
}

// Rows returns the transitions of every state: states sorted by ID (begin first),
// transitions in frontmatter order.
func (s *Source) Rows(ctx context.Context) ([]domain.Row, error) {
	states, err := s.states(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.snapshot = states
	s.mu.Unlock()

	var rows []domain.Row
	for _, st := range states {
		transitions, err := decodeTransitions(st.meta)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", st.path, err)
		}
		for i, t := range transitions {
			if t.To == "" {
				return nil, &domain.MalformedInputError{
					Row:    len(rows) + 1,
					Column: "to",
					Reason: fmt.Sprintf("transition %d of state %q has no target", i+1, st.id),
				}
			}
			label := t.Label
			if label == "" {
				label = t.Event
			}
			rows = append(rows, domain.Row{Source: st.id, Target: trimExtension(t.To), Label: label})
		}
	}
	return rows, nil
}

// Begin returns the state marked begin, or the first state in ID order.
func (s *Source) Begin(ctx context.Context) (string, error) {
	states, err := s.current(ctx)
	if err != nil {
		return "", err
	}
	if len(states) == 0 {
		return "", nil
	}
	return states[0].id, nil
}

// States lists every state ID, including states without transitions.
func (s *Source) States(ctx context.Context) ([]string, error) {
	states, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(states))
	for _, st := range states {
		ids = append(ids, st.id)
	}
	return ids, nil
}

func decodeTransitions(meta StateMetadata) ([]TransitionMetadata, error) {
	res := make([]TransitionMetadata, 0, len(meta.Transitions)+1)
	for i, raw := range meta.Transitions {
		switch v := raw.(type) {
		case string:
			res = append(res, TransitionMetadata{To: v})
		case map[string]any, map[any]any:
			var t TransitionMetadata
			if err := mapstructure.Decode(v, &t); err != nil {
				return nil, fmt.Errorf("failed to decode transition %d: %w", i+1, err)
			}
			res = append(res, t)
		default:
			return nil, fmt.Errorf("transition %d: unsupported entry %T", i+1, raw)
		}
	}
	if meta.To != "" {
		res = append(res, TransitionMetadata{To: meta.To})
	}
	return res, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch reports the IDs of changed documents until ctx is done.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	events, err := s.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
