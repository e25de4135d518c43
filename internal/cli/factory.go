package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/casegen"
	"github.com/aretw0/casegen/internal/config"
	"github.com/aretw0/casegen/pkg/adapters/file"
	loamAdapter "github.com/aretw0/casegen/pkg/adapters/loam"
	"github.com/aretw0/casegen/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/casegen/pkg/adapters/redis"
	"github.com/aretw0/casegen/pkg/adapters/sqlite"
	"github.com/aretw0/casegen/pkg/adapters/tabular"
	"github.com/aretw0/casegen/pkg/observability"
	"github.com/aretw0/casegen/pkg/ports"
)

// Source is a machine source that can name itself.
type Source interface {
	ports.GraphSource
	ports.Named
}

// NewSource opens the machine named by cfg.Input. Directories and the "loam" format
// are read as Loam document repositories; anything else as a tabular file.
func NewSource(cfg *config.Config) (Source, error) {
	if cfg.Input == "" {
		return nil, fmt.Errorf("no input machine given")
	}

	info, err := os.Stat(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to open machine: %w", err)
	}
	if cfg.Format == "loam" || info.IsDir() {
		return loamAdapter.Open(cfg.Input)
	}

	format, err := tabular.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	return tabular.NewSource(cfg.Input, format), nil
}

// NewStore opens the case store selected by cfg. A nil store means runs are not kept.
// The closer releases the store's connections.
func NewStore(cfg *config.Config) (ports.CaseStore, io.Closer, error) {
	nop := io.NopCloser(nil)
	switch cfg.Store.Kind {
	case "":
		return nil, nop, nil
	case "memory":
		return memory.NewStore(), nop, nil
	case "file":
		return file.NewStore(cfg.Store.Path), nop, nil
	case "redis":
		var opts []redisAdapter.Option
		if cfg.Store.TTL > 0 {
			opts = append(opts, redisAdapter.WithTTL(cfg.Store.TTL))
		}
		s := redisAdapter.New(cfg.Store.Addr, "", 0, opts...)
		return s, s, nil
	case "sqlite":
		s, err := sqlite.New(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
	}
}

// NewEngine initializes an engine with standard CLI conventions.
func NewEngine(cfg *config.Config, name string, logger *slog.Logger, store ports.CaseStore, hooks ...casegen.Option) *casegen.Engine {
	opts := []casegen.Option{
		casegen.WithLogger(logger),
		casegen.WithName(name),
	}
	if cfg.Verbose {
		opts = append(opts, casegen.WithHooks(observability.LogHooks(logger)))
	}
	if store != nil {
		opts = append(opts, casegen.WithStore(store))
	}
	return casegen.New(append(opts, hooks...)...)
}

// Options maps the strategy settings of cfg.
func Options(cfg *config.Config) casegen.Options {
	return casegen.Options{
		Begin:    cfg.Begin,
		End:      cfg.End,
		Entry:    cfg.Entry,
		Start:    cfg.Start,
		Open:     cfg.Open,
		MaxDepth: cfg.MaxDepth,
		MaxCases: cfg.MaxCases,
		Shuffle:  cfg.Shuffle,
	}
}
