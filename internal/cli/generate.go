package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/casegen"
	"github.com/aretw0/casegen/internal/config"
	"github.com/aretw0/casegen/internal/presentation/tui"
	"github.com/aretw0/casegen/pkg/adapters/file"
	"github.com/aretw0/casegen/pkg/domain"
)

// Generator runs one configured generation and writes its output.
type Generator struct {
	Config *config.Config
	Engine *casegen.Engine
	Source Source
	Logger *slog.Logger
	Out    io.Writer
}

// NewGenerator wires the source, store and engine for cfg. The closer releases the store.
func NewGenerator(cfg *config.Config, logger *slog.Logger, out io.Writer) (*Generator, io.Closer, error) {
	src, err := NewSource(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, closer, err := NewStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return &Generator{
		Config: cfg,
		Engine: NewEngine(cfg, src.Name(), logger, store),
		Source: src,
		Logger: logger,
		Out:    out,
	}, closer, nil
}

// Run loads the machine, generates the cases and writes them.
func (g *Generator) Run(ctx context.Context) (*domain.Run, error) {
	graph, err := g.Engine.Load(ctx, g.Source)
	if err != nil {
		return nil, err
	}

	strategy, err := domain.ParseStrategy(g.Config.Strategy)
	if err != nil {
		return nil, err
	}

	run, err := g.Engine.Generate(ctx, graph, strategy, Options(g.Config))
	if err != nil && run == nil {
		return nil, err
	}
	if err != nil {
		// Persisting failed; the cases are still worth printing.
		g.Logger.Error("run not saved", "run_id", run.ID, "error", err)
	}

	if err := g.write(run); err != nil {
		return run, err
	}
	return run, nil
}

func (g *Generator) write(run *domain.Run) error {
	if g.Config.Output != "" {
		format := file.FormatFromPath(g.Config.Output)
		if g.Config.OutputFormat != "" {
			format = file.Format(g.Config.OutputFormat)
		}
		if err := file.WriteFile(g.Config.Output, format, run); err != nil {
			return err
		}
		g.Logger.Info("cases written", "path", g.Config.Output, "format", format)
		return nil
	}

	format := file.FormatText
	if g.Config.OutputFormat != "" {
		format = file.Format(g.Config.OutputFormat)
	}

	if f, ok := g.Out.(*os.File); ok && format == file.FormatText && tui.IsTerminal(f) {
		rendered, err := tui.NewRenderer()(tui.CasesMarkdown(run))
		if err == nil {
			_, err = fmt.Fprint(g.Out, rendered)
			return err
		}
	}
	return file.Write(g.Out, format, run)
}
