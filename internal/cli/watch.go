package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/casegen/pkg/ports"
)

// reloadDelay lets a burst of file events settle before regenerating.
const reloadDelay = 100 * time.Millisecond

// RunWatch regenerates every time the machine changes, until ctx is done.
// Generation errors are reported and the watcher keeps waiting for a fix.
func RunWatch(ctx context.Context, g *Generator, status io.Writer) error {
	w, ok := g.Source.(ports.Watchable)
	if !ok {
		return fmt.Errorf("source %q does not support watching", g.Source.Name())
	}
	return watch(ctx, w, g.Logger, status, func(ctx context.Context) error {
		_, err := g.Run(ctx)
		return err
	})
}

func watch(ctx context.Context, w ports.Watchable, logger *slog.Logger, status io.Writer, run func(context.Context) error) error {
	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	for {
		if err := run(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			logger.Error("generation failed", "error", err)
			printSystemMessage(status, "Generation failed: %v", err)
		}
		printSystemMessage(status, "Waiting for changes...")

		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			logger.Info("Change detected, regenerating", "event", event)
			printSystemMessage(status, "Change detected in '%s'.", event)
		}

		// Drain the burst of events that a single save produces.
		timer := time.NewTimer(reloadDelay)
	drain:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case _, ok := <-events:
				if !ok {
					timer.Stop()
					return nil
				}
			case <-timer.C:
				break drain
			}
		}
	}
}
