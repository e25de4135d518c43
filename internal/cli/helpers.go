package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/casegen/internal/logging"
)

// SignalContext is a context cancelled by SIGINT or SIGTERM that remembers which
// signal arrived.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	mu  sync.Mutex
	sig os.Signal
}

// NewSignalContext starts listening for SIGINT and SIGTERM until the returned
// context is done.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			sc.mu.Lock()
			sc.sig = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// CreateLogger configures the application logger.
// With a log file every record goes there; otherwise only verbose runs log, to Stderr.
func CreateLogger(verbose bool, logFile string) (*slog.Logger, io.Closer, error) {
	if logFile != "" {
		return logging.NewFile(logFile, logging.Level(verbose))
	}
	if verbose {
		return logging.New(slog.LevelDebug), io.NopCloser(nil), nil
	}
	return logging.NewNop(), io.NopCloser(nil), nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
