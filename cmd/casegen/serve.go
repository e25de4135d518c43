package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/casegen"
	"github.com/aretw0/casegen/internal/cli"
	"github.com/aretw0/casegen/internal/presentation/tui"
	httpAdapter "github.com/aretw0/casegen/pkg/adapters/http"
	"github.com/aretw0/casegen/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves case generation over HTTP. Machines are posted inline:

  POST /generate   cases for a machine and strategy
  POST /graph      Mermaid diagram of a machine
  GET  /runs       stored run IDs (needs --store)
  GET  /events     server-sent summary of every run
  GET  /metrics    Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetInt("port")

		logger, logCloser, err := cli.CreateLogger(cfg.Verbose, cfg.LogFile)
		if err != nil {
			return err
		}
		defer logCloser.Close()

		store, storeCloser, err := cli.NewStore(cfg)
		if err != nil {
			return err
		}
		defer storeCloser.Close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		engine := cli.NewEngine(cfg, "http", logger, store,
			casegen.WithHooks(observability.Combine(metrics.Hooks(), observability.LogHooks(logger))))
		handler := httpAdapter.NewHandler(engine, httpAdapter.WithGatherer(reg), httpAdapter.WithLogger(logger))

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		out := cmd.ErrOrStderr()
		tui.PrintBanner(out)

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Fprintf(out, "Starting casegen server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cli.NewSignalContext(commandContext(cmd))
		defer ctx.Cancel()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			fmt.Fprintf(out, "\nStart shutdown... Signal: %v\n", ctx.Signal())

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("failed to stop server: %w", err)
				}
			}
			fmt.Fprintln(out, "casegen server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	addStoreFlags(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
