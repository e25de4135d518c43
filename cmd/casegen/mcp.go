package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/aretw0/casegen/internal/cli"
	"github.com/aretw0/casegen/internal/logging"
	"github.com/aretw0/casegen/pkg/adapters/mcp"
	"github.com/aretw0/casegen/pkg/ports"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [machine]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes case generation to AI agents as MCP tools (generate_cases, render_graph).
When a machine is given, tool calls without transitions use it and it is published as
the casegen://graph resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Stdout carries JSON-RPC on stdio; logs always go to stderr or the log file.
		logger, logCloser, err := cli.CreateLogger(cfg.Verbose, cfg.LogFile)
		if err != nil {
			return err
		}
		defer logCloser.Close()
		if cfg.LogFile == "" {
			logger = logging.New(logging.Level(cfg.Verbose))
		}
		slog.SetDefault(logger)

		var source ports.GraphSource
		name := "mcp"
		if cfg.Input != "" {
			src, err := cli.NewSource(cfg)
			if err != nil {
				return err
			}
			source, name = src, src.Name()
		}
		srv := mcp.NewServer(cli.NewEngine(cfg, name, logger, nil), source)

		switch transport {
		case "stdio":
			logger.Info("Starting casegen MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting casegen MCP Server (SSE)", "port", port)
			ctx := cli.NewSignalContext(commandContext(cmd))
			defer ctx.Cancel()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	addInputFlags(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
