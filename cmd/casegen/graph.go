package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/casegen/internal/cli"
	"github.com/aretw0/casegen/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph [machine]",
	Short: "Export the machine as a diagram",
	Long: `Loads the machine and prints it as a Mermaid diagram (graph TD), or with --render dump
as a plain listing of every state with its degrees and transitions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		render, _ := cmd.Flags().GetString("render")
		if render != "mermaid" && render != "dump" {
			return fmt.Errorf("unknown render %q: expected mermaid or dump", render)
		}

		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		logger, logCloser, err := cli.CreateLogger(cfg.Verbose, cfg.LogFile)
		if err != nil {
			return err
		}
		defer logCloser.Close()

		src, err := cli.NewSource(cfg)
		if err != nil {
			return err
		}
		engine := cli.NewEngine(cfg, src.Name(), logger, nil)
		g, err := engine.Load(commandContext(cmd), src)
		if err != nil {
			return err
		}

		if render == "dump" {
			return graph.Dump(cmd.OutOrStdout(), g)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), engine.Mermaid(g, nil))
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	addInputFlags(graphCmd)
	graphCmd.Flags().String("render", "mermaid", "Render as mermaid or dump")
}
