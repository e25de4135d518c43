package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/casegen/internal/cli"
	"github.com/aretw0/casegen/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [machine]",
	Short: "Check the machine for consistency",
	Long: `Loads the machine and reports states unreachable from the begin state as errors.
Dead ends, isolated states, disconnected components and unbalanced states (which make
the euler strategy repeat transitions) are reported as warnings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		g, err := cli.NewEngine(cfg, src.Name(), logger, nil).Load(commandContext(cmd), src)
		if err != nil {
			return err
		}

		report := validator.ValidateGraph(g)
		out := cmd.OutOrStdout()
		for _, w := range report.Warnings() {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		if err := report.Err(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(out, "Machine is valid: %d states, %d transitions.\n", report.States, report.Transitions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	addInputFlags(validateCmd)
}
