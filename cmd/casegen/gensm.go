package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/casegen/internal/cli"
	"github.com/aretw0/casegen/internal/statelist"
	"github.com/aretw0/casegen/internal/validator"
	loamAdapter "github.com/aretw0/casegen/pkg/adapters/loam"
	"github.com/aretw0/casegen/pkg/adapters/tabular"
)

var gensmCmd = &cobra.Command{
	Use:   "gensm [matrix]",
	Short: "Build a state machine from a list of states",
	Long: `Reads a matrix of 0/1 attributes, one state per line, and links every two states
that differ in exactly one attribute. State i is named S<i>; a transition is labelled
set<j> or clear<j> after the attribute it toggles, or set_<name> with --names.

The machine is printed as CSV, or written to --output in the format of its extension.
With --format loam, --output is a directory receiving one document per state.
Reads stdin when no matrix is given or the matrix is "-".`,
	Example: `  casegen gensm features.txt --names wifi,bluetooth -o phone.csv
  casegen gensm features.txt --format loam -o ./phone`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logFile, _ := cmd.Flags().GetString("log-file")
		names, _ := cmd.Flags().GetStringSlice("names")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		logger, logCloser, err := cli.CreateLogger(verbose, logFile)
		if err != nil {
			return err
		}
		defer logCloser.Close()

		in := cmd.InOrStdin()
		if len(args) > 0 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open matrix: %w", err)
			}
			defer f.Close()
			in = f
		}

		m, err := statelist.Parse(in)
		if err != nil {
			return err
		}
		if len(m) == 0 {
			return fmt.Errorf("matrix has no states")
		}
		g, err := statelist.Build(m, names)
		if err != nil {
			return err
		}
		for _, w := range validator.ValidateGraph(g).Warnings() {
			logger.Warn("generated machine", "warning", w)
		}
		logger.Info("machine built", "states", g.Len(), "transitions", g.Size())

		machine := &tabular.Machine{Begin: statelist.StateName(0), Rows: statelist.Rows(m, names)}

		if format == "loam" {
			if output == "" {
				return fmt.Errorf("--format loam needs an --output directory")
			}
			return loamAdapter.WriteMachine(commandContext(cmd), output, machine.Begin, machine.Rows)
		}

		var f tabular.Format
		if output != "" {
			f = tabular.FormatFromPath(output)
		}
		if format != "" {
			if f, err = tabular.ParseFormat(format); err != nil {
				return err
			}
		}
		if output == "" {
			return tabular.Write(cmd.OutOrStdout(), f, machine)
		}
		return writeMachineFile(output, f, machine)
	},
}

func writeMachineFile(path string, f tabular.Format, m *tabular.Machine) error {
	var buf bytes.Buffer
	if err := tabular.Write(&buf, f, m); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func init() {
	rootCmd.AddCommand(gensmCmd)

	gensmCmd.Flags().StringSlice("names", nil, "Attribute names, in column order")
	gensmCmd.Flags().StringP("format", "f", "", "Output format: csv, tsv, yaml, json or loam")
	gensmCmd.Flags().StringP("output", "o", "", "Write the machine to this file or directory")
}
