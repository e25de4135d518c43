package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/casegen/internal/cli"
)

var generateCmd = &cobra.Command{
	Use:   "generate [machine]",
	Short: "Generate test cases from a state machine",
	Long: `Loads the machine and runs one coverage strategy over it:

  node   shortest path from --begin to --end; "*" on either side means every state
  path   one case per transition, reaching it by a shortest path
  euler  a single trail covering every transition with minimum repetition
  all    every simple path from --begin to --end

Cases are printed one per line as A--label-->B--label-->C, or written to --output.`,
	Example: `  casegen generate turnstile.csv --strategy euler
  casegen generate door.yaml -s all --begin closed --end locked -o cases.json
  casegen generate ./machine --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		watch, _ := cmd.Flags().GetBool("watch")

		logger, logCloser, err := cli.CreateLogger(cfg.Verbose, cfg.LogFile)
		if err != nil {
			return err
		}
		defer logCloser.Close()

		gen, storeCloser, err := cli.NewGenerator(cfg, logger, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer storeCloser.Close()

		ctx := cli.NewSignalContext(commandContext(cmd))
		defer ctx.Cancel()

		if watch {
			return cli.RunWatch(ctx, gen, cmd.ErrOrStderr())
		}
		_, err = gen.Run(ctx)
		return err
	},
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addInputFlags(generateCmd)
	addStoreFlags(generateCmd)
	generateCmd.Flags().StringP("strategy", "s", "path", "Coverage strategy: node, path, euler or all")
	generateCmd.Flags().String("end", "", "Last state for node and all, exit state for path")
	generateCmd.Flags().String("entry", "", "Path: state every case starts from (default the begin state)")
	generateCmd.Flags().String("start", "", "Euler: preferred first state of the trail")
	generateCmd.Flags().Bool("open", false, "Euler: allow the trail to end away from its start")
	generateCmd.Flags().Int("max-depth", 0, "All: longest path explored (0 means unbounded)")
	generateCmd.Flags().Int("max-cases", 0, "All: stop after this many cases (0 means unbounded)")
	generateCmd.Flags().Int64("shuffle", 0, "Seed for shuffling outgoing transitions before the run (0 keeps file order)")
	generateCmd.Flags().StringP("output", "o", "", "Write cases to this file instead of stdout")
	generateCmd.Flags().String("output-format", "", "Output format: text, json, yaml or csv (default from --output extension)")
	generateCmd.Flags().BoolP("watch", "w", false, "Regenerate whenever a Loam machine changes")
}
