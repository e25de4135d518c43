package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/casegen/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "casegen",
	Short: "casegen generates test cases from finite state machines",
	Long: `casegen reads a state machine as an edge list (CSV, TSV, YAML, JSON) or a Loam
document directory and derives test cases from it: shortest paths to every state,
one case per transition, a single Eulerian trail, or every simple path between two states.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Settings file (default casegen.yaml when present)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug details to stderr")
	rootCmd.PersistentFlags().StringP("log-file", "l", "", "Write logs to this file")
}

// configKeys maps flag names to the settings they override. Dotted keys nest.
var configKeys = map[string]string{
	"verbose":       "verbose",
	"log-file":      "log_file",
	"format":        "format",
	"strategy":      "strategy",
	"begin":         "begin",
	"end":           "end",
	"entry":         "entry",
	"start":         "start",
	"open":          "open",
	"max-depth":     "max_depth",
	"max-cases":     "max_cases",
	"shuffle":       "shuffle",
	"output":        "output",
	"output-format": "output_format",
	"store":         "store.kind",
	"store-addr":    "store.addr",
	"store-path":    "store.path",
	"store-ttl":     "store.ttl",
}

// loadConfig reads the settings file and overlays the flags the user changed.
// A positional argument names the input machine.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := configKeys[f.Name]
		if !ok {
			return
		}
		if group, field, nested := strings.Cut(key, "."); nested {
			sub, _ := values[group].(map[string]any)
			if sub == nil {
				sub = map[string]any{}
				values[group] = sub
			}
			sub[field] = f.Value.String()
			return
		}
		values[key] = f.Value.String()
	})
	if len(args) > 0 {
		values["input"] = args[0]
	}

	if err := cfg.Apply(values); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// addInputFlags registers the flags describing how the machine is read.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Input format: csv, tsv, yaml, json or loam (default from extension)")
	cmd.Flags().String("begin", "", "Begin state (default the machine's first state)")
}

// addStoreFlags registers the flags selecting the case store.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("store", "", "Keep runs in a store: memory, file, redis or sqlite")
	cmd.Flags().String("store-addr", "", "Redis address for the redis store")
	cmd.Flags().String("store-path", "", "Directory of the file store or database of the sqlite store")
	cmd.Flags().Duration("store-ttl", 0, "Expiry of runs in the redis store")
}
