package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/casegen"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of casegen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "casegen version %s\n", strings.TrimSpace(casegen.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
