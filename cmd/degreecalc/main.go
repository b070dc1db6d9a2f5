// Package main provides the degreecalc CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "degreecalc",
		Short: "Undergraduate degree classification calculator",
		Long: `degreecalc applies the honours classification rules to a student's
Level 5, Level 6 and final-year project marks and reports the most
favourable final mark, its band and the GPA.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: search for .degreecalc/config.yaml)")

	rootCmd.AddCommand(
		newClassifyCmd(),
		newBatchCmd(),
		newZonesCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the degreecalc version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "degreecalc %s\n", version)
		},
	}
}
