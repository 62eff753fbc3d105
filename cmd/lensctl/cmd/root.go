// Package cmd contains the CLI commands for lensctl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Used for flags
	verbose bool
	output  string
	seed    int64
	depts   int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lensctl",
	Short: "AgentLens - AI usage and spend analytics toolkit",
	Long: `lensctl works with AgentLens datasets from the terminal: synthesize
a dataset, inspect the agent leaderboard, or run the export pipeline
without standing up the server.

Examples:
  # Dump a reproducible dataset as JSON
  lensctl generate --seed 42 > dataset.json

  # Show the top 10 agents by weekly spend
  lensctl top

  # Export all departments to CSV
  lensctl export --format csv --out report.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		// Show help by default
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "generator seed (0 = time-based)")
	rootCmd.PersistentFlags().IntVar(&depts, "departments", 0, "department count (0 = default)")
}

// GetOutput returns the output format.
func GetOutput() string {
	return output
}

// PrintError prints an error message and exits if fatal is true.
func PrintError(msg string, fatal bool) {
	fmt.Fprintln(os.Stderr, "Error:", msg)
	if fatal {
		os.Exit(1)
	}
}
