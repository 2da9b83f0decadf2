package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swarm",
	Short: "Concurrent task decomposition and execution",
	Long: `Swarm classifies a development task, decomposes complex tasks into
typed work units, schedules dependency-respecting phases, and executes
each phase concurrently against the Anthropic API.

Simple tasks are reported as such so they can be handled directly by a
single worker. Complex tasks produce an execution plan of research,
analysis, implementation, and validation units, run phase by phase, and
finish with a scored report of outcomes and recommendations.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
