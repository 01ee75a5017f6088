package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dowser",
	Short: "Iterative research engine",
	Long: `Dowser answers research questions by decomposing them into a
dependency-ordered plan of subtasks, refining each subtask until an
evaluator judges the findings satisfactory, and synthesizing the results
into a single report.

Run a question directly:
  dowser research "how do write-ahead logs recover from torn writes?"

Past sessions are recorded locally and browsable with:
  dowser history`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(researchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
