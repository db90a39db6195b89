// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "contrib-report",
	Short: "A CLI tool to write a monthly contribution report for a GitHub repository.",
	Long: `contrib-report collects who authored and who reviewed pull requests in a
GitHub repository during a month, groups the merged pull requests by the tags
in their titles, and writes the result into a markdown report.`,
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
