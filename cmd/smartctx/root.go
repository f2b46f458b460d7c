// Package cmd implements the smartctx CLI: a thin Cobra wrapper over the
// selection engine, useful for exercising a workspace selection from a
// shell without wiring up a full assistant.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smartctx",
	Short: "Smart context selection for local AI coding assistants",
	Long: `smartctx scores and budget-selects the files in a workspace most
relevant to a prompt, using embedding similarity where available and
falling back to TF-IDF otherwise.

Available commands:
  select      - Run a selection against a workspace and print the result
  cache clean - Evict stale entries from the embedding cache`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(cacheCmd)
}
