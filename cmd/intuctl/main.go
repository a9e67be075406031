// Package main is the entry point for the intuctl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "intuctl",
	Short: "Query the Intuition Protocol knowledge graph",
	Long: `Query the Intuition Protocol knowledge graph.
Searches atoms, resolves terms, lists claims and stake positions,
and derives trust reports from stake signals.`,
	Example: `  intuctl --search "Uniswap"
  intuctl --id 0x1234abcd
  intuctl --triples-about 0x1234abcd --limit 5
  intuctl --trust-score 0x1234abcd --format text`,
	RunE: runQuery,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
