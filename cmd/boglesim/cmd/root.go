package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "boglesim",
	Short: "A Boglehead portfolio optimizer and retirement simulator",
	Long: `Boglesim models passive three-fund index portfolios in Go.

It provides tools for:
  - Monte Carlo retirement projections with percentile bands
  - Deterministic compound-growth projections
  - Expense-ratio comparison across low-cost index funds
  - Tax-efficient fund placement across account types
  - Saving portfolios and simulation runs to SQLite
  - Serving the whole toolkit as a JSON API`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
