package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bogleworks/boglesim/funds"
)

var fundsCmd = &cobra.Command{
	Use:   "funds",
	Short: "List the index fund catalog",
	Long: `Funds lists the low-cost index funds the optimizer knows about. With
--category it lists only that category, cheapest expense ratio first.

Example:
  boglesim funds --category "US Total Market"`,
	RunE: runFunds,
}

var fundsCategory string

func init() {
	rootCmd.AddCommand(fundsCmd)

	fundsCmd.Flags().StringVarP(&fundsCategory, "category", "c", "", "filter to one fund category")
}

func runFunds(cmd *cobra.Command, args []string) error {
	list := funds.All()
	if fundsCategory != "" {
		list = funds.ByCategory(fundsCategory)
		if len(list) == 0 {
			return fmt.Errorf("no funds in category %q (known: %v)", fundsCategory, funds.Categories())
		}
	}

	fmt.Printf("%-7s  %-10s  %-25s  %8s  %s\n", "Ticker", "Provider", "Category", "ER", "Name")
	for _, f := range list {
		fmt.Printf("%-7s  %-10s  %-25s  %7.4f%%  %s\n",
			f.Ticker, f.Provider, f.Category, f.ExpenseRatio*100, f.Name)
	}
	return nil
}
