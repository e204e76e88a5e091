package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bogleworks/boglesim/portfolio"
	"github.com/bogleworks/boglesim/taxplace"
)

var taxplaceCmd = &cobra.Command{
	Use:   "taxplace",
	Short: "Recommend tax-efficient fund placement",
	Long: `Taxplace assigns each fund's dollars to accounts, most tax-inefficient
fund into the most tax-advantaged account first.

Example:
  boglesim taxplace --us 60 --intl 30 --bond 10 \
    --accounts "401k=100000,IRA=50000,HSA=20000,Taxable=30000"`,
	RunE: runTaxPlace,
}

var (
	tpUS       float64
	tpIntl     float64
	tpBond     float64
	tpUSFund   string
	tpIntlFund string
	tpBondFund string
	tpAccounts string
)

func init() {
	rootCmd.AddCommand(taxplaceCmd)

	taxplaceCmd.Flags().Float64Var(&tpUS, "us", 60, "US stock allocation percent")
	taxplaceCmd.Flags().Float64Var(&tpIntl, "intl", 30, "international stock allocation percent")
	taxplaceCmd.Flags().Float64Var(&tpBond, "bond", 10, "bond allocation percent")
	taxplaceCmd.Flags().StringVar(&tpUSFund, "us-fund", "VTI", "US stock fund ticker")
	taxplaceCmd.Flags().StringVar(&tpIntlFund, "intl-fund", "VXUS", "international fund ticker")
	taxplaceCmd.Flags().StringVar(&tpBondFund, "bond-fund", "BND", "bond fund ticker")
	taxplaceCmd.Flags().StringVar(&tpAccounts, "accounts",
		"401k=100000,IRA=50000,HSA=20000,Taxable=30000",
		"comma-separated account=value pairs")
}

func runTaxPlace(cmd *cobra.Command, args []string) error {
	accounts, err := parseAccounts(tpAccounts)
	if err != nil {
		return err
	}

	p := portfolio.Default()
	p.Allocation = portfolio.Allocation{USStock: tpUS, International: tpIntl, Bond: tpBond}
	p.Funds = portfolio.Selection{USStock: tpUSFund, International: tpIntlFund, Bond: tpBondFund}
	p.AccountValues = accounts

	plan, err := taxplace.Recommend(p)
	if err != nil {
		return err
	}

	fmt.Printf("%-7s  %-20s  %-8s  %12s  %6s\n", "Ticker", "Type", "Account", "Amount", "Pct")
	for _, pl := range plan {
		fmt.Printf("%-7s  %-20s  %-8s  %12.2f  %5.2f%%\n",
			pl.Ticker, pl.FundType, pl.Account, pl.Amount, pl.PortfolioPct)
	}

	fmt.Println("\nPlacement principles:")
	for i, pr := range taxplace.Principles() {
		fmt.Printf("  %d. %s\n", i+1, pr.Title)
	}
	return nil
}

func parseAccounts(s string) (map[string]float64, error) {
	out := map[string]float64{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad account pair %q (want name=value)", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("bad account value %q: %w", value, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no accounts given")
	}
	return out, nil
}
