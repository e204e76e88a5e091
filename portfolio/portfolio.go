// Package portfolio models a three-fund passive portfolio: allocation
// percentages across US stocks, international stocks, and bonds, the
// chosen fund for each slice, and the accounts the money lives in.
package portfolio

import (
	"fmt"
	"math"

	"github.com/bogleworks/boglesim/funds"
)

// Account names recognized by the tax-placement rules.
const (
	Account401k    = "401k"
	AccountIRA     = "IRA"
	AccountHSA     = "HSA"
	AccountTaxable = "Taxable"
)

// Allocation holds percentage weights (0-100) per asset slice.
type Allocation struct {
	USStock       float64 `json:"us_stock" yaml:"us_stock"`
	International float64 `json:"international" yaml:"international"`
	Bond          float64 `json:"bond" yaml:"bond"`
}

// Total returns the sum of the three weights.
func (a Allocation) Total() float64 {
	return a.USStock + a.International + a.Bond
}

// Selection names the fund ticker backing each allocation slice.
type Selection struct {
	USStock       string `json:"us_stock" yaml:"us_stock"`
	International string `json:"international" yaml:"international"`
	Bond          string `json:"bond" yaml:"bond"`
}

// Portfolio is a user's full plan: weights, fund picks, account
// balances, contribution schedule, and per-slice return expectations
// (as percentages, e.g. 7.0 for 7% per year).
type Portfolio struct {
	Name                string             `json:"name" yaml:"name"`
	Allocation          Allocation         `json:"allocation" yaml:"allocation"`
	Funds               Selection          `json:"funds" yaml:"funds"`
	AccountValues       map[string]float64 `json:"account_values" yaml:"account_values"`
	MonthlyContribution float64            `json:"monthly_contribution" yaml:"monthly_contribution"`
	YearsToGrow         int                `json:"years_to_grow" yaml:"years_to_grow"`
	ExpectedReturnUS    float64            `json:"expected_return_us" yaml:"expected_return_us"`
	ExpectedReturnIntl  float64            `json:"expected_return_intl" yaml:"expected_return_intl"`
	ExpectedReturnBond  float64            `json:"expected_return_bond" yaml:"expected_return_bond"`
}

// Default returns the classic 60/30/10 three-fund starting point.
func Default() Portfolio {
	return Portfolio{
		Name:       "My Portfolio",
		Allocation: Allocation{USStock: 60, International: 30, Bond: 10},
		Funds:      Selection{USStock: "VTI", International: "VXUS", Bond: "BND"},
		AccountValues: map[string]float64{
			Account401k:    100000,
			AccountIRA:     50000,
			AccountHSA:     20000,
			AccountTaxable: 30000,
		},
		MonthlyContribution: 1000,
		YearsToGrow:         30,
		ExpectedReturnUS:    7.0,
		ExpectedReturnIntl:  6.5,
		ExpectedReturnBond:  3.0,
	}
}

// InitialInvestment is the sum of all account values.
func (p Portfolio) InitialInvestment() float64 {
	total := 0.0
	for _, v := range p.AccountValues {
		total += v
	}
	return total
}

// WeightedReturn is the allocation-weighted expected annual return, as
// a percentage.
func (p Portfolio) WeightedReturn() float64 {
	return p.Allocation.USStock/100*p.ExpectedReturnUS +
		p.Allocation.International/100*p.ExpectedReturnIntl +
		p.Allocation.Bond/100*p.ExpectedReturnBond
}

// WeightedExpenseRatio is the allocation-weighted expense ratio of the
// selected funds, as a decimal (0.0005 = 5 basis points).
func (p Portfolio) WeightedExpenseRatio() (float64, error) {
	us, ok := funds.ByTicker(p.Funds.USStock)
	if !ok {
		return 0, fmt.Errorf("unknown US stock fund %q", p.Funds.USStock)
	}
	intl, ok := funds.ByTicker(p.Funds.International)
	if !ok {
		return 0, fmt.Errorf("unknown international fund %q", p.Funds.International)
	}
	bond, ok := funds.ByTicker(p.Funds.Bond)
	if !ok {
		return 0, fmt.Errorf("unknown bond fund %q", p.Funds.Bond)
	}

	return p.Allocation.USStock/100*us.ExpenseRatio +
		p.Allocation.International/100*intl.ExpenseRatio +
		p.Allocation.Bond/100*bond.ExpenseRatio, nil
}

// Validate checks the plan is internally consistent: weights sum to
// 100, funds are known, amounts are non-negative.
func (p Portfolio) Validate() error {
	if p.Allocation.USStock < 0 || p.Allocation.International < 0 || p.Allocation.Bond < 0 {
		return fmt.Errorf("allocation weights must be non-negative")
	}
	if math.Abs(p.Allocation.Total()-100) > 0.01 {
		return fmt.Errorf("allocation must total 100%%, got %.2f%%", p.Allocation.Total())
	}
	if p.MonthlyContribution < 0 {
		return fmt.Errorf("monthly_contribution must be non-negative, got %v", p.MonthlyContribution)
	}
	if p.YearsToGrow < 1 {
		return fmt.Errorf("years_to_grow must be positive, got %d", p.YearsToGrow)
	}
	for name, v := range p.AccountValues {
		if v < 0 {
			return fmt.Errorf("account %q has negative value %v", name, v)
		}
	}
	if _, err := p.WeightedExpenseRatio(); err != nil {
		return err
	}
	return nil
}
