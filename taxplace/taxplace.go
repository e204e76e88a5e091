// Package taxplace recommends which account each fund should live in.
// Bond funds throw off ordinary income and belong in tax-advantaged
// accounts; broad stock index funds are tax-efficient enough for
// taxable space. The greedy rule: place the most tax-inefficient fund
// dollars into the most tax-advantaged accounts first.
package taxplace

import (
	"fmt"
	"math"
	"sort"

	"github.com/bogleworks/boglesim/funds"
	"github.com/bogleworks/boglesim/portfolio"
)

// categoryInefficiency ranks fund categories; higher means more
// tax-inefficient.
var categoryInefficiency = map[string]int{
	funds.USTotalMarket:          3,
	funds.USLargeCap:             3,
	funds.USSmallCap:             4,
	funds.InternationalDeveloped: 4,
	funds.InternationalEmerging:  5,
	funds.USTotalBond:            5,
	funds.USTreasury:             6,
	funds.USTIPS:                 6,
	funds.USCorporate:            7,
	funds.USHighYield:            7,
	funds.InternationalBond:      6,
	funds.REITs:                  7,
}

// accountAdvantage ranks accounts; higher means more tax-advantaged.
var accountAdvantage = map[string]int{
	portfolio.Account401k:    5,
	portfolio.AccountIRA:     5,
	portfolio.AccountHSA:     6,
	portfolio.AccountTaxable: 1,
}

const defaultInefficiency = 3

// FundInefficiency returns the tax-inefficiency rank for a fund ticker,
// falling back to the default when the fund or its category is unknown.
func FundInefficiency(ticker string) int {
	f, ok := funds.ByTicker(ticker)
	if !ok {
		return defaultInefficiency
	}
	rank, ok := categoryInefficiency[f.Category]
	if !ok {
		return defaultInefficiency
	}
	return rank
}

// Placement assigns part of one fund's dollars to one account.
type Placement struct {
	Ticker       string  `json:"ticker"`
	FundType     string  `json:"fund_type"`
	Account      string  `json:"account"`
	Amount       float64 `json:"amount"`
	PortfolioPct float64 `json:"portfolio_pct"`
}

type pendingFund struct {
	ticker    string
	fundType  string
	remaining float64
	rank      int
}

type pendingAccount struct {
	name      string
	remaining float64
	rank      int
}

// Recommend produces a placement plan for the portfolio's three funds
// across its accounts. The output order follows the greedy assignment:
// most tax-inefficient fund into most tax-advantaged account first.
func Recommend(p portfolio.Portfolio) ([]Placement, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	total := p.InitialInvestment()
	if total <= 0 {
		return nil, fmt.Errorf("portfolio has no account value to place")
	}

	pending := []pendingFund{
		{p.Funds.USStock, "US Stocks", p.Allocation.USStock * total / 100, FundInefficiency(p.Funds.USStock)},
		{p.Funds.International, "International Stocks", p.Allocation.International * total / 100, FundInefficiency(p.Funds.International)},
		{p.Funds.Bond, "Bonds", p.Allocation.Bond * total / 100, FundInefficiency(p.Funds.Bond)},
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].rank > pending[j].rank
	})

	var accounts []pendingAccount
	for name, value := range p.AccountValues {
		rank, ok := accountAdvantage[name]
		if !ok {
			rank = 1
		}
		accounts = append(accounts, pendingAccount{name, value, rank})
	}
	// Name is the tie-break so the plan is stable across runs.
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].rank != accounts[j].rank {
			return accounts[i].rank > accounts[j].rank
		}
		return accounts[i].name < accounts[j].name
	})

	var plan []Placement
	for len(pending) > 0 && len(accounts) > 0 {
		f := &pending[0]
		acct := &accounts[0]

		amount := math.Min(f.remaining, acct.remaining)
		if amount > 0 {
			plan = append(plan, Placement{
				Ticker:       f.ticker,
				FundType:     f.fundType,
				Account:      acct.name,
				Amount:       amount,
				PortfolioPct: math.Round(amount/total*100*100) / 100,
			})
		}

		f.remaining -= amount
		acct.remaining -= amount
		if f.remaining <= 0 {
			pending = pending[1:]
		}
		if acct.remaining <= 0 {
			accounts = accounts[1:]
		}
	}
	return plan, nil
}

// Principle is one item of the educational placement guidance shown
// alongside a recommendation.
type Principle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Principles returns the placement guidance, in presentation order.
func Principles() []Principle {
	return []Principle{
		{
			Title:       "Bonds in Tax-Advantaged Accounts",
			Description: "Bond funds generate income that is taxed at ordinary income rates. Place bond funds in tax-advantaged accounts like 401(k)s or IRAs to shield this income from taxes.",
		},
		{
			Title:       "International Stocks in Taxable Accounts",
			Description: "International funds may benefit from foreign tax credits, which are only available in taxable accounts. However, consider placing high-yielding international funds in tax-advantaged accounts.",
		},
		{
			Title:       "Total US Stock Market Funds in Taxable Accounts",
			Description: "Total market index funds are relatively tax-efficient due to low turnover and qualified dividend treatment. These can be good candidates for taxable accounts.",
		},
		{
			Title:       "HSA Optimization",
			Description: "Health Savings Accounts (HSAs) offer triple tax advantages (tax-deductible contributions, tax-free growth, and tax-free withdrawals for medical expenses). Prioritize these for your most tax-inefficient funds.",
		},
		{
			Title:       "Asset Location Hierarchy",
			Description: "From most to least tax-efficient: HSA > Roth IRA > Traditional IRA/401(k) > Taxable accounts. Allocate funds according to their tax efficiency and this hierarchy.",
		},
	}
}
