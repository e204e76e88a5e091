package taxplace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bogleworks/boglesim/portfolio"
)

func TestFundInefficiency(t *testing.T) {
	t.Parallel()

	// Bonds rank above broad stock indexes.
	assert.Greater(t, FundInefficiency("BND"), FundInefficiency("VTI"))
	assert.Greater(t, FundInefficiency("VXUS"), FundInefficiency("VTI"))

	// Unknown tickers fall back to the default rank.
	assert.Equal(t, defaultInefficiency, FundInefficiency("NOPE"))
}

func TestRecommendDefaultPortfolio(t *testing.T) {
	t.Parallel()

	p := portfolio.Default()
	plan, err := Recommend(p)
	assert.NoError(t, err)

	// 200k total: BND 20k -> HSA, VXUS 60k -> 401k, VTI 120k spills
	// from the 401k remainder into the IRA and then Taxable.
	want := []Placement{
		{Ticker: "BND", FundType: "Bonds", Account: portfolio.AccountHSA, Amount: 20_000, PortfolioPct: 10},
		{Ticker: "VXUS", FundType: "International Stocks", Account: portfolio.Account401k, Amount: 60_000, PortfolioPct: 30},
		{Ticker: "VTI", FundType: "US Stocks", Account: portfolio.Account401k, Amount: 40_000, PortfolioPct: 20},
		{Ticker: "VTI", FundType: "US Stocks", Account: portfolio.AccountIRA, Amount: 50_000, PortfolioPct: 25},
		{Ticker: "VTI", FundType: "US Stocks", Account: portfolio.AccountTaxable, Amount: 30_000, PortfolioPct: 15},
	}
	assert.Equal(t, want, plan)
}

func TestRecommendPlacesEveryDollar(t *testing.T) {
	t.Parallel()

	p := portfolio.Default()
	plan, err := Recommend(p)
	assert.NoError(t, err)

	placed := 0.0
	pct := 0.0
	for _, pl := range plan {
		placed += pl.Amount
		pct += pl.PortfolioPct
	}
	assert.InDelta(t, p.InitialInvestment(), placed, 1e-6)
	assert.InDelta(t, 100, pct, 0.05)
}

func TestRecommendStableAcrossRuns(t *testing.T) {
	t.Parallel()

	p := portfolio.Default()
	first, err := Recommend(p)
	assert.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Recommend(p)
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRecommendSingleAccount(t *testing.T) {
	t.Parallel()

	p := portfolio.Default()
	p.AccountValues = map[string]float64{portfolio.AccountTaxable: 90_000}

	plan, err := Recommend(p)
	assert.NoError(t, err)
	assert.Len(t, plan, 3)
	for _, pl := range plan {
		assert.Equal(t, portfolio.AccountTaxable, pl.Account)
	}
	// Most inefficient first even with nowhere better to put it.
	assert.Equal(t, "BND", plan[0].Ticker)
}

func TestRecommendSkipsZeroSlices(t *testing.T) {
	t.Parallel()

	p := portfolio.Default()
	p.Allocation = portfolio.Allocation{USStock: 100}

	plan, err := Recommend(p)
	assert.NoError(t, err)
	for _, pl := range plan {
		assert.Equal(t, "VTI", pl.Ticker)
		assert.Greater(t, pl.Amount, 0.0)
	}
}

func TestRecommendRequiresValue(t *testing.T) {
	t.Parallel()

	p := portfolio.Default()
	p.AccountValues = map[string]float64{}
	_, err := Recommend(p)
	assert.Error(t, err)
}

func TestPrinciples(t *testing.T) {
	t.Parallel()

	ps := Principles()
	assert.Len(t, ps, 5)
	for _, p := range ps {
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Description)
	}
	assert.Equal(t, "Bonds in Tax-Advantaged Accounts", ps[0].Title)
}
