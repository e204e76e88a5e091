// Package growth computes deterministic compound-growth projections:
// the "what if returns were exactly X% every year" counterpart to the
// Monte Carlo engine. Compounding is monthly, with the contribution
// added before each month's growth.
package growth

import (
	"fmt"
	"math"

	"github.com/bogleworks/boglesim/portfolio"
)

// Point is one month of a projection. Month 0 holds the initial
// investment. Earnings is balance minus cumulative contributions.
type Point struct {
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	Balance       float64 `json:"balance"`
	Contributions float64 `json:"contributions"`
	Earnings      float64 `json:"earnings"`
}

// Project compounds an initial amount plus monthly contributions for
// the given number of years at the given annual return percentage.
// It returns years*12+1 points, month 0 first.
func Project(initial, monthlyContribution float64, years int, annualReturnPercent float64) ([]Point, error) {
	if initial < 0 {
		return nil, fmt.Errorf("initial amount must be non-negative, got %v", initial)
	}
	if monthlyContribution < 0 {
		return nil, fmt.Errorf("monthly contribution must be non-negative, got %v", monthlyContribution)
	}
	if years < 1 {
		return nil, fmt.Errorf("years must be positive, got %d", years)
	}

	monthlyRate := math.Pow(1+annualReturnPercent/100, 1.0/12) - 1

	months := years * 12
	points := make([]Point, months+1)
	points[0] = Point{Balance: initial, Contributions: initial}

	for m := 1; m <= months; m++ {
		prev := points[m-1]
		balance := (prev.Balance + monthlyContribution) * (1 + monthlyRate)
		contributions := prev.Contributions + monthlyContribution
		points[m] = Point{
			Month:         m,
			Year:          m / 12,
			Balance:       balance,
			Contributions: contributions,
			Earnings:      balance - contributions,
		}
	}
	return points, nil
}

// Annual filters a projection down to year boundaries (month 0, 12,
// 24, ...), one row per year.
func Annual(points []Point) []Point {
	var out []Point
	for _, p := range points {
		if p.Month%12 == 0 {
			out = append(out, p)
		}
	}
	return out
}

// ComponentGrowth is one year of a portfolio projection broken out by
// asset slice.
type ComponentGrowth struct {
	Year               int     `json:"year"`
	USStocks           float64 `json:"us_stocks"`
	International      float64 `json:"international"`
	Bonds              float64 `json:"bonds"`
	TotalBalance       float64 `json:"total_balance"`
	TotalContributions float64 `json:"total_contributions"`
	TotalEarnings      float64 `json:"total_earnings"`
}

// ProjectPortfolio splits the portfolio's initial investment and
// contribution across its allocation, grows each slice at its own
// expected return, and rolls the slices up into annual rows.
func ProjectPortfolio(p portfolio.Portfolio) ([]ComponentGrowth, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	initial := p.InitialInvestment()
	slices := []struct {
		weight float64
		ret    float64
	}{
		{p.Allocation.USStock, p.ExpectedReturnUS},
		{p.Allocation.International, p.ExpectedReturnIntl},
		{p.Allocation.Bond, p.ExpectedReturnBond},
	}

	annual := make([][]Point, len(slices))
	for i, s := range slices {
		points, err := Project(
			initial*s.weight/100,
			p.MonthlyContribution*s.weight/100,
			p.YearsToGrow,
			s.ret,
		)
		if err != nil {
			return nil, err
		}
		annual[i] = Annual(points)
	}

	out := make([]ComponentGrowth, p.YearsToGrow+1)
	for y := 0; y <= p.YearsToGrow; y++ {
		row := ComponentGrowth{
			Year:          y,
			USStocks:      annual[0][y].Balance,
			International: annual[1][y].Balance,
			Bonds:         annual[2][y].Balance,
		}
		row.TotalBalance = row.USStocks + row.International + row.Bonds
		row.TotalContributions = annual[0][y].Contributions +
			annual[1][y].Contributions + annual[2][y].Contributions
		row.TotalEarnings = row.TotalBalance - row.TotalContributions
		out[y] = row
	}
	return out, nil
}

// FeeRow compares year-end balances under two expense ratios. Impact is
// the alternative balance minus the current one, i.e. what switching to
// the cheaper fund would have saved by that year.
type FeeRow struct {
	Year               int     `json:"year"`
	BalanceCurrent     float64 `json:"balance_current"`
	BalanceAlternative float64 `json:"balance_alternative"`
	Impact             float64 `json:"impact"`
}

// FeeImpact projects the same contribution plan under a gross annual
// return (percent) net of two different expense ratios (decimals, e.g.
// 0.0003). Both ratios must be below the gross return's 100% bound.
func FeeImpact(initial, monthlyContribution float64, years int, grossReturnPercent, currentRatio, alternativeRatio float64) ([]FeeRow, error) {
	if currentRatio < 0 || alternativeRatio < 0 {
		return nil, fmt.Errorf("expense ratios must be non-negative")
	}

	current, err := Project(initial, monthlyContribution, years, grossReturnPercent-currentRatio*100)
	if err != nil {
		return nil, err
	}
	alternative, err := Project(initial, monthlyContribution, years, grossReturnPercent-alternativeRatio*100)
	if err != nil {
		return nil, err
	}

	curAnnual := Annual(current)
	altAnnual := Annual(alternative)

	out := make([]FeeRow, len(curAnnual))
	for y := range curAnnual {
		out[y] = FeeRow{
			Year:               y,
			BalanceCurrent:     curAnnual[y].Balance,
			BalanceAlternative: altAnnual[y].Balance,
			Impact:             altAnnual[y].Balance - curAnnual[y].Balance,
		}
	}
	return out, nil
}
