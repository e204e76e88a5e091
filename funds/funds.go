// Package funds carries a static catalog of the index funds the
// optimizer knows about: broad-market stock and bond funds from the
// major low-cost providers.
package funds

import "sort"

// Fund categories. Tax-placement ranking keys off the category.
const (
	USTotalMarket          = "US Total Market"
	USLargeCap             = "US Large Cap"
	USSmallCap             = "US Small Cap"
	InternationalDeveloped = "International Developed"
	InternationalEmerging  = "International Emerging"
	USTotalBond            = "US Total Bond"
	USTreasury             = "US Treasury"
	USTIPS                 = "US TIPS"
	USCorporate            = "US Corporate"
	USHighYield            = "US High Yield"
	InternationalBond      = "International Bond"
	REITs                  = "REITs"
)

// Asset classes.
const (
	Stocks = "Stocks"
	Bonds  = "Bonds"
)

type Fund struct {
	Provider     string  `json:"provider"`
	Name         string  `json:"name"`
	Ticker       string  `json:"ticker"`
	Category     string  `json:"category"`
	ExpenseRatio float64 `json:"expense_ratio"`
	AssetClass   string  `json:"asset_class"`
}

var catalog = []Fund{
	// Vanguard
	{"Vanguard", "Vanguard Total Stock Market ETF", "VTI", USTotalMarket, 0.0003, Stocks},
	{"Vanguard", "Vanguard Total Stock Market Index Fund Admiral", "VTSAX", USTotalMarket, 0.0004, Stocks},
	{"Vanguard", "Vanguard S&P 500 ETF", "VOO", USLargeCap, 0.0003, Stocks},
	{"Vanguard", "Vanguard Total International Stock ETF", "VXUS", InternationalDeveloped, 0.0008, Stocks},
	{"Vanguard", "Vanguard Total International Stock Index Fund Admiral", "VTIAX", InternationalDeveloped, 0.0011, Stocks},
	{"Vanguard", "Vanguard FTSE Developed Markets ETF", "VEA", InternationalDeveloped, 0.0005, Stocks},
	{"Vanguard", "Vanguard FTSE Emerging Markets ETF", "VWO", InternationalEmerging, 0.0008, Stocks},
	{"Vanguard", "Vanguard Total Bond Market ETF", "BND", USTotalBond, 0.0003, Bonds},
	{"Vanguard", "Vanguard Total Bond Market Index Fund Admiral", "VBTLX", USTotalBond, 0.0005, Bonds},
	{"Vanguard", "Vanguard Intermediate-Term Treasury ETF", "VGIT", USTreasury, 0.0005, Bonds},
	{"Vanguard", "Vanguard REIT ETF", "VNQ", REITs, 0.0012, Stocks},
	{"Vanguard", "Vanguard Total World Stock ETF", "VT", USTotalMarket, 0.0007, Stocks},

	// Fidelity
	{"Fidelity", "Fidelity ZERO Total Market Index Fund", "FZROX", USTotalMarket, 0.0000, Stocks},
	{"Fidelity", "Fidelity Total Market Index Fund", "FSKAX", USTotalMarket, 0.0015, Stocks},
	{"Fidelity", "Fidelity ZERO International Index Fund", "FZILX", InternationalDeveloped, 0.0000, Stocks},
	{"Fidelity", "Fidelity Total International Index Fund", "FTIHX", InternationalDeveloped, 0.0006, Stocks},
	{"Fidelity", "Fidelity U.S. Bond Index Fund", "FXNAX", USTotalBond, 0.0025, Bonds},
	{"Fidelity", "Fidelity ZERO Large Cap Index Fund", "FNILX", USLargeCap, 0.0000, Stocks},
	{"Fidelity", "Fidelity 500 Index Fund", "FXAIX", USLargeCap, 0.0015, Stocks},
	{"Fidelity", "Fidelity Emerging Markets Index Fund", "FPADX", InternationalEmerging, 0.0012, Stocks},
	{"Fidelity", "Fidelity Real Estate Index Fund", "FSRNX", REITs, 0.0019, Stocks},

	// iShares
	{"iShares", "iShares Core S&P Total U.S. Stock Market ETF", "ITOT", USTotalMarket, 0.0003, Stocks},
	{"iShares", "iShares Core S&P 500 ETF", "IVV", USLargeCap, 0.0003, Stocks},
	{"iShares", "iShares Core MSCI Total International Stock ETF", "IXUS", InternationalDeveloped, 0.0009, Stocks},
	{"iShares", "iShares Core MSCI EAFE ETF", "IEFA", InternationalDeveloped, 0.0007, Stocks},
	{"iShares", "iShares Core MSCI Emerging Markets ETF", "IEMG", InternationalEmerging, 0.0009, Stocks},
	{"iShares", "iShares Core U.S. Aggregate Bond ETF", "AGG", USTotalBond, 0.0004, Bonds},

	// Schwab
	{"Schwab", "Schwab Total Stock Market Index Fund", "SWTSX", USTotalMarket, 0.0003, Stocks},
	{"Schwab", "Schwab S&P 500 Index Fund", "SWPPX", USLargeCap, 0.0002, Stocks},
	{"Schwab", "Schwab International Index Fund", "SWISX", InternationalDeveloped, 0.0006, Stocks},
	{"Schwab", "Schwab Emerging Markets Equity ETF", "SCHE", InternationalEmerging, 0.0011, Stocks},
	{"Schwab", "Schwab U.S. Aggregate Bond Index Fund", "SWAGX", USTotalBond, 0.0004, Bonds},
	{"Schwab", "Schwab U.S. REIT ETF", "SCHH", REITs, 0.0007, Stocks},
}

// All returns a copy of the catalog.
func All() []Fund {
	return append([]Fund(nil), catalog...)
}

// ByTicker looks up a single fund.
func ByTicker(ticker string) (Fund, bool) {
	for _, f := range catalog {
		if f.Ticker == ticker {
			return f, true
		}
	}
	return Fund{}, false
}

// ByCategory returns the funds in one category sorted by expense ratio,
// cheapest first. Ties keep catalog order.
func ByCategory(category string) []Fund {
	var out []Fund
	for _, f := range catalog {
		if f.Category == category {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpenseRatio < out[j].ExpenseRatio
	})
	return out
}

// Categories lists the distinct categories present in the catalog, in
// first-seen order.
func Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range catalog {
		if !seen[f.Category] {
			seen[f.Category] = true
			out = append(out, f.Category)
		}
	}
	return out
}
