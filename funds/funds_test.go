package funds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByTicker(t *testing.T) {
	t.Parallel()

	f, ok := ByTicker("VTI")
	assert.True(t, ok)
	assert.Equal(t, "Vanguard", f.Provider)
	assert.Equal(t, USTotalMarket, f.Category)
	assert.Equal(t, Stocks, f.AssetClass)
	assert.Equal(t, 0.0003, f.ExpenseRatio)

	_, ok = ByTicker("NOPE")
	assert.False(t, ok)
}

func TestByCategorySortedByExpenseRatio(t *testing.T) {
	t.Parallel()

	got := ByCategory(USTotalMarket)
	assert.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].ExpenseRatio, got[i].ExpenseRatio)
		assert.Equal(t, USTotalMarket, got[i].Category)
	}
	// FZROX has a zero expense ratio, so it leads the category.
	assert.Equal(t, "FZROX", got[0].Ticker)

	assert.Empty(t, ByCategory("Crypto"))
}

func TestCategoriesCoverCatalog(t *testing.T) {
	t.Parallel()

	cats := Categories()
	assert.Contains(t, cats, USTotalMarket)
	assert.Contains(t, cats, USTotalBond)
	assert.Contains(t, cats, InternationalDeveloped)
	assert.Contains(t, cats, REITs)

	seen := map[string]bool{}
	for _, c := range cats {
		assert.False(t, seen[c], "duplicate category %q", c)
		seen[c] = true
	}
	for _, f := range All() {
		assert.True(t, seen[f.Category], "fund %s has unlisted category %q", f.Ticker, f.Category)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	t.Parallel()

	a := All()
	a[0].Ticker = "HACKED"

	b := All()
	assert.NotEqual(t, "HACKED", b[0].Ticker)
}

func TestCatalogTickersUnique(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, f := range All() {
		assert.False(t, seen[f.Ticker], "duplicate ticker %s", f.Ticker)
		seen[f.Ticker] = true
		assert.NotEmpty(t, f.Name)
		assert.NotEmpty(t, f.Provider)
		assert.GreaterOrEqual(t, f.ExpenseRatio, 0.0)
	}
}
