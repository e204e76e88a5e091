package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bogleworks/boglesim/portfolio"
	"github.com/bogleworks/boglesim/simulate"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSummary(t *testing.T, a simulate.Assumption) *simulate.Summary {
	t.Helper()
	e := &simulate.Engine{}
	seed := int64(1)
	sum, err := e.Run(context.Background(), a, 50, &seed)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return sum
}

func TestPortfolioRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	p := portfolio.Default()
	p.Name = "Retirement 2055"

	pid, err := s.SavePortfolio(p)
	assert.NoError(t, err)
	assert.NotEmpty(t, pid)

	got, err := s.GetPortfolio(pid)
	assert.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSavePortfolioRejectsInvalid(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	p := portfolio.Default()
	p.Allocation.Bond = 99 // no longer sums to 100

	_, err := s.SavePortfolio(p)
	assert.Error(t, err)
}

func TestGetPortfolioNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.GetPortfolio("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPortfolios(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	infos, err := s.ListPortfolios()
	assert.NoError(t, err)
	assert.Empty(t, infos)

	p := portfolio.Default()
	var ids []string
	for _, name := range []string{"Aggressive", "Balanced", "Conservative"} {
		p.Name = name
		pid, err := s.SavePortfolio(p)
		assert.NoError(t, err)
		ids = append(ids, pid)
	}

	infos, err = s.ListPortfolios()
	assert.NoError(t, err)
	assert.Len(t, infos, 3)
	// ULIDs are monotonic within a process, so insertion order holds.
	for i, info := range infos {
		assert.Equal(t, ids[i], info.ID)
		assert.False(t, info.CreatedAt.IsZero())
		assert.False(t, info.UpdatedAt.IsZero())
	}
	assert.Equal(t, "Aggressive", infos[0].Name)
}

func TestDeletePortfolio(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	pid, err := s.SavePortfolio(portfolio.Default())
	assert.NoError(t, err)

	assert.NoError(t, s.DeletePortfolio(pid))

	_, err = s.GetPortfolio(pid)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.DeletePortfolio(pid)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	a := simulate.Assumption{
		StartingBalance:    100_000,
		AnnualContribution: 12_000,
		HorizonYears:       10,
		MeanReturn:         0.07,
		Volatility:         0.15,
		Withdrawal:         &simulate.WithdrawalPhase{Annual: 40_000, StartYear: 8},
	}
	sum := testSummary(t, a)

	rid, err := s.SaveRun(a, sum)
	assert.NoError(t, err)
	assert.NotEmpty(t, rid)

	rec, err := s.GetRun(rid)
	assert.NoError(t, err)
	assert.Equal(t, rid, rec.ID)
	assert.Equal(t, a, rec.Assumption)
	assert.Equal(t, *sum, rec.Summary)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.GetRun("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRunsNewestFirst(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	a := simulate.Assumption{
		StartingBalance: 50_000,
		HorizonYears:    5,
		MeanReturn:      0.06,
		Volatility:      0.12,
	}
	sum := testSummary(t, a)

	var ids []string
	for i := 0; i < 4; i++ {
		rid, err := s.SaveRun(a, sum)
		assert.NoError(t, err)
		ids = append(ids, rid)
	}

	infos, err := s.ListRuns(0)
	assert.NoError(t, err)
	assert.Len(t, infos, 4)
	for i, info := range infos {
		assert.Equal(t, ids[len(ids)-1-i], info.ID)
		assert.Equal(t, sum.Trials, info.Trials)
		assert.Equal(t, a.HorizonYears, info.Horizon)
	}

	limited, err := s.ListRuns(2)
	assert.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, ids[3], limited[0].ID)
}
