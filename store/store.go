// Package store persists portfolios and simulation runs. The engine
// itself persists nothing; callers hand the store a finished
// (Assumption, Summary) pair and get back an opaque identifier.
package store

import (
	"errors"
	"time"

	"github.com/bogleworks/boglesim/portfolio"
	"github.com/bogleworks/boglesim/simulate"
)

// ErrNotFound marks lookups of identifiers that are not in the store.
var ErrNotFound = errors.New("store: not found")

// PortfolioInfo is the listing row for a saved portfolio.
type PortfolioInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RunInfo is the listing row for a saved simulation run.
type RunInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Trials    int       `json:"trials"`
	Horizon   int       `json:"horizon"`
}

// RunRecord is a saved run: the immutable configuration paired with
// its output.
type RunRecord struct {
	ID         string              `json:"id"`
	CreatedAt  time.Time           `json:"created_at"`
	Assumption simulate.Assumption `json:"assumption"`
	Summary    simulate.Summary    `json:"summary"`
}

// Store is the persistence boundary used by the server and CLI.
type Store interface {
	SavePortfolio(p portfolio.Portfolio) (string, error)
	GetPortfolio(id string) (portfolio.Portfolio, error)
	ListPortfolios() ([]PortfolioInfo, error)
	DeletePortfolio(id string) error

	SaveRun(a simulate.Assumption, s *simulate.Summary) (string, error)
	GetRun(id string) (RunRecord, error)
	ListRuns(limit int) ([]RunInfo, error)

	Close() error
}
