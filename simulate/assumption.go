package simulate

import (
	"fmt"
	"math"
)

// MaxHorizonYears caps the investment horizon accepted by Validate.
const MaxHorizonYears = 100

// WithdrawalPhase models an optional drawdown stage: a fixed annual
// withdrawal starting in a given simulation year (1-based).
type WithdrawalPhase struct {
	Annual    float64 `json:"annual" yaml:"annual"`
	StartYear int     `json:"start_year" yaml:"start_year"`
}

// Assumption is the immutable input to a simulation run. Rates are
// expressed as decimals (0.07 means 7% per year). The engine never
// mutates an Assumption; callers can reuse one across runs.
type Assumption struct {
	StartingBalance    float64          `json:"starting_balance" yaml:"starting_balance"`
	AnnualContribution float64          `json:"annual_contribution" yaml:"annual_contribution"`
	ContributionGrowth float64          `json:"contribution_growth" yaml:"contribution_growth"`
	HorizonYears       int              `json:"horizon_years" yaml:"horizon_years"`
	MeanReturn         float64          `json:"mean_return" yaml:"mean_return"`
	Volatility         float64          `json:"volatility" yaml:"volatility"`
	Withdrawal         *WithdrawalPhase `json:"withdrawal,omitempty" yaml:"withdrawal,omitempty"`
}

// Validate checks the assumption invariants. Violations are reported
// as ErrInvalidAssumption with a detail message.
func (a Assumption) Validate() error {
	if a.HorizonYears < 1 || a.HorizonYears > MaxHorizonYears {
		return fmt.Errorf("%w: horizon_years must be between 1 and %d, got %d",
			ErrInvalidAssumption, MaxHorizonYears, a.HorizonYears)
	}
	if a.StartingBalance < 0 || !isFinite(a.StartingBalance) {
		return fmt.Errorf("%w: starting_balance must be a non-negative amount, got %v",
			ErrInvalidAssumption, a.StartingBalance)
	}
	if a.Volatility < 0 || a.Volatility > 1 {
		return fmt.Errorf("%w: volatility must be between 0 and 1, got %v",
			ErrInvalidAssumption, a.Volatility)
	}
	if !isFinite(a.MeanReturn) || a.MeanReturn <= -1 {
		return fmt.Errorf("%w: mean_return must be a finite rate above -100%%, got %v",
			ErrInvalidAssumption, a.MeanReturn)
	}
	if a.AnnualContribution < 0 || !isFinite(a.AnnualContribution) {
		return fmt.Errorf("%w: annual_contribution must be non-negative, got %v",
			ErrInvalidAssumption, a.AnnualContribution)
	}
	if !isFinite(a.ContributionGrowth) || a.ContributionGrowth <= -1 {
		return fmt.Errorf("%w: contribution_growth must be a finite rate above -100%%, got %v",
			ErrInvalidAssumption, a.ContributionGrowth)
	}
	if w := a.Withdrawal; w != nil {
		if w.Annual < 0 || !isFinite(w.Annual) {
			return fmt.Errorf("%w: withdrawal.annual must be non-negative, got %v",
				ErrInvalidAssumption, w.Annual)
		}
		if w.StartYear < 1 {
			return fmt.Errorf("%w: withdrawal.start_year must be at least 1, got %d",
				ErrInvalidAssumption, w.StartYear)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
