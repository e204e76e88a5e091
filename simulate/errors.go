package simulate

import "errors"

// Sentinel errors returned by Engine.Run. All validation errors are
// raised before any trial executes; a run never returns a partial
// summary alongside an error.
var (
	// ErrInvalidAssumption marks malformed or out-of-range financial inputs.
	ErrInvalidAssumption = errors.New("simulate: invalid assumption")

	// ErrInvalidTrialCount marks a non-positive or excessively large trial count.
	ErrInvalidTrialCount = errors.New("simulate: invalid trial count")

	// ErrCancelled is returned when the run's context is cancelled
	// mid-simulation. Partial results are discarded.
	ErrCancelled = errors.New("simulate: run cancelled")

	// ErrUnstable is returned when too many trials produced non-finite
	// balances, which indicates a modeling problem rather than variance.
	ErrUnstable = errors.New("simulate: unstable return model")
)
