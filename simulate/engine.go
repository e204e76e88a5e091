package simulate

import (
	"context"
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultMaxTrials caps the trial count accepted by Run. Anything above
// this is treated as a caller mistake rather than a workload.
const DefaultMaxTrials = 1_000_000

// Engine runs Monte Carlo retirement projections. The zero value is
// ready to use: Normal returns, DefaultPercentiles, one worker per CPU.
//
// Run is a pure function of (assumption, trials, seed); the engine
// holds no mutable state and a single Engine is safe for concurrent use.
type Engine struct {
	// Model draws one annual return per simulated year. Nil means Normal.
	Model ReturnModel

	// Workers is the number of goroutines simulating trials.
	// Zero or negative means GOMAXPROCS.
	Workers int

	// Percentiles are the ranks reported per year (0-100).
	// Nil means DefaultPercentiles.
	Percentiles []float64

	// MaxTrials overrides DefaultMaxTrials when positive.
	MaxTrials int
}

// Run simulates trials independent future paths of portfolio value and
// aggregates them into a Summary.
//
// With an explicit seed, two runs with identical inputs produce
// bit-for-bit identical summaries regardless of worker count: every
// trial owns a generator seeded from (seed, trial index). With a nil
// seed each run draws a fresh seed, recorded in Summary.Seed so the
// run can be reproduced.
//
// The context is checked between trials; cancellation discards all
// partial results and returns ErrCancelled.
func (e *Engine) Run(ctx context.Context, a Assumption, trials int, seed *int64) (*Summary, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	maxTrials := e.MaxTrials
	if maxTrials <= 0 {
		maxTrials = DefaultMaxTrials
	}
	if trials < 1 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidTrialCount, trials)
	}
	if trials > maxTrials {
		return nil, fmt.Errorf("%w: trials must not exceed %d, got %d", ErrInvalidTrialCount, maxTrials, trials)
	}

	percs := e.Percentiles
	if percs == nil {
		percs = DefaultPercentiles
	}
	for _, p := range percs {
		if p < 0 || p > 100 {
			return nil, fmt.Errorf("%w: percentile rank %v out of range [0,100]", ErrInvalidAssumption, p)
		}
	}

	model := e.Model
	if model == nil {
		model = Normal{}
	}

	runSeed := freshSeed()
	if seed != nil {
		runSeed = *seed
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > trials {
		workers = trials
	}

	// Each worker writes only the rows it claimed, so no locking is
	// needed; the WaitGroup is the single synchronization point.
	paths := make([]trialPath, trials)
	var next atomic.Int64
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= trials || ctx.Err() != nil {
					return
				}
				rng := rand.New(rand.NewSource(trialSeed(runSeed, i)))
				paths[i] = simulateTrial(a, model, rng)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	return aggregate(a, paths, percs, runSeed)
}

// simulateTrial walks one path over the horizon. Year order: add the
// (possibly grown) contribution, compound by the drawn return, then
// subtract any scheduled withdrawal. A balance driven to or below zero
// is clamped and the trial stays depleted for all later years.
func simulateTrial(a Assumption, model ReturnModel, rng *rand.Rand) trialPath {
	p := trialPath{values: make([]float64, a.HorizonYears)}

	balance := a.StartingBalance
	contribution := a.AnnualContribution

	for y := 1; y <= a.HorizonYears; y++ {
		if p.depletedYear != 0 {
			// Depleted trials hold at zero; they do not recover.
			continue
		}

		balance += contribution
		balance *= 1 + model.Draw(rng, a.MeanReturn, a.Volatility)
		if w := a.Withdrawal; w != nil && y >= w.StartYear {
			balance -= w.Annual
		}

		if math.IsNaN(balance) || math.IsInf(balance, 0) {
			p.failed = true
			return p
		}
		if balance <= 0 {
			balance = 0
			p.depletedYear = y
		}
		p.values[y-1] = balance

		contribution *= 1 + a.ContributionGrowth
	}
	return p
}

// trialSeed derives a generator seed for one trial from the run seed,
// using a SplitMix64-style finalizer so neighboring trial indexes do
// not produce correlated streams.
func trialSeed(runSeed int64, trial int) int64 {
	z := uint64(runSeed) + uint64(trial+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z)
}

func freshSeed() int64 {
	var seed int64
	if err := binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed); err != nil || seed == 0 {
		seed = time.Now().UnixNano()
	}
	return seed
}
