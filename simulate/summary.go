package simulate

import (
	"fmt"
	"math"
	"sort"
)

// DefaultPercentiles is the band set requested when a caller does not
// ask for specific ranks.
var DefaultPercentiles = []float64{5, 25, 50, 75, 95}

// Safe withdrawal rates reported in the final-year income table.
var withdrawalRates = []float64{0.03, 0.035, 0.04, 0.045, 0.05}

// YearStats aggregates all trials for a single simulated year. It is
// one row of the tabular result handed to the visualization layer.
type YearStats struct {
	Year int `json:"year"`
	// Percentile is aligned index-for-index with Summary.Percentiles.
	Percentile    []float64 `json:"percentile"`
	Mean          float64   `json:"mean"`
	DepletionProb float64   `json:"depletion_prob"`
}

// TargetOdds is the fraction of trials whose final balance reached a
// target amount.
type TargetOdds struct {
	Target      float64 `json:"target"`
	Probability float64 `json:"probability"`
}

// IncomeBand reports the annual income a given safe withdrawal rate
// would produce from the final-year balance distribution.
type IncomeBand struct {
	Rate   float64 `json:"rate"`
	Low    float64 `json:"low"`
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	High   float64 `json:"high"`
}

// FinalStats summarizes the final-year balance across trials.
type FinalStats struct {
	Min     float64      `json:"min"`
	Max     float64      `json:"max"`
	Mean    float64      `json:"mean"`
	Median  float64      `json:"median"`
	Targets []TargetOdds `json:"targets"`
	Income  []IncomeBand `json:"income"`
}

// Summary is the aggregate result of a simulation run: one YearStats
// row per year of the horizon plus final-year statistics. It is a
// read-only snapshot; the engine retains no reference to it.
type Summary struct {
	Trials       int         `json:"trials"`
	FailedTrials int         `json:"failed_trials"`
	Seed         int64       `json:"seed"`
	Percentiles  []float64   `json:"percentiles"`
	Years        []YearStats `json:"years"`
	Final        FinalStats  `json:"final"`
}

// PercentileSeries returns the per-year values for one requested
// percentile rank, or false if the rank was not part of the run.
func (s *Summary) PercentileSeries(rank float64) ([]float64, bool) {
	idx := -1
	for i, p := range s.Percentiles {
		if p == rank {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(s.Years))
	for i, y := range s.Years {
		out[i] = y.Percentile[idx]
	}
	return out, true
}

// MeanSeries returns the per-year arithmetic mean balances.
func (s *Summary) MeanSeries() []float64 {
	out := make([]float64, len(s.Years))
	for i, y := range s.Years {
		out[i] = y.Mean
	}
	return out
}

// trialPath is one simulated trajectory. Only the engine sees these;
// they are discarded after aggregation.
type trialPath struct {
	values       []float64
	depletedYear int // 0 means never depleted, otherwise 1-based year
	failed       bool
}

// unstableThreshold is the failed-trial fraction above which a run is
// rejected rather than silently aggregated.
const unstableThreshold = 0.01

func aggregate(a Assumption, paths []trialPath, percs []float64, seed int64) (*Summary, error) {
	trials := len(paths)
	valid := make([]trialPath, 0, trials)
	for _, p := range paths {
		if !p.failed {
			valid = append(valid, p)
		}
	}
	failed := trials - len(valid)
	if failed > 0 && float64(failed)/float64(trials) > unstableThreshold {
		return nil, fmt.Errorf("%w: %d of %d trials produced non-finite balances",
			ErrUnstable, failed, trials)
	}

	n := len(valid)
	s := &Summary{
		Trials:       trials,
		FailedTrials: failed,
		Seed:         seed,
		Percentiles:  append([]float64(nil), percs...),
		Years:        make([]YearStats, a.HorizonYears),
	}

	column := make([]float64, n)
	for y := 0; y < a.HorizonYears; y++ {
		sum := 0.0
		depleted := 0
		for i, p := range valid {
			v := p.values[y]
			column[i] = v
			sum += v
			if p.depletedYear != 0 && p.depletedYear <= y+1 {
				depleted++
			}
		}
		sort.Float64s(column)

		ys := YearStats{
			Year:          y + 1,
			Percentile:    make([]float64, len(percs)),
			Mean:          sum / float64(n),
			DepletionProb: float64(depleted) / float64(n),
		}
		for i, p := range percs {
			ys.Percentile[i] = percentile(column, p)
		}
		s.Years[y] = ys

		if y == a.HorizonYears-1 {
			s.Final = finalStats(column, ys.Mean, a.StartingBalance)
		}
	}

	return s, nil
}

// percentile interpolates linearly between order statistics, matching
// the convention used by the charting layer (rank p on a 0..n-1 scale).
// The input must be sorted.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func finalStats(sorted []float64, mean, initial float64) FinalStats {
	n := len(sorted)
	fs := FinalStats{
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   mean,
		Median: percentile(sorted, 50),
	}

	targets := []float64{initial * 2, initial * 5, 1_000_000, 2_000_000, 5_000_000}
	for _, target := range targets {
		if target <= 0 {
			continue
		}
		reached := 0
		for _, v := range sorted {
			if v >= target {
				reached++
			}
		}
		fs.Targets = append(fs.Targets, TargetOdds{
			Target:      target,
			Probability: float64(reached) / float64(n),
		})
	}

	low := percentile(sorted, 5)
	high := percentile(sorted, 95)
	for _, rate := range withdrawalRates {
		fs.Income = append(fs.Income, IncomeBand{
			Rate:   rate,
			Low:    low * rate,
			Median: fs.Median * rate,
			Mean:   mean * rate,
			High:   high * rate,
		})
	}
	return fs
}
