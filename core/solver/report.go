package solver

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/openfreight/loadplan/core/model"
)

// Report summarises one search run.
type Report struct {
	RunID string
	Seed  int64

	Plan model.Plan
	Cost float64

	// LowerBound and Gap relate the result to the cost relaxation; Gap is
	// (Cost-LowerBound)/LowerBound, or zero when the bound is zero.
	LowerBound float64
	Gap        float64

	Trials    int
	BestTrial int
	Elapsed   time.Duration

	// Trial cost distribution across the whole run.
	CostMean   float64
	CostStdDev float64
	CostMin    float64
	CostMax    float64
}

// newReport folds the trial outcomes into a Report.
func newReport(runID string, seed int64, best trialResult, costs []float64, lb float64, elapsed time.Duration) *Report {
	r := &Report{
		RunID:      runID,
		Seed:       seed,
		Plan:       best.plan,
		Cost:       best.cost,
		LowerBound: lb,
		Trials:     len(costs),
		BestTrial:  best.trial,
		Elapsed:    elapsed,
	}
	if lb > 0 {
		r.Gap = (best.cost - lb) / lb
	}
	if len(costs) > 0 {
		r.CostMean = stat.Mean(costs, nil)
		r.CostMin = floats.Min(costs)
		r.CostMax = floats.Max(costs)
	}
	if len(costs) > 1 {
		r.CostStdDev = stat.StdDev(costs, nil)
	}
	return r
}
