package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/openfreight/loadplan/core/model"
)

// ErrPlanInvalid reports a plan that violates the coverage or duration
// invariants. Plans built by this package never trip it; seeing the error
// means a construction bug upstream.
var ErrPlanInvalid = errors.New("invalid plan")

// durationEpsilon absorbs float accumulation differences when re-deriving a
// route duration from coordinates.
const durationEpsilon = 1e-6

// Cost returns the plan cost under the problem's driver fee.
func Cost(p *model.Problem, plan model.Plan) float64 {
	return plan.Cost(p.DriverCost())
}

// Validate checks that the plan serves every problem load exactly once, that
// no route exceeds the duration limit, and that each recorded duration
// matches the one re-derived from the coordinates.
func Validate(p *model.Problem, plan model.Plan) error {
	seen := make([]bool, p.Len())
	total := 0
	for ri, r := range plan.Routes {
		if len(r.LoadIDs) == 0 {
			return fmt.Errorf("route %d is empty: %w", ri, ErrPlanInvalid)
		}
		if r.Duration > p.MaxDuration()+durationEpsilon {
			return fmt.Errorf("route %d duration %.3f exceeds limit %.3f: %w",
				ri, r.Duration, p.MaxDuration(), ErrPlanInvalid)
		}
		it, err := p.Itinerary(r)
		if err != nil {
			return fmt.Errorf("route %d: %v: %w", ri, err, ErrPlanInvalid)
		}
		if math.Abs(it.ReturnETA-r.Duration) > durationEpsilon {
			return fmt.Errorf("route %d duration %.6f does not match legs %.6f: %w",
				ri, r.Duration, it.ReturnETA, ErrPlanInvalid)
		}
		for _, id := range r.LoadIDs {
			i, _ := p.IndexOf(id)
			if seen[i] {
				return fmt.Errorf("load %d served twice: %w", id, ErrPlanInvalid)
			}
			seen[i] = true
			total++
		}
	}
	if total != p.Len() {
		return fmt.Errorf("plan serves %d of %d loads: %w", total, p.Len(), ErrPlanInvalid)
	}
	return nil
}
