package model

import (
	"fmt"
	"math"
)

// DefaultDriverCost is the fixed fee added to the plan cost for every route.
const DefaultDriverCost = 500.0

// Problem is an immutable solve input: the loads to serve plus the cost and
// duration constants. Build one with NewProblem. A Problem is safe for
// concurrent read access, so search trials share it without locking.
type Problem struct {
	loads []Load
	byID  map[int]int

	driverCost  float64
	maxDuration float64
}

// NewProblem validates the loads and builds a Problem using the default
// per-route driver cost. maxDuration caps each route's total duration in
// minutes.
func NewProblem(loads []Load, maxDuration float64) (*Problem, error) {
	return NewProblemWithCost(loads, maxDuration, DefaultDriverCost)
}

// NewProblemWithCost is NewProblem with a custom fixed per-route cost.
// Every load must fit on a route of its own: a load whose round trip exceeds
// maxDuration makes the whole problem infeasible.
func NewProblemWithCost(loads []Load, maxDuration, driverCost float64) (*Problem, error) {
	if len(loads) == 0 {
		return nil, ErrNoLoads
	}
	if maxDuration <= 0 || math.IsNaN(maxDuration) || math.IsInf(maxDuration, 0) {
		return nil, fmt.Errorf("max route duration must be positive, got %v", maxDuration)
	}
	if driverCost < 0 || math.IsNaN(driverCost) || math.IsInf(driverCost, 0) {
		return nil, fmt.Errorf("driver cost must be non-negative, got %v", driverCost)
	}

	p := &Problem{
		loads:       make([]Load, len(loads)),
		byID:        make(map[int]int, len(loads)),
		driverCost:  driverCost,
		maxDuration: maxDuration,
	}
	copy(p.loads, loads)
	for i := range p.loads {
		l := &p.loads[i]
		if !l.Pickup.Finite() || !l.Dropoff.Finite() {
			return nil, fmt.Errorf("load %d: non-finite coordinates: %w", l.ID, ErrInvalidLoad)
		}
		if _, dup := p.byID[l.ID]; dup {
			return nil, fmt.Errorf("load %d: duplicate id: %w", l.ID, ErrInvalidLoad)
		}
		p.byID[l.ID] = i
		l.computeLegs()
		if l.RoundTrip() > maxDuration {
			return nil, fmt.Errorf("load %d: round trip %.1f exceeds limit %.1f: %w",
				l.ID, l.RoundTrip(), maxDuration, ErrInfeasible)
		}
	}
	return p, nil
}

// Len returns the number of loads.
func (p *Problem) Len() int { return len(p.loads) }

// Load returns the load at dense index i, in input order.
func (p *Problem) Load(i int) Load { return p.loads[i] }

// Loads returns all loads in input order. Callers must not modify the slice.
func (p *Problem) Loads() []Load { return p.loads }

// IndexOf returns the dense index for a load ID.
func (p *Problem) IndexOf(id int) (int, bool) {
	i, ok := p.byID[id]
	return i, ok
}

// DriverCost returns the fixed fee charged per route.
func (p *Problem) DriverCost() float64 { return p.driverCost }

// MaxDuration returns the per-route duration limit in minutes.
func (p *Problem) MaxDuration() float64 { return p.maxDuration }
