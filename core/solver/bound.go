package solver

import (
	"math"

	"github.com/openfreight/loadplan/core/model"
)

// LowerBound returns a provable minimum cost for the problem, used for gap
// reporting. It relaxes the routing decisions while keeping every leg class
// accounted for:
//
//   - every haul must be driven,
//   - every pickup must be approached, at best over the cheapest incoming
//     leg (the depot approach or the nearest directed neighbor),
//   - every route ends with a depot return, at best the cheapest one, and
//     pays the fixed driver fee,
//   - the route count is at least the total forced driving time divided by
//     the duration limit.
//
// The relaxation never exceeds the cost of a feasible plan.
func LowerBound(p *model.Problem) float64 {
	n := p.Len()
	var hauls, approaches float64
	minReturn := math.Inf(1)
	for i := 0; i < n; i++ {
		l := p.Load(i)
		hauls += l.PickupToDropoff
		in := l.DepotToPickup
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			if d := p.Load(j).Dropoff.Distance(l.Pickup); d < in {
				in = d
			}
		}
		approaches += in
		if l.DropoffToDepot < minReturn {
			minReturn = l.DropoffToDepot
		}
	}

	forced := hauls + approaches
	routes := math.Ceil(forced / p.MaxDuration())
	if routes < 1 {
		routes = 1
	}
	return routes*(p.DriverCost()+minReturn) + forced
}
