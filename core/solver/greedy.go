package solver

import "github.com/openfreight/loadplan/core/model"

// Greedy runs the deterministic construction pass: every neighbor scan starts
// at rank 0. Identical inputs yield identical plans.
func Greedy(p *model.Problem, nm *NeighborMap) model.Plan {
	return construct(p, nm, nil)
}

// construct opens a route at the unassigned load with the longest depot
// approach, grows it until nothing more fits, and repeats until every load is
// assigned. Far-out loads are seated first because they are the hardest to
// slot into an existing route later.
func construct(p *model.Problem, nm *NeighborMap, firstRank []int) model.Plan {
	n := p.Len()
	assigned := make([]bool, n)
	left := n
	routes := make([]model.Route, 0, 1)
	for left > 0 {
		start := pickStart(p, assigned)
		r := growRoute(p, nm, assigned, start, firstRank)
		left -= len(r.LoadIDs)
		routes = append(routes, r)
	}
	return model.Plan{Routes: routes}
}

// pickStart returns the unassigned load with the largest depot-to-pickup
// distance, breaking ties on the lower ID.
func pickStart(p *model.Problem, assigned []bool) int {
	best := -1
	for i := 0; i < p.Len(); i++ {
		if assigned[i] {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		li, lb := p.Load(i), p.Load(best)
		if li.DepotToPickup > lb.DepotToPickup ||
			(li.DepotToPickup == lb.DepotToPickup && li.ID < lb.ID) {
			best = i
		}
	}
	return best
}
