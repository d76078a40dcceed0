package solver

import "github.com/openfreight/loadplan/core/model"

// openRoute is a route under construction. It starts empty, opens with its
// first load, stays open while extensions fit, and closes into a model.Route
// once no remaining candidate fits. The duration always includes a
// provisional return leg from the current last dropoff, so it equals the
// final duration if the route were closed on the spot.
type openRoute struct {
	loads    []int // dense indexes in service order
	last     int
	duration float64
}

// open seats the first load. Its round trip is the opening duration: approach
// from the depot, haul, and the provisional return.
func (r *openRoute) open(p *model.Problem, start int) {
	r.loads = append(r.loads, start)
	r.last = start
	r.duration = p.Load(start).RoundTrip()
}

// extendedDuration returns the route duration if cand were appended: the
// provisional return is replaced by the deadhead to cand's pickup, then
// cand's haul and its own return leg are added.
func (r *openRoute) extendedDuration(p *model.Problem, cand int) float64 {
	last := p.Load(r.last)
	next := p.Load(cand)
	return r.duration - last.DropoffToDepot +
		last.Dropoff.Distance(next.Pickup) +
		next.PickupToDropoff + next.DropoffToDepot
}

// fits reports whether appending cand keeps the route within the limit.
func (r *openRoute) fits(p *model.Problem, cand int) bool {
	return r.extendedDuration(p, cand) <= p.MaxDuration()
}

// extend appends cand and rolls the provisional return forward.
func (r *openRoute) extend(p *model.Problem, cand int) {
	r.duration = r.extendedDuration(p, cand)
	r.loads = append(r.loads, cand)
	r.last = cand
}

// close finalizes the provisional return leg and emits the finished route
// with external load IDs.
func (r *openRoute) close(p *model.Problem) model.Route {
	ids := make([]int, len(r.loads))
	for i, idx := range r.loads {
		ids[i] = p.Load(idx).ID
	}
	return model.Route{LoadIDs: ids, Duration: r.duration}
}

// pickNext returns the next load to append, or -1 to close the route.
// Candidates are scanned in neighbor rank order; a non-zero promoted rank for
// the current last load is tried before the natural order. The first
// unassigned candidate that fits wins.
func (r *openRoute) pickNext(p *model.Problem, nm *NeighborMap, assigned []bool, firstRank []int) int {
	seq := nm.Neighbors(r.last)
	prefer := 0
	if firstRank != nil && firstRank[r.last] < len(seq) {
		prefer = firstRank[r.last]
	}
	if prefer > 0 {
		if nb := seq[prefer]; !assigned[nb.Load] && r.fits(p, nb.Load) {
			return nb.Load
		}
	}
	for rank, nb := range seq {
		if rank == prefer && prefer > 0 {
			continue
		}
		if assigned[nb.Load] {
			continue
		}
		if r.fits(p, nb.Load) {
			return nb.Load
		}
	}
	return -1
}

// growRoute builds one complete route starting at the given load. assigned
// marks loads already placed during the current trial; every load the route
// absorbs is marked before the function returns. firstRank may be nil for
// the unperturbed rank order.
func growRoute(p *model.Problem, nm *NeighborMap, assigned []bool, start int, firstRank []int) model.Route {
	var r openRoute
	r.open(p, start)
	assigned[start] = true
	for {
		next := r.pickNext(p, nm, assigned, firstRank)
		if next < 0 {
			break
		}
		r.extend(p, next)
		assigned[next] = true
	}
	return r.close(p)
}
