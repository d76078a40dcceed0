package kpi

import (
	"fmt"
	"time"

	"github.com/openfreight/loadplan/core/model"
)

// RouteKPI breaks one route's duration into hauling and deadhead time.
type RouteKPI struct {
	Route           int
	Loads           int
	HaulMinutes     float64
	DeadheadMinutes float64
	Duration        float64
	Utilization     float64
}

// Compute derives per-route KPIs for a plan. Haul time is the sum of the
// pickup to dropoff legs; everything else a driver does is deadhead.
func Compute(p *model.Problem, plan model.Plan) ([]RouteKPI, error) {
	out := make([]RouteKPI, 0, len(plan.Routes))
	for ri, r := range plan.Routes {
		var haul float64
		for _, id := range r.LoadIDs {
			i, ok := p.IndexOf(id)
			if !ok {
				return nil, fmt.Errorf("kpi: unknown load %d in route %d", id, ri)
			}
			haul += p.Load(i).PickupToDropoff
		}
		k := RouteKPI{
			Route:           ri,
			Loads:           len(r.LoadIDs),
			HaulMinutes:     haul,
			DeadheadMinutes: r.Duration - haul,
			Duration:        r.Duration,
		}
		if r.Duration > 0 {
			k.Utilization = haul / r.Duration
		}
		out = append(out, k)
	}
	return out, nil
}

// Fold sums per-route KPIs into a single daily record for the instance.
func Fold(instance string, routes []RouteKPI, at time.Time) Record {
	rec := Record{Instance: instance, Date: Day(at), Routes: len(routes)}
	for _, k := range routes {
		rec.HaulMinutes += k.HaulMinutes
		rec.DeadheadMinutes += k.DeadheadMinutes
		rec.Loads += k.Loads
	}
	return rec
}
