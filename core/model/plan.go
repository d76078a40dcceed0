package model

// Route is one driver's finished itinerary: load IDs in service order and the
// total duration, including the approach from the depot and the return leg.
type Route struct {
	LoadIDs  []int
	Duration float64
}

// Plan assigns every load of a problem to exactly one route.
type Plan struct {
	Routes []Route
}

// Cost returns the plan cost: a fixed fee per route plus the total minutes
// driven.
func (p Plan) Cost(driverCost float64) float64 {
	total := driverCost * float64(len(p.Routes))
	for _, r := range p.Routes {
		total += r.Duration
	}
	return total
}

// Duration returns the total minutes driven across all routes.
func (p Plan) Duration() float64 {
	var total float64
	for _, r := range p.Routes {
		total += r.Duration
	}
	return total
}

// LoadCount returns the number of load assignments across all routes.
func (p Plan) LoadCount() int {
	n := 0
	for _, r := range p.Routes {
		n += len(r.LoadIDs)
	}
	return n
}
