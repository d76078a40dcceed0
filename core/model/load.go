package model

// Load is one transport task: drive to Pickup, haul the cargo to Dropoff.
type Load struct {
	ID      int
	Pickup  Point
	Dropoff Point

	// Leg durations in minutes, filled in by NewProblem so the search never
	// recomputes them.
	DepotToPickup   float64 // deadhead from the depot to the pickup
	PickupToDropoff float64 // loaded haul
	DropoffToDepot  float64 // deadhead back to the depot
}

// computeLegs derives the three fixed legs from the coordinates.
func (l *Load) computeLegs() {
	l.DepotToPickup = Depot.Distance(l.Pickup)
	l.PickupToDropoff = l.Pickup.Distance(l.Dropoff)
	l.DropoffToDepot = l.Dropoff.Distance(Depot)
}

// RoundTrip returns the duration of serving the load on a route of its own.
func (l Load) RoundTrip() float64 {
	return l.DepotToPickup + l.PickupToDropoff + l.DropoffToDepot
}
