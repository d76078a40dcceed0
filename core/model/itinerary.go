package model

import "fmt"

// Stop is one scheduled service on a route, with arrival times in minutes
// after the depot departure.
type Stop struct {
	LoadID     int     `json:"load_id"`
	PickupETA  float64 `json:"pickup_eta"`
	DropoffETA float64 `json:"dropoff_eta"`
}

// Itinerary expands a route into per-stop arrival times.
type Itinerary struct {
	Stops     []Stop  `json:"stops"`
	ReturnETA float64 `json:"return_eta"`
}

// Itinerary computes arrival times for every stop of the route. The driver
// leaves the depot at minute zero. It fails if the route references a load
// the problem does not contain.
func (p *Problem) Itinerary(r Route) (Itinerary, error) {
	it := Itinerary{Stops: make([]Stop, 0, len(r.LoadIDs))}
	at := Depot
	clock := 0.0
	for _, id := range r.LoadIDs {
		i, ok := p.IndexOf(id)
		if !ok {
			return Itinerary{}, fmt.Errorf("itinerary: unknown load %d", id)
		}
		l := p.Load(i)
		clock += at.Distance(l.Pickup)
		pickup := clock
		clock += l.PickupToDropoff
		it.Stops = append(it.Stops, Stop{LoadID: id, PickupETA: pickup, DropoffETA: clock})
		at = l.Dropoff
	}
	clock += at.Distance(Depot)
	it.ReturnETA = clock
	return it, nil
}
