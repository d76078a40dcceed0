package main

import (
	"fmt"
	"math/rand"

	"github.com/openfreight/loadplan/core/model"
)

// generateLoads draws count random loads inside the [-span, span] square.
// Candidates whose round trip from the depot exceeds maxMinutes are redrawn,
// so every emitted instance is feasible by construction.
func generateLoads(rng *rand.Rand, count int, span, maxMinutes float64) ([]model.Load, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be at least 1")
	}
	if span <= 0 {
		return nil, fmt.Errorf("span must be positive")
	}
	loads := make([]model.Load, 0, count)
	for id := 1; id <= count; id++ {
		var l model.Load
		ok := false
		for attempt := 0; attempt < 1000; attempt++ {
			l = model.Load{ID: id, Pickup: randPoint(rng, span), Dropoff: randPoint(rng, span)}
			if roundTrip(l) <= maxMinutes {
				ok = true
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("span %.0f leaves no room under %.0f route minutes", span, maxMinutes)
		}
		loads = append(loads, l)
	}
	return loads, nil
}

func randPoint(rng *rand.Rand, span float64) model.Point {
	return model.Point{X: (rng.Float64()*2 - 1) * span, Y: (rng.Float64()*2 - 1) * span}
}

func roundTrip(l model.Load) float64 {
	return model.Depot.Distance(l.Pickup) + l.Pickup.Distance(l.Dropoff) + l.Dropoff.Distance(model.Depot)
}
