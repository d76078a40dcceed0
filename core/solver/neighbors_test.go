package solver

import (
	"testing"

	"github.com/openfreight/loadplan/core/model"
)

func TestNeighborMapOrdersByDirectedDistance(t *testing.T) {
	p := mustProblem(t, []model.Load{
		{ID: 1, Pickup: model.Point{X: 10, Y: 0}, Dropoff: model.Point{X: 0, Y: 0}},
		{ID: 2, Pickup: model.Point{X: 5, Y: 0}, Dropoff: model.Point{X: 50, Y: 0}},
		{ID: 3, Pickup: model.Point{X: 12, Y: 0}, Dropoff: model.Point{X: 80, Y: 0}},
	}, 720)
	nm := BuildNeighborMap(p)
	if nm.Len() != 3 {
		t.Fatalf("expected 3 sequences got %d", nm.Len())
	}
	// From load 1's dropoff at the origin, load 2's pickup is nearer than
	// load 3's.
	seq := nm.Neighbors(0)
	if len(seq) != 2 {
		t.Fatalf("expected 2 neighbors got %d", len(seq))
	}
	if p.Load(seq[0].Load).ID != 2 || seq[0].Dist != 5 {
		t.Fatalf("expected load 2 at distance 5 first, got load %d at %f", p.Load(seq[0].Load).ID, seq[0].Dist)
	}
	if p.Load(seq[1].Load).ID != 3 || seq[1].Dist != 12 {
		t.Fatalf("expected load 3 at distance 12 second, got load %d at %f", p.Load(seq[1].Load).ID, seq[1].Dist)
	}
}

func TestNeighborMapExcludesSelf(t *testing.T) {
	p := mustProblem(t, chainLoads(), 720)
	nm := BuildNeighborMap(p)
	for i := 0; i < nm.Len(); i++ {
		for _, nb := range nm.Neighbors(i) {
			if nb.Load == i {
				t.Fatalf("load %d lists itself as neighbor", i)
			}
		}
		if len(nm.Neighbors(i)) != p.Len()-1 {
			t.Fatalf("load %d has %d neighbors, want %d", i, len(nm.Neighbors(i)), p.Len()-1)
		}
	}
}

func TestNeighborMapTieBreaksByID(t *testing.T) {
	// Loads 7 and 5 sit at the same distance from load 2's dropoff.
	p := mustProblem(t, []model.Load{
		{ID: 2, Pickup: model.Point{X: 1, Y: 0}, Dropoff: model.Point{X: 0, Y: 0}},
		{ID: 7, Pickup: model.Point{X: 3, Y: 4}, Dropoff: model.Point{X: 9, Y: 9}},
		{ID: 5, Pickup: model.Point{X: 4, Y: 3}, Dropoff: model.Point{X: 9, Y: 8}},
	}, 720)
	nm := BuildNeighborMap(p)
	seq := nm.Neighbors(0)
	if seq[0].Dist != seq[1].Dist {
		t.Fatalf("expected tied distances, got %f and %f", seq[0].Dist, seq[1].Dist)
	}
	if p.Load(seq[0].Load).ID != 5 {
		t.Fatalf("expected load 5 to win the tie, got %d", p.Load(seq[0].Load).ID)
	}
}

func TestNeighborMapAsymmetry(t *testing.T) {
	// Directed distances differ: dropoff(1) to pickup(2) is short while
	// dropoff(2) to pickup(1) is long.
	p := mustProblem(t, []model.Load{
		{ID: 1, Pickup: model.Point{X: -30, Y: 0}, Dropoff: model.Point{X: 0, Y: 0}},
		{ID: 2, Pickup: model.Point{X: 2, Y: 0}, Dropoff: model.Point{X: 100, Y: 0}},
	}, 720)
	nm := BuildNeighborMap(p)
	if d := nm.Neighbors(0)[0].Dist; d != 2 {
		t.Fatalf("forward distance: expected 2 got %f", d)
	}
	if d := nm.Neighbors(1)[0].Dist; d != 130 {
		t.Fatalf("reverse distance: expected 130 got %f", d)
	}
}
