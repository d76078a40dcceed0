package solver

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func TestFirstRanksZeroBias(t *testing.T) {
	cfg := Config{TopK: 3, FirstPickBias: 0}
	ranks := firstRanks(10, cfg, rand.New(rand.NewSource(1)))
	for i, r := range ranks {
		if r != 0 {
			t.Fatalf("rank %d perturbed with zero bias: %d", i, r)
		}
	}
}

func TestFirstRanksStayWithinTopK(t *testing.T) {
	cfg := Config{TopK: 3, FirstPickBias: 1}
	ranks := firstRanks(50, cfg, rand.New(rand.NewSource(2)))
	var nonZero int
	for i, r := range ranks {
		if r < 0 || r >= 3 {
			t.Fatalf("rank %d out of range: %d", i, r)
		}
		if r != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Fatal("full bias produced no perturbation at all")
	}
}

func TestFirstRanksTinyProblem(t *testing.T) {
	// With two loads there is only one neighbor, so nothing to permute.
	cfg := Config{TopK: 3, FirstPickBias: 1}
	ranks := firstRanks(2, cfg, rand.New(rand.NewSource(3)))
	for i, r := range ranks {
		if r != 0 {
			t.Fatalf("rank %d perturbed on tiny problem: %d", i, r)
		}
	}
}

func TestFirstRanksDeterministic(t *testing.T) {
	cfg := Config{TopK: 4, FirstPickBias: 0.5}
	a := firstRanks(20, cfg, rand.New(rand.NewSource(7)))
	b := firstRanks(20, cfg, rand.New(rand.NewSource(7)))
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same source produced different ranks: %v vs %v", a, b)
	}
}

func TestConstructHonorsPromotedRank(t *testing.T) {
	p := mustProblem(t, chainLoads(), 720)
	nm := BuildNeighborMap(p)
	// Promote load 3's second nearest follow-on. The route then detours to
	// load 1 before load 2.
	ranks := []int{0, 0, 1}
	plan := construct(p, nm, ranks)
	if len(plan.Routes) != 1 {
		t.Fatalf("expected 1 route got %d", len(plan.Routes))
	}
	r := plan.Routes[0]
	if !reflect.DeepEqual(r.LoadIDs, []int{3, 1, 2}) {
		t.Fatalf("expected route [3 1 2] got %v", r.LoadIDs)
	}
	if math.Abs(r.Duration-120) > 1e-9 {
		t.Fatalf("expected duration 120 got %f", r.Duration)
	}
	if err := Validate(p, plan); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestConstructPromotedRankStillCoversAll(t *testing.T) {
	p := mustProblem(t, chainLoads(), 100)
	nm := BuildNeighborMap(p)
	for prefer := 0; prefer < 2; prefer++ {
		ranks := []int{prefer, prefer, prefer}
		plan := construct(p, nm, ranks)
		if err := Validate(p, plan); err != nil {
			t.Fatalf("prefer %d: validate: %v", prefer, err)
		}
	}
}
