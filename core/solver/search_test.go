package solver

import (
	"context"
	"reflect"
	"testing"

	"github.com/openfreight/loadplan/core/events"
	"github.com/openfreight/loadplan/core/model"
	"github.com/openfreight/loadplan/infra/logger"
	"github.com/openfreight/loadplan/internal/eventbus"
)

func searchLoads() ([]model.Load, float64) {
	return []model.Load{
		{ID: 1, Pickup: model.Point{X: 12, Y: 3}, Dropoff: model.Point{X: -40, Y: 9}},
		{ID: 2, Pickup: model.Point{X: -7, Y: 88}, Dropoff: model.Point{X: 14, Y: 60}},
		{ID: 3, Pickup: model.Point{X: 100, Y: -20}, Dropoff: model.Point{X: 90, Y: -80}},
		{ID: 4, Pickup: model.Point{X: 0, Y: -5}, Dropoff: model.Point{X: 3, Y: 2}},
		{ID: 5, Pickup: model.Point{X: -120, Y: -120}, Dropoff: model.Point{X: -100, Y: -90}},
		{ID: 6, Pickup: model.Point{X: 55, Y: 55}, Dropoff: model.Point{X: 62, Y: 41}},
		{ID: 7, Pickup: model.Point{X: -60, Y: 10}, Dropoff: model.Point{X: -80, Y: 30}},
		{ID: 8, Pickup: model.Point{X: 20, Y: -70}, Dropoff: model.Point{X: 45, Y: -50}},
	}, 720
}

func TestSearchNeverWorseThanGreedy(t *testing.T) {
	loads, maxDur := searchLoads()
	p := mustProblem(t, loads, maxDur)
	nm := BuildNeighborMap(p)
	greedyCost := Cost(p, Greedy(p, nm))

	s, err := NewSearcher(Config{MaxRouteMinutes: maxDur, MaxTrials: 64, Seed: 42, Workers: 4}, logger.NopLogger{}, nil)
	if err != nil {
		t.Fatalf("searcher: %v", err)
	}
	rep, err := s.Search(context.Background(), p, nm)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if rep.Cost > greedyCost {
		t.Fatalf("search cost %f worse than greedy %f", rep.Cost, greedyCost)
	}
	if err := Validate(p, rep.Plan); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if rep.Trials != 64 {
		t.Fatalf("expected 64 trials got %d", rep.Trials)
	}
	if rep.CostMin > rep.CostMean || rep.CostMean > rep.CostMax {
		t.Fatalf("inconsistent stats: min %f mean %f max %f", rep.CostMin, rep.CostMean, rep.CostMax)
	}
	if rep.LowerBound > rep.Cost {
		t.Fatalf("bound %f exceeds result %f", rep.LowerBound, rep.Cost)
	}
}

func TestSearchDeterministicAcrossWorkerCounts(t *testing.T) {
	loads, maxDur := searchLoads()
	p := mustProblem(t, loads, maxDur)
	nm := BuildNeighborMap(p)

	run := func(workers int) *Report {
		s, err := NewSearcher(Config{MaxRouteMinutes: maxDur, MaxTrials: 48, Seed: 7, Workers: workers}, logger.NopLogger{}, nil)
		if err != nil {
			t.Fatalf("searcher: %v", err)
		}
		rep, err := s.Search(context.Background(), p, nm)
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		return rep
	}
	a, b, c := run(1), run(4), run(4)
	if a.Cost != b.Cost || b.Cost != c.Cost {
		t.Fatalf("costs diverge: %f %f %f", a.Cost, b.Cost, c.Cost)
	}
	if !reflect.DeepEqual(a.Plan, b.Plan) || !reflect.DeepEqual(b.Plan, c.Plan) {
		t.Fatal("plans diverge for identical seeds")
	}
	if a.BestTrial != b.BestTrial || b.BestTrial != c.BestTrial {
		t.Fatalf("best trials diverge: %d %d %d", a.BestTrial, b.BestTrial, c.BestTrial)
	}
}

func TestSearchSingleTrialIsGreedy(t *testing.T) {
	loads, maxDur := searchLoads()
	p := mustProblem(t, loads, maxDur)
	nm := BuildNeighborMap(p)

	s, err := NewSearcher(Config{MaxRouteMinutes: maxDur, MaxTrials: 1, Seed: 5}, logger.NopLogger{}, nil)
	if err != nil {
		t.Fatalf("searcher: %v", err)
	}
	rep, err := s.Search(context.Background(), p, nm)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if rep.Trials != 1 || rep.BestTrial != 0 {
		t.Fatalf("expected the lone baseline trial, got trials=%d best=%d", rep.Trials, rep.BestTrial)
	}
	if !reflect.DeepEqual(rep.Plan, Greedy(p, nm)) {
		t.Fatal("single trial result differs from greedy")
	}
}

func TestSearchCanceledContextStillReturnsBaseline(t *testing.T) {
	loads, maxDur := searchLoads()
	p := mustProblem(t, loads, maxDur)
	nm := BuildNeighborMap(p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := NewSearcher(Config{MaxRouteMinutes: maxDur, MaxTrials: 1000, Seed: 3, Workers: 2}, logger.NopLogger{}, nil)
	if err != nil {
		t.Fatalf("searcher: %v", err)
	}
	rep, err := s.Search(ctx, p, nm)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if rep.Trials < 1 {
		t.Fatal("baseline trial did not run")
	}
	if err := Validate(p, rep.Plan); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSearchTimeBudgetTerminates(t *testing.T) {
	loads, maxDur := searchLoads()
	p := mustProblem(t, loads, maxDur)
	nm := BuildNeighborMap(p)

	s, err := NewSearcher(Config{MaxRouteMinutes: maxDur, TimeBudgetMS: 20, Seed: 11, Workers: 2}, logger.NopLogger{}, nil)
	if err != nil {
		t.Fatalf("searcher: %v", err)
	}
	rep, err := s.Search(context.Background(), p, nm)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if rep.Trials < 1 {
		t.Fatal("no trials completed within the budget")
	}
	if err := Validate(p, rep.Plan); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSearchClockSeedIsReported(t *testing.T) {
	loads, maxDur := searchLoads()
	p := mustProblem(t, loads, maxDur)
	nm := BuildNeighborMap(p)

	s, err := NewSearcher(Config{MaxRouteMinutes: maxDur, MaxTrials: 2}, logger.NopLogger{}, nil)
	if err != nil {
		t.Fatalf("searcher: %v", err)
	}
	rep, err := s.Search(context.Background(), p, nm)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if rep.Seed == 0 {
		t.Fatal("expected a clock-derived seed to be reported")
	}
}

func TestSearchPublishesEvents(t *testing.T) {
	loads, maxDur := searchLoads()
	p := mustProblem(t, loads, maxDur)
	nm := BuildNeighborMap(p)

	bus := eventbus.New()
	defer bus.Close()
	sub := bus.Subscribe()

	// Two trials keep the event count below the subscriber buffer so the
	// non-blocking bus drops nothing.
	s, err := NewSearcher(Config{MaxRouteMinutes: maxDur, MaxTrials: 2, Seed: 9, Workers: 1}, logger.NopLogger{}, bus)
	if err != nil {
		t.Fatalf("searcher: %v", err)
	}
	if _, err := s.Search(context.Background(), p, nm); err != nil {
		t.Fatalf("search: %v", err)
	}
	var trials, bests, solved int
	for {
		select {
		case ev := <-sub:
			switch ev.(type) {
			case events.TrialEvent:
				trials++
			case events.BestEvent:
				bests++
			case events.SolvedEvent:
				solved++
			}
		default:
			if trials != 2 || bests == 0 || solved != 1 {
				t.Fatalf("missing events: trials=%d bests=%d solved=%d", trials, bests, solved)
			}
			return
		}
	}
}

func TestNewSearcherRejectsBadConfig(t *testing.T) {
	if _, err := NewSearcher(Config{MaxRouteMinutes: 720, MaxTrials: 8}, nil, nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
	if _, err := NewSearcher(Config{MaxTrials: 8}, logger.NopLogger{}, nil); err == nil {
		t.Fatal("expected error for missing route limit")
	}
	if _, err := NewSearcher(Config{MaxRouteMinutes: 720}, logger.NopLogger{}, nil); err == nil {
		t.Fatal("expected error when no budget is set")
	}
}

func TestSearchRejectsMismatchedNeighborMap(t *testing.T) {
	loads, maxDur := searchLoads()
	p := mustProblem(t, loads, maxDur)
	small := mustProblem(t, loads[:2], maxDur)
	nm := BuildNeighborMap(small)

	s, err := NewSearcher(Config{MaxRouteMinutes: maxDur, MaxTrials: 2, Seed: 1}, logger.NopLogger{}, nil)
	if err != nil {
		t.Fatalf("searcher: %v", err)
	}
	if _, err := s.Search(context.Background(), p, nm); err == nil {
		t.Fatal("expected error for mismatched neighbor map")
	}
}
