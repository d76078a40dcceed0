package scenarios

import (
	"context"
	"testing"

	"github.com/openfreight/loadplan/core/model"
	"github.com/openfreight/loadplan/core/solver"
	"github.com/openfreight/loadplan/infra/logger"
)

// RunScenario solves the scenario's instance with a fixed seed and checks the
// outcome against the declared expectations.
func RunScenario(t *testing.T, sc *Scenario) {
	loads := make([]model.Load, len(sc.Loads))
	for i, l := range sc.Loads {
		loads[i] = l.ToModel()
	}
	p, err := model.NewProblem(loads, sc.MaxRouteMinutes)
	if err != nil {
		t.Fatalf("scenario %s: problem: %v", sc.Name, err)
	}

	cfg := solver.Config{
		MaxRouteMinutes: sc.MaxRouteMinutes,
		MaxTrials:       sc.Trials,
		Seed:            sc.Seed,
	}
	s, err := solver.NewSearcher(cfg, logger.NewTest(t), nil)
	if err != nil {
		t.Fatalf("scenario %s: searcher: %v", sc.Name, err)
	}
	rep, err := s.Search(context.Background(), p, solver.BuildNeighborMap(p))
	if err != nil {
		t.Fatalf("scenario %s: search: %v", sc.Name, err)
	}

	if err := solver.Validate(p, rep.Plan); err != nil {
		t.Errorf("scenario %s: invalid plan: %v", sc.Name, err)
	}
	if rep.Cost > sc.Expected.MaxCost {
		t.Errorf("scenario %s: cost %.2f exceeds bound %.2f", sc.Name, rep.Cost, sc.Expected.MaxCost)
	}
	if sc.Expected.ExactCost > 0 && rep.Cost != sc.Expected.ExactCost {
		t.Errorf("scenario %s: cost = %.2f, want exactly %.2f", sc.Name, rep.Cost, sc.Expected.ExactCost)
	}
	if sc.Expected.Routes > 0 && len(rep.Plan.Routes) != sc.Expected.Routes {
		t.Errorf("scenario %s: %d routes, want %d", sc.Name, len(rep.Plan.Routes), sc.Expected.Routes)
	}
}
