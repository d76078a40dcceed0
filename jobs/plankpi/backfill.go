package plankpi

import (
	"github.com/openfreight/loadplan/core/metrics/kpi"
	"github.com/openfreight/loadplan/core/model"
	planlog "github.com/openfreight/loadplan/core/solver/logging"
)

// Backfill recomputes routing KPIs from logged plans and populates the store.
// Records whose instance is missing from problems are skipped: without the
// load geometry the haul split cannot be reconstructed.
func Backfill(store kpi.Store, problems map[string]*model.Problem, history []planlog.Record) error {
	for _, h := range history {
		p, ok := problems[h.Instance]
		if !ok {
			continue
		}
		plan := model.Plan{Routes: make([]model.Route, len(h.Routes))}
		for i, r := range h.Routes {
			plan.Routes[i] = model.Route{LoadIDs: r.LoadIDs, Duration: r.Duration}
		}
		routes, err := kpi.Compute(p, plan)
		if err != nil {
			return err
		}
		if err := store.Add(kpi.Fold(h.Instance, routes, h.Timestamp)); err != nil {
			return err
		}
	}
	return nil
}
