package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/openfreight/loadplan/core/metrics"
)

func TestPromSinkRecordsRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	res := coremetrics.SolveResult{
		RunID:      "run-1",
		Instance:   "day1",
		Cost:       1138,
		LowerBound: 1000,
		Routes:     2,
		Loads:      3,
		Trials:     64,
		Elapsed:    time.Second,
		SolvedAt:   time.Now(),
	}
	if err := sink.RecordSolveResult(res); err != nil {
		t.Fatalf("record: %v", err)
	}
	ps := sink.(*PromSink)
	if err := ps.RecordRoutes([]coremetrics.RouteObservation{
		{RunID: "run-1", Instance: "day1", Route: 0, Loads: 2, HaulMinutes: 18, DeadheadMinutes: 80, Duration: 98, Time: time.Now()},
	}); err != nil {
		t.Fatalf("record routes: %v", err)
	}
	if err := ps.RecordInstance(coremetrics.InstanceEvent{Instance: "day1", Loads: 3, Time: time.Now()}); err != nil {
		t.Fatalf("record instance: %v", err)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[*mf.Name] = true
	}
	expected := []string{
		"loadplan_solve_runs_total",
		"loadplan_solve_cost",
		"loadplan_solve_gap_ratio",
		"loadplan_solve_routes",
		"loadplan_solve_duration_seconds",
		"loadplan_route_utilization",
		"loadplan_instance_loads",
	}
	for _, n := range expected {
		if !names[n] {
			t.Errorf("metric %s not registered", n)
		}
	}
}

func TestPromSinkReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first sink: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second sink: %v", err)
	}
}
