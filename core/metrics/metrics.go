package metrics

import (
	"time"
)

// SolveResult represents a finished solver run to be recorded.
type SolveResult struct {
	RunID      string
	Instance   string
	Cost       float64
	LowerBound float64
	Routes     int
	Loads      int
	Trials     int
	BestTrial  int
	Elapsed    time.Duration
	SolvedAt   time.Time
}

// MetricsSink records solver results for observability purposes.
type MetricsSink interface {
	RecordSolveResult(res SolveResult) error
}

// TrialObservation captures the outcome of a single search trial.
type TrialObservation struct {
	RunID    string
	Trial    int
	Cost     float64
	Routes   int
	Improved bool
	Duration time.Duration
	Time     time.Time
}

// TrialRecorder is implemented by sinks able to record individual trials.
type TrialRecorder interface {
	RecordTrial(ev TrialObservation) error
}

// RouteObservation is a snapshot of one route in a plan.
type RouteObservation struct {
	RunID           string
	Instance        string
	Route           int
	Loads           int
	HaulMinutes     float64
	DeadheadMinutes float64
	Duration        float64
	Time            time.Time
}

// Utilization returns the share of route time spent hauling.
func (o RouteObservation) Utilization() float64 {
	if o.Duration == 0 {
		return 0
	}
	return o.HaulMinutes / o.Duration
}

// RouteRecorder records per-route observations for a plan.
type RouteRecorder interface {
	RecordRoutes(obs []RouteObservation) error
}

// InstanceEvent captures data about a parsed problem instance.
type InstanceEvent struct {
	Instance string
	Loads    int
	Time     time.Time
}

// InstanceRecorder records parsed problem instances.
type InstanceRecorder interface {
	RecordInstance(ev InstanceEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolveResult(SolveResult) error { return nil }

func (NopSink) RecordTrial(TrialObservation) error    { return nil }
func (NopSink) RecordRoutes([]RouteObservation) error { return nil }
func (NopSink) RecordInstance(InstanceEvent) error    { return nil }
