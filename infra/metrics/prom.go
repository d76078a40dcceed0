package metrics

import (
	"strconv"

	coremetrics "github.com/openfreight/loadplan/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records solver results in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	cost     *prometheus.GaugeVec
	gap      *prometheus.GaugeVec
	routes   *prometheus.GaugeVec
	duration *prometheus.HistogramVec
	util     *prometheus.GaugeVec
	loads    *prometheus.GaugeVec
}

// NewPromSink registers solver metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusAddr.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loadplan_solve_runs_total",
		Help: "Total number of completed solve runs",
	}, []string{"instance"})
	cost := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "loadplan_solve_cost",
		Help: "Cost of the latest plan per instance",
	}, []string{"instance"})
	gap := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "loadplan_solve_gap_ratio",
		Help: "Relative gap between the latest plan and the lower bound",
	}, []string{"instance"})
	routes := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "loadplan_solve_routes",
		Help: "Number of routes in the latest plan per instance",
	}, []string{"instance"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loadplan_solve_duration_seconds",
		Help:    "Wall clock time spent per solve run",
		Buckets: prometheus.DefBuckets,
	}, []string{"instance"})
	util := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "loadplan_route_utilization",
		Help: "Haul share of each route in the latest plan",
	}, []string{"instance", "route"})
	loads := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "loadplan_instance_loads",
		Help: "Number of loads in the latest parsed instance",
	}, []string{"instance"})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(cost); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cost = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(gap); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			gap = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(routes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			routes = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(util); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			util = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(loads); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			loads = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, cost: cost, gap: gap, routes: routes, duration: duration, util: util, loads: loads}, nil
}

// RecordSolveResult updates the per-instance run gauges.
func (s *PromSink) RecordSolveResult(res coremetrics.SolveResult) error {
	s.runs.WithLabelValues(res.Instance).Inc()
	s.cost.WithLabelValues(res.Instance).Set(res.Cost)
	if res.LowerBound > 0 {
		s.gap.WithLabelValues(res.Instance).Set((res.Cost - res.LowerBound) / res.LowerBound)
	}
	s.routes.WithLabelValues(res.Instance).Set(float64(res.Routes))
	s.duration.WithLabelValues(res.Instance).Observe(res.Elapsed.Seconds())
	return nil
}

// RecordRoutes sets the per-route utilization gauges of the latest plan.
func (s *PromSink) RecordRoutes(obs []coremetrics.RouteObservation) error {
	for _, o := range obs {
		s.util.WithLabelValues(o.Instance, strconv.Itoa(o.Route)).Set(o.Utilization())
	}
	return nil
}

// RecordInstance sets the load count gauge for a parsed instance.
func (s *PromSink) RecordInstance(ev coremetrics.InstanceEvent) error {
	s.loads.WithLabelValues(ev.Instance).Set(float64(ev.Loads))
	return nil
}
