package solver

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	trialsRun     *prometheus.CounterVec
	trialDuration *prometheus.HistogramVec
	bestCost      prometheus.Gauge
	improvements  prometheus.Counter
	planRoutes    prometheus.Gauge
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.HistogramVec, prometheus.Gauge, prometheus.Counter, prometheus.Gauge) {
	trials := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadplan_search_trials_total",
			Help: "Number of completed search trials",
		},
		[]string{"kind"},
	)
	dur := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loadplan_search_trial_duration_seconds",
			Help:    "Duration of individual search trials",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	best := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "loadplan_search_best_cost",
			Help: "Cost of the best plan found by the current run",
		},
	)
	imp := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loadplan_search_improvements_total",
			Help: "Number of trials that improved on the incumbent plan",
		},
	)
	routes := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "loadplan_plan_routes",
			Help: "Number of routes in the best plan found by the current run",
		},
	)
	return trials, dur, best, imp, routes
}

func init() {
	trialsRun, trialDuration, bestCost, improvements, planRoutes = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers solver metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(trialsRun, trialDuration, bestCost, improvements, planRoutes)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	trialsRun, trialDuration, bestCost, improvements, planRoutes = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
