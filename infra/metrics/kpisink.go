package metrics

import (
	coremetrics "github.com/openfreight/loadplan/core/metrics"
	"github.com/openfreight/loadplan/core/metrics/kpi"
	"github.com/prometheus/client_golang/prometheus"
)

// KPISink folds route observations into daily routing KPIs.
type KPISink struct {
	store kpi.Store
	util  *prometheus.GaugeVec
	haul  *prometheus.GaugeVec
	per   *prometheus.GaugeVec
}

// NewKPISink creates a sink with Prometheus gauges registered on reg.
func NewKPISink(store kpi.Store, reg prometheus.Registerer) *KPISink {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	util := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "loadplan_day_utilization",
		Help: "Daily haul share of driving time per instance",
	}, []string{"instance", "day"})
	haul := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "loadplan_day_haul_minutes",
		Help: "Daily hauling minutes per instance",
	}, []string{"instance", "day"})
	per := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "loadplan_day_minutes_per_load",
		Help: "Daily average driving minutes per load",
	}, []string{"instance", "day"})
	if err := reg.Register(util); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			util = are.ExistingCollector.(*prometheus.GaugeVec)
		}
	}
	if err := reg.Register(haul); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			haul = are.ExistingCollector.(*prometheus.GaugeVec)
		}
	}
	if err := reg.Register(per); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			per = are.ExistingCollector.(*prometheus.GaugeVec)
		}
	}
	return &KPISink{store: store, util: util, haul: haul, per: per}
}

// RecordSolveResult is a no-op; KPIs derive from route observations.
func (s *KPISink) RecordSolveResult(coremetrics.SolveResult) error { return nil }

// RecordRoutes aggregates the observations into the daily store and refreshes
// the gauges from the stored day totals.
func (s *KPISink) RecordRoutes(obs []coremetrics.RouteObservation) error {
	for _, o := range obs {
		rec := kpi.Record{
			Instance:        o.Instance,
			Date:            o.Time,
			HaulMinutes:     o.HaulMinutes,
			DeadheadMinutes: o.DeadheadMinutes,
			Routes:          1,
			Loads:           o.Loads,
		}
		if err := s.store.Add(rec); err != nil {
			return err
		}
		dayStr := kpi.Day(o.Time).Format("2006-01-02")
		records, _ := s.store.Query(o.Instance, o.Time, o.Time)
		if len(records) > 0 {
			rr := records[0]
			s.util.WithLabelValues(o.Instance, dayStr).Set(rr.Utilization())
			s.haul.WithLabelValues(o.Instance, dayStr).Set(rr.HaulMinutes)
			s.per.WithLabelValues(o.Instance, dayStr).Set(rr.MinutesPerLoad())
		}
	}
	return nil
}
