package kpi

import "time"

// Record aggregates routing KPIs for an instance and day.
type Record struct {
	Instance        string
	Date            time.Time
	HaulMinutes     float64
	DeadheadMinutes float64
	Routes          int
	Loads           int
}

// Utilization returns the share of driving time spent hauling loads.
func (r Record) Utilization() float64 {
	total := r.HaulMinutes + r.DeadheadMinutes
	if total == 0 {
		return 0
	}
	return r.HaulMinutes / total
}

// MinutesPerLoad returns the average driving minutes spent per load.
func (r Record) MinutesPerLoad() float64 {
	if r.Loads == 0 {
		return 0
	}
	return (r.HaulMinutes + r.DeadheadMinutes) / float64(r.Loads)
}
