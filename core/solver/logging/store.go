package logging

import (
	"context"
	"time"
)

// Record captures one solved plan and the run that produced it.
type Record struct {
	RunID      string        `json:"run_id"`
	Timestamp  time.Time     `json:"timestamp"`
	Instance   string        `json:"instance"`
	Cost       float64       `json:"cost"`
	LowerBound float64       `json:"lower_bound"`
	Routes     []RouteRecord `json:"routes"`
	Trials     int           `json:"trials"`
	ElapsedMS  int64         `json:"elapsed_ms"`
}

// RouteRecord is one driver's route inside a logged plan.
type RouteRecord struct {
	LoadIDs  []int   `json:"load_ids"`
	Duration float64 `json:"duration"`
}

// Serves reports whether any route in the record carries the load.
func (r Record) Serves(loadID int) bool {
	for _, rt := range r.Routes {
		for _, id := range rt.LoadIDs {
			if id == loadID {
				return true
			}
		}
	}
	return false
}

// Query defines filters for retrieving records.
type Query struct {
	Start    time.Time
	End      time.Time
	Instance string
	LoadID   int
}

// matches applies the query filters to a record.
func (q Query) matches(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Instance != "" && r.Instance != q.Instance {
		return false
	}
	if q.LoadID != 0 && !r.Serves(q.LoadID) {
		return false
	}
	return true
}

// Store persists plan records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
