package metrics

import coremetrics "github.com/openfreight/loadplan/core/metrics"

// MultiSink fans solver events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// forward calls fn on every sink that implements the recorder interface R,
// stopping at the first error.
func forward[R any](sinks []coremetrics.MetricsSink, fn func(R) error) error {
	for _, s := range sinks {
		rec, ok := any(s).(R)
		if !ok {
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordSolveResult forwards the result to every sink.
func (m *MultiSink) RecordSolveResult(res coremetrics.SolveResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolveResult(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordTrial forwards trial outcomes to the sinks that track them.
func (m *MultiSink) RecordTrial(ev coremetrics.TrialObservation) error {
	return forward(m.Sinks, func(r coremetrics.TrialRecorder) error {
		return r.RecordTrial(ev)
	})
}

// RecordRoutes forwards route observations to the sinks that track them.
func (m *MultiSink) RecordRoutes(obs []coremetrics.RouteObservation) error {
	return forward(m.Sinks, func(r coremetrics.RouteRecorder) error {
		return r.RecordRoutes(obs)
	})
}

// RecordInstance forwards instance events to the sinks that track them.
func (m *MultiSink) RecordInstance(ev coremetrics.InstanceEvent) error {
	return forward(m.Sinks, func(r coremetrics.InstanceRecorder) error {
		return r.RecordInstance(ev)
	})
}
