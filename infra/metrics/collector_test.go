package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/openfreight/loadplan/core/events"
	coremetrics "github.com/openfreight/loadplan/core/metrics"
	"github.com/openfreight/loadplan/internal/eventbus"
)

type trialCapture struct {
	obs chan coremetrics.TrialObservation
}

func (c *trialCapture) RecordSolveResult(coremetrics.SolveResult) error { return nil }
func (c *trialCapture) RecordTrial(ev coremetrics.TrialObservation) error {
	c.obs <- ev
	return nil
}

func TestEventCollectorRecordsTrials(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	sink := &trialCapture{obs: make(chan coremetrics.TrialObservation, 8)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartEventCollector(ctx, bus, sink)

	bus.Publish(events.TrialEvent{RunID: "r1", Trial: 0, Cost: 618, Routes: 1, Took: time.Millisecond})
	bus.Publish(events.BestEvent{RunID: "r1", Trial: 0, Cost: 618, Routes: 1})
	bus.Publish(events.TrialEvent{RunID: "r1", Trial: 1, Cost: 700, Routes: 2, Took: time.Millisecond})
	bus.Publish(events.TrialEvent{RunID: "r1", Trial: 2, Cost: 600, Routes: 1, Took: time.Millisecond})

	want := []struct {
		trial    int
		improved bool
	}{
		{0, true},
		{1, false},
		{2, true},
	}
	for _, w := range want {
		select {
		case ob := <-sink.obs:
			if ob.Trial != w.trial || ob.Improved != w.improved {
				t.Fatalf("trial %d: got trial=%d improved=%v", w.trial, ob.Trial, ob.Improved)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for trial %d", w.trial)
		}
	}
}

func TestEventCollectorNilBusOrSink(t *testing.T) {
	// Must not panic.
	StartEventCollector(context.Background(), nil, coremetrics.NopSink{})
	StartEventCollector(context.Background(), eventbus.New(), nil)
}
