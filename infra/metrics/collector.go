package metrics

import (
	"context"
	"time"

	"github.com/openfreight/loadplan/core/events"
	coremetrics "github.com/openfreight/loadplan/core/metrics"
	"github.com/openfreight/loadplan/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records solver events
// into the sink until the context is canceled. Run summaries are not recorded
// here; the caller that knows the instance name records those.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	c := &eventCollector{bus: bus, sink: sink, best: make(map[string]float64)}
	go c.run(ctx, bus.Subscribe())
}

type eventCollector struct {
	bus  eventbus.EventBus
	sink coremetrics.MetricsSink

	// best holds the incumbent cost per run so trial observations can be
	// flagged as improvements. Trials arrive before the best event they
	// trigger.
	best map[string]float64
}

func (c *eventCollector) run(ctx context.Context, sub <-chan eventbus.Event) {
	defer c.bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			c.handle(ev)
		}
	}
}

func (c *eventCollector) handle(ev eventbus.Event) {
	switch e := ev.(type) {
	case events.TrialEvent:
		r, ok := c.sink.(coremetrics.TrialRecorder)
		if !ok {
			return
		}
		prev, seen := c.best[e.RunID]
		_ = r.RecordTrial(coremetrics.TrialObservation{
			RunID:    e.RunID,
			Trial:    e.Trial,
			Cost:     e.Cost,
			Routes:   e.Routes,
			Improved: !seen || e.Cost < prev,
			Duration: e.Took,
			Time:     time.Now(),
		})
	case events.BestEvent:
		c.best[e.RunID] = e.Cost
	case events.SolvedEvent:
		delete(c.best, e.RunID)
	}
}
