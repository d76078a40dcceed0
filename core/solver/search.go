package solver

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openfreight/loadplan/core/events"
	"github.com/openfreight/loadplan/core/logger"
	"github.com/openfreight/loadplan/core/model"
	"github.com/openfreight/loadplan/core/monitoring"
	"github.com/openfreight/loadplan/internal/eventbus"
)

// Searcher repeatedly rebuilds plans with perturbed construction orders and
// keeps the cheapest one. Trial zero is always the unperturbed greedy plan,
// so a search can never return a worse plan than Greedy alone.
type Searcher struct {
	cfg Config
	log logger.Logger
	bus eventbus.EventBus
}

// NewSearcher creates a new searcher. The bus may be nil when no component
// listens for search events.
func NewSearcher(cfg Config, log logger.Logger, bus eventbus.EventBus) (*Searcher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		return nil, fmt.Errorf("solver: nil logger provided to NewSearcher")
	}
	return &Searcher{cfg: cfg, log: log, bus: bus}, nil
}

// trialResult is one finished trial on its way to the collector.
type trialResult struct {
	trial int
	plan  model.Plan
	cost  float64
	took  time.Duration
}

// better reports whether r should replace the incumbent best. Equal costs
// resolve to the lower trial index so concurrent runs stay reproducible.
func (r trialResult) better(best trialResult) bool {
	if r.cost != best.cost {
		return r.cost < best.cost
	}
	return r.trial < best.trial
}

// Search runs construction trials until the iteration or time budget is
// spent, then returns the best plan found. The context cancels at trial
// granularity, so the plan returned after a cancellation is still the best
// of the completed trials. Running out of budget is not an error.
func (s *Searcher) Search(ctx context.Context, p *model.Problem, nm *NeighborMap) (*Report, error) {
	if p == nil {
		return nil, fmt.Errorf("solver: nil problem")
	}
	if nm == nil || nm.Len() != p.Len() {
		return nil, fmt.Errorf("solver: neighbor map does not match problem")
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if s.cfg.TimeBudgetMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.TimeBudgetMS)*time.Millisecond)
		defer cancel()
	}

	runID := uuid.NewString()
	start := time.Now()
	s.log.Infof("run %s: %d loads, seed %d, %d workers", runID, p.Len(), seed, s.cfg.Workers)

	// Trial zero runs unconditionally, even when the context is already
	// expired, so every run yields a feasible plan.
	t0 := time.Now()
	basePlan := Greedy(p, nm)
	best := trialResult{trial: 0, plan: basePlan, cost: Cost(p, basePlan), took: time.Since(t0)}
	costs := []float64{best.cost}
	s.observeTrial(runID, best, "baseline")
	s.publishBest(runID, best)

	jobs := make(chan int)
	results := make(chan trialResult)
	var wg sync.WaitGroup

	go func() {
		defer close(jobs)
		for t := 1; s.cfg.MaxTrials == 0 || t < s.cfg.MaxTrials; t++ {
			select {
			case jobs <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	for w := 0; w < s.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer monitoring.Recover()
			for t := range jobs {
				rng := rand.New(rand.NewSource(seed + int64(t)))
				ranks := firstRanks(p.Len(), s.cfg, rng)
				t0 := time.Now()
				plan := construct(p, nm, ranks)
				results <- trialResult{trial: t, plan: plan, cost: Cost(p, plan), took: time.Since(t0)}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Single collector goroutine owns the incumbent, so no lock is needed.
	for r := range results {
		costs = append(costs, r.cost)
		s.observeTrial(runID, r, "perturbed")
		if r.better(best) {
			if r.cost < best.cost {
				improvements.Inc()
			}
			best = r
			s.publishBest(runID, best)
			s.log.Debugf("run %s: trial %d improved cost to %.2f", runID, r.trial, r.cost)
		}
	}
	if err := ctx.Err(); err != nil {
		s.log.Debugf("run %s: stopped after %d trials: %v", runID, len(costs), err)
	}

	if err := Validate(p, best.plan); err != nil {
		monitoring.Capture(err, map[string]string{"module": "solver", "run_id": runID})
		return nil, fmt.Errorf("solver: best plan failed validation: %w", err)
	}

	elapsed := time.Since(start)
	rep := newReport(runID, seed, best, costs, LowerBound(p), elapsed)
	if s.bus != nil {
		s.bus.Publish(events.SolvedEvent{
			RunID:   runID,
			Cost:    rep.Cost,
			Routes:  len(rep.Plan.Routes),
			Trials:  rep.Trials,
			Elapsed: rep.Elapsed,
		})
	}
	s.log.Infof("run %s: best cost %.2f with %d routes after %d trials in %s",
		runID, rep.Cost, len(rep.Plan.Routes), rep.Trials, elapsed.Round(time.Millisecond))
	return rep, nil
}

// observeTrial updates collectors and publishes the trial event.
func (s *Searcher) observeTrial(runID string, r trialResult, kind string) {
	trialsRun.WithLabelValues(kind).Inc()
	trialDuration.WithLabelValues(kind).Observe(r.took.Seconds())
	if s.bus != nil {
		s.bus.Publish(events.TrialEvent{
			RunID:  runID,
			Trial:  r.trial,
			Cost:   r.cost,
			Routes: len(r.plan.Routes),
			Took:   r.took,
		})
	}
}

// publishBest updates incumbent gauges and publishes the best event.
func (s *Searcher) publishBest(runID string, best trialResult) {
	bestCost.Set(best.cost)
	planRoutes.Set(float64(len(best.plan.Routes)))
	if s.bus != nil {
		s.bus.Publish(events.BestEvent{
			RunID:  runID,
			Trial:  best.trial,
			Cost:   best.cost,
			Routes: len(best.plan.Routes),
		})
	}
}
