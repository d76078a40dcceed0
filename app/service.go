package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/openfreight/loadplan/config"
	"github.com/openfreight/loadplan/core/events"
	coremetrics "github.com/openfreight/loadplan/core/metrics"
	"github.com/openfreight/loadplan/core/metrics/kpi"
	"github.com/openfreight/loadplan/core/model"
	coremon "github.com/openfreight/loadplan/core/monitoring"
	"github.com/openfreight/loadplan/core/publish"
	"github.com/openfreight/loadplan/core/solver"
	planlog "github.com/openfreight/loadplan/core/solver/logging"
	infrakpi "github.com/openfreight/loadplan/infra/kpi"
	"github.com/openfreight/loadplan/infra/logger"
	"github.com/openfreight/loadplan/infra/metrics"
	"github.com/openfreight/loadplan/infra/monitoring"
	"github.com/openfreight/loadplan/infra/mqtt"
	"github.com/openfreight/loadplan/infra/probfile"
	"github.com/openfreight/loadplan/internal/eventbus"
)

// Service orchestrates the solver, its sinks, the plan log and the publisher.
type Service struct {
	Searcher *solver.Searcher

	cfg       *config.Config
	log       logger.Logger
	bus       eventbus.EventBus
	best      *eventbus.TypedBus[events.BestEvent]
	sink      coremetrics.MetricsSink
	planStore planlog.Store
	kpiStore  kpi.Store
	publisher publish.Publisher
	cancel    context.CancelFunc
}

// New creates a Service from the configuration. Section defaults are applied
// so that hand-built configs behave like loaded ones.
func New(cfg *config.Config) (*Service, error) {
	cfg.Solver.SetDefaults()
	cfg.PlanLog.SetDefaults()
	cfg.Metrics.SetDefaults()
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Use(mon)

	base, err := metrics.NewSink(cfg.Metrics, logg)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	kpiStore, err := newKPIStore(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("kpi store: %w", err)
	}
	sink := metrics.NewMultiSink(base, metrics.NewKPISink(kpiStore, nil))

	bus := eventbus.New()
	searcher, err := solver.NewSearcher(cfg.Solver, logger.New("solver"), bus)
	if err != nil {
		return nil, fmt.Errorf("searcher: %w", err)
	}

	planStore, err := newPlanStore(cfg.PlanLog)
	if err != nil {
		return nil, fmt.Errorf("plan store: %w", err)
	}

	var pub publish.Publisher
	if cfg.Publish.Enabled {
		client, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		pub = client
	}

	ctx, cancel := context.WithCancel(context.Background())
	metrics.StartEventCollector(ctx, bus, sink)

	best := eventbus.NewTyped[events.BestEvent]()
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if be, ok := ev.(events.BestEvent); ok {
					best.Publish(be)
				}
			}
		}
	}()

	return &Service{
		Searcher:  searcher,
		cfg:       cfg,
		log:       logg,
		bus:       bus,
		best:      best,
		sink:      sink,
		planStore: planStore,
		kpiStore:  kpiStore,
		publisher: pub,
		cancel:    cancel,
	}, nil
}

func newPlanStore(cfg config.PlanLogConfig) (planlog.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return planlog.NewSQLiteStore(cfg.Path)
	default:
		if cfg.MaxSizeMB > 0 {
			return planlog.NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
		}
		return planlog.NewJSONLStore(cfg.Path)
	}
}

func newKPIStore(cfg coremetrics.Config) (kpi.Store, error) {
	if cfg.KPIPath != "" {
		return infrakpi.NewSQLiteStore(cfg.KPIPath)
	}
	return kpi.NewMemoryStore(), nil
}

// SolveFile parses the problem file, runs the search and records the outcome
// in every configured sink and store. The instance name is the file name
// without its extension.
func (s *Service) SolveFile(ctx context.Context, path string) (*solver.Report, error) {
	loads, err := probfile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	instance := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if ir, ok := s.sink.(coremetrics.InstanceRecorder); ok {
		if err := ir.RecordInstance(coremetrics.InstanceEvent{Instance: instance, Loads: len(loads), Time: time.Now()}); err != nil {
			s.log.Warnf("record instance: %v", err)
		}
	}

	p, err := model.NewProblemWithCost(loads, s.cfg.Solver.MaxRouteMinutes, s.cfg.Solver.DriverCost)
	if err != nil {
		return nil, fmt.Errorf("problem %s: %w", instance, err)
	}
	rep, err := s.Searcher.Search(ctx, p, solver.BuildNeighborMap(p))
	if err != nil {
		return nil, err
	}
	solvedAt := time.Now()

	if err := s.sink.RecordSolveResult(coremetrics.SolveResult{
		RunID:      rep.RunID,
		Instance:   instance,
		Cost:       rep.Cost,
		LowerBound: rep.LowerBound,
		Routes:     len(rep.Plan.Routes),
		Loads:      p.Len(),
		Trials:     rep.Trials,
		BestTrial:  rep.BestTrial,
		Elapsed:    rep.Elapsed,
		SolvedAt:   solvedAt,
	}); err != nil {
		s.log.Warnf("record solve result: %v", err)
	}
	s.recordRoutes(p, rep, instance, solvedAt)

	if err := s.appendPlanLog(ctx, rep, instance, solvedAt); err != nil {
		s.log.Warnf("plan log append: %v", err)
	}
	s.publishPlan(rep, instance, solvedAt)
	return rep, nil
}

func (s *Service) recordRoutes(p *model.Problem, rep *solver.Report, instance string, at time.Time) {
	rr, ok := s.sink.(coremetrics.RouteRecorder)
	if !ok {
		return
	}
	kpis, err := kpi.Compute(p, rep.Plan)
	if err != nil {
		s.log.Warnf("route kpis: %v", err)
		return
	}
	obs := make([]coremetrics.RouteObservation, 0, len(kpis))
	for _, k := range kpis {
		obs = append(obs, coremetrics.RouteObservation{
			RunID:           rep.RunID,
			Instance:        instance,
			Route:           k.Route,
			Loads:           k.Loads,
			HaulMinutes:     k.HaulMinutes,
			DeadheadMinutes: k.DeadheadMinutes,
			Duration:        k.Duration,
			Time:            at,
		})
	}
	if err := rr.RecordRoutes(obs); err != nil {
		s.log.Warnf("record routes: %v", err)
	}
}

func (s *Service) appendPlanLog(ctx context.Context, rep *solver.Report, instance string, at time.Time) error {
	if s.planStore == nil {
		return nil
	}
	routes := make([]planlog.RouteRecord, 0, len(rep.Plan.Routes))
	for _, r := range rep.Plan.Routes {
		routes = append(routes, planlog.RouteRecord{LoadIDs: r.LoadIDs, Duration: r.Duration})
	}
	return s.planStore.Append(ctx, planlog.Record{
		RunID:      rep.RunID,
		Timestamp:  at,
		Instance:   instance,
		Cost:       rep.Cost,
		LowerBound: rep.LowerBound,
		Routes:     routes,
		Trials:     rep.Trials,
		ElapsedMS:  rep.Elapsed.Milliseconds(),
	})
}

func (s *Service) publishPlan(rep *solver.Report, instance string, at time.Time) {
	if s.publisher == nil {
		return
	}
	routes := make([][]int, 0, len(rep.Plan.Routes))
	for _, r := range rep.Plan.Routes {
		routes = append(routes, r.LoadIDs)
	}
	msgID, err := s.publisher.PublishPlan(publish.PlanMessage{
		RunID:    rep.RunID,
		Instance: instance,
		Cost:     rep.Cost,
		Routes:   routes,
		SolvedAt: at,
	})
	if err != nil {
		s.log.Errorf("publish plan: %v", err)
		return
	}
	if s.cfg.Publish.AckTimeoutSeconds > 0 {
		timeout := time.Duration(s.cfg.Publish.AckTimeoutSeconds) * time.Second
		if ok, err := s.publisher.WaitForAck(msgID, timeout); err != nil || !ok {
			s.log.Warnf("plan %s not acknowledged: %v", msgID, err)
		}
	}
}

// SetPublisher overrides the plan publisher. Tests use it to inject mocks.
func (s *Service) SetPublisher(p publish.Publisher) { s.publisher = p }

// BestUpdates returns a channel of best-cost improvements across runs.
func (s *Service) BestUpdates() <-chan events.BestEvent { return s.best.Subscribe() }

// KPIStore exposes the daily KPI aggregates.
func (s *Service) KPIStore() kpi.Store { return s.kpiStore }

// PlanStore exposes the plan log store.
func (s *Service) PlanStore() planlog.Store { return s.planStore }

// Run blocks until the context is cancelled, serving the Prometheus endpoint
// when one is configured.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.cancel()
	s.bus.Close()
	s.best.Close()
	var err error
	if s.planStore != nil {
		err = s.planStore.Close()
	}
	if c, ok := s.kpiStore.(interface{ Close() error }); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	if d, ok := s.publisher.(interface{ Disconnect() }); ok {
		d.Disconnect()
	}
	coremon.Flush(2 * time.Second)
	return err
}
