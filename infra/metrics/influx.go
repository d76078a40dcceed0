package metrics

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/openfreight/loadplan/core/metrics"
	"github.com/openfreight/loadplan/infra/logger"
)

// writeTimeout bounds a single line-protocol write.
const writeTimeout = 5 * time.Second

// InfluxSink ships solver events to InfluxDB through the blocking write API.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink builds a sink for the given endpoint. The URL may be either
// the server base or the full write URL; the write suffix is stripped.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	opts := influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: writeTimeout})
	client := influxdb2.NewClientWithOptions(base, token, opts)
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback degrades to a NopSink when the endpoint fails the
// health probe, so an unreachable InfluxDB never blocks solving.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	if err := sink.ping(); err != nil {
		sink.log.Errorf("influx unreachable, metrics fall back to nop sink: %v", err)
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

func (s *InfluxSink) ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	health, err := s.client.Health(ctx)
	if err != nil {
		return err
	}
	if health.Status != "pass" {
		return fmt.Errorf("health status %s", health.Status)
	}
	return nil
}

// write sends the points sequentially under one deadline scaled to the batch.
func (s *InfluxSink) write(points ...*write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(len(points))*writeTimeout)
	defer cancel()
	for _, p := range points {
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordSolveResult writes the run summary point.
func (s *InfluxSink) RecordSolveResult(res coremetrics.SolveResult) error {
	return s.write(write.NewPointWithMeasurement("solve_result").
		AddTag("instance", res.Instance).
		AddTag("run_id", res.RunID).
		AddTag("component", "solver").
		AddField("cost", round3(res.Cost)).
		AddField("lower_bound", round3(res.LowerBound)).
		AddField("routes", res.Routes).
		AddField("loads", res.Loads).
		AddField("trials", res.Trials).
		AddField("best_trial", res.BestTrial).
		AddField("elapsed_ms", res.Elapsed.Milliseconds()).
		SetTime(res.SolvedAt))
}

// RecordTrial writes one search trial outcome.
func (s *InfluxSink) RecordTrial(ev coremetrics.TrialObservation) error {
	return s.write(write.NewPointWithMeasurement("search_trial").
		AddTag("run_id", ev.RunID).
		AddTag("improved", strconv.FormatBool(ev.Improved)).
		AddTag("component", "solver").
		AddField("trial", ev.Trial).
		AddField("cost", round3(ev.Cost)).
		AddField("routes", ev.Routes).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		SetTime(ev.Time))
}

// RecordRoutes writes one point per route of the latest plan.
func (s *InfluxSink) RecordRoutes(obs []coremetrics.RouteObservation) error {
	points := make([]*write.Point, 0, len(obs))
	for _, o := range obs {
		points = append(points, write.NewPointWithMeasurement("plan_route").
			AddTag("instance", o.Instance).
			AddTag("run_id", o.RunID).
			AddTag("route", strconv.Itoa(o.Route)).
			AddTag("component", "solver").
			AddField("loads", o.Loads).
			AddField("haul_minutes", round3(o.HaulMinutes)).
			AddField("deadhead_minutes", round3(o.DeadheadMinutes)).
			AddField("utilization", round3(o.Utilization())).
			SetTime(o.Time))
	}
	return s.write(points...)
}

// RecordInstance writes a point for a parsed problem instance.
func (s *InfluxSink) RecordInstance(ev coremetrics.InstanceEvent) error {
	return s.write(write.NewPointWithMeasurement("instance_parsed").
		AddTag("instance", ev.Instance).
		AddTag("component", "planner").
		AddField("loads", ev.Loads).
		SetTime(ev.Time))
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
