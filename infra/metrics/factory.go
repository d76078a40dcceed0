package metrics

import (
	coremetrics "github.com/openfreight/loadplan/core/metrics"
	"github.com/openfreight/loadplan/infra/logger"
)

// NewSink builds the metrics sink described by the configuration. Disabled
// backends yield a NopSink; multiple enabled backends are combined with
// NewMultiSink.
func NewSink(cfg coremetrics.Config, log logger.Logger) (coremetrics.MetricsSink, error) {
	var sinks []coremetrics.MetricsSink
	if cfg.PrometheusEnabled {
		ps, err := NewPromSink(cfg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, ps)
	}
	if cfg.InfluxEnabled {
		is := NewInfluxSinkWithFallback(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
		if _, ok := is.(coremetrics.NopSink); ok && log != nil {
			log.Warnf("influx unreachable, metrics fall back to nop sink")
		}
		sinks = append(sinks, is)
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
