package metrics

// Package metrics defines interfaces and implementations for collecting
// solver metrics. Sinks like PromSink and InfluxSink record events such
// as finished runs or individual trials and can be combined with
// NewMultiSink. Helper functions expose Prometheus metrics and collect
// events from the internal event bus.
