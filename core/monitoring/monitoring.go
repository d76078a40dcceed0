package monitoring

import (
	"sync/atomic"
	"time"
)

// Monitor receives solver and transport failures worth alerting on.
type Monitor interface {
	// Capture reports err together with routing tags such as the instance
	// name or the failing module.
	Capture(err error, tags map[string]string)
	// CapturePanic reports a recovered panic value.
	CapturePanic(v any)
	// Flush blocks until buffered reports are delivered or the timeout
	// passes.
	Flush(timeout time.Duration)
}

// NopMonitor drops every report. Active until Use installs a real monitor.
type NopMonitor struct{}

func (NopMonitor) Capture(error, map[string]string) {}
func (NopMonitor) CapturePanic(any)                 {}
func (NopMonitor) Flush(time.Duration)              {}

var current atomic.Pointer[Monitor]

func init() {
	var m Monitor = NopMonitor{}
	current.Store(&m)
}

// Use installs m as the process-wide monitor. A nil monitor is ignored.
func Use(m Monitor) {
	if m == nil {
		return
	}
	current.Store(&m)
}

// Capture reports err through the installed monitor.
func Capture(err error, tags map[string]string) {
	(*current.Load()).Capture(err, tags)
}

// Recover reports an in-flight panic and re-raises it. It must be deferred
// directly, as in:
//
//	defer monitoring.Recover()
func Recover() {
	if r := recover(); r != nil {
		m := *current.Load()
		m.CapturePanic(r)
		m.Flush(2 * time.Second)
		panic(r)
	}
}

// Flush drains buffered reports before shutdown.
func Flush(timeout time.Duration) {
	(*current.Load()).Flush(timeout)
}
