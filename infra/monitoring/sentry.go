package monitoring

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/openfreight/loadplan/config"
	coremon "github.com/openfreight/loadplan/core/monitoring"
)

// NewSentryMonitor initialises the Sentry SDK from cfg and returns a Monitor
// backed by it. A disabled section yields a NopMonitor.
func NewSentryMonitor(cfg config.SentryConfig) (coremon.Monitor, error) {
	if !cfg.Enabled() {
		return coremon.NopMonitor{}, nil
	}
	opts := sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		TracesSampleRate: cfg.TracesSampleRate,
		AttachStacktrace: true,
	}
	if err := sentry.Init(opts); err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}
	return sentryMonitor{}, nil
}

type sentryMonitor struct{}

// Capture reports err under the given tags. Nil errors are dropped here so
// call sites can forward results unconditionally.
func (sentryMonitor) Capture(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		sentry.CaptureException(err)
	})
}

func (sentryMonitor) CapturePanic(v any) {
	sentry.CurrentHub().Recover(v)
}

func (sentryMonitor) Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
