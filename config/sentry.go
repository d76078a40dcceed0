package config

// SentryConfig wires error reporting. An empty DSN leaves reporting off and
// the rest of the section ignored.
type SentryConfig struct {
	DSN         string `json:"dsn"`
	Environment string `json:"environment"`
	Release     string `json:"release"`
	// TracesSampleRate is passed through to the SDK; zero disables tracing.
	TracesSampleRate float64 `json:"traces_sample_rate"`
}

// Enabled reports whether a reporting endpoint was configured.
func (c SentryConfig) Enabled() bool {
	return c.DSN != ""
}
