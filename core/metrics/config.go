package metrics

import "fmt"

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`

	InfluxEnabled bool   `json:"influx_enabled"`
	InfluxURL     string `json:"influx_url"`
	InfluxToken   string `json:"influx_token"`
	InfluxOrg     string `json:"influx_org"`
	InfluxBucket  string `json:"influx_bucket"`

	// KPIPath persists daily KPI aggregates to a SQLite database when set.
	// Empty keeps them in memory for the lifetime of the process.
	KPIPath string `json:"kpi_path"`
}

// SetDefaults fills optional fields with sane values.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

// Validate checks that enabled sinks carry the settings they need.
func (c *Config) Validate() error {
	if c.InfluxEnabled {
		if c.InfluxURL == "" {
			return fmt.Errorf("metrics: influx_url required when influx is enabled")
		}
		if c.InfluxBucket == "" {
			return fmt.Errorf("metrics: influx_bucket required when influx is enabled")
		}
	}
	return nil
}
