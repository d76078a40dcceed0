package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/openfreight/loadplan/core/metrics"
	"github.com/openfreight/loadplan/core/solver"
	"github.com/openfreight/loadplan/infra/mqtt"
)

// DefaultShiftMinutes is the route duration limit applied when the file does
// not set one: a 12 hour driver shift.
const DefaultShiftMinutes = 12 * 60

// DefaultTimeBudgetMS bounds the search when the file sets neither a trial
// budget nor a wall-clock budget.
const DefaultTimeBudgetMS = 30000

type Config struct {
	Solver  solver.Config  `json:"solver"`
	PlanLog PlanLogConfig  `json:"plan_log"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    mqtt.Config    `json:"mqtt"`
	Publish PublishConfig  `json:"publish"`
	Sentry  SentryConfig   `json:"sentry"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("LP_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "lp_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is supplied: a 12 hour
// shift, a 30 second search budget, and every optional integration disabled.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Solver.MaxRouteMinutes == 0 {
		c.Solver.MaxRouteMinutes = DefaultShiftMinutes
	}
	if c.Solver.MaxTrials == 0 && c.Solver.TimeBudgetMS == 0 {
		c.Solver.TimeBudgetMS = DefaultTimeBudgetMS
	}
	c.Solver.SetDefaults()
	c.PlanLog.SetDefaults()
	c.Metrics.SetDefaults()
}

func (c *Config) validate() error {
	if err := c.Solver.Validate(); err != nil {
		return err
	}
	if err := c.PlanLog.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Publish.Validate(); err != nil {
		return err
	}
	if c.Publish.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("publish enabled but mqtt broker is missing")
	}
	return nil
}
