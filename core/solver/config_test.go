package solver

import (
	"runtime"
	"testing"
)

func TestConfigSetDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	if c.DriverCost != 500 {
		t.Fatalf("driver cost default: got %f", c.DriverCost)
	}
	if c.TopK != 3 {
		t.Fatalf("top k default: got %d", c.TopK)
	}
	if c.FirstPickBias != 0.3 {
		t.Fatalf("bias default: got %f", c.FirstPickBias)
	}
	if c.Workers != runtime.NumCPU() {
		t.Fatalf("workers default: got %d", c.Workers)
	}
	if c.MaxRouteMinutes != 0 {
		t.Fatal("route limit must not be defaulted")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{MaxRouteMinutes: 720, DriverCost: 500, MaxTrials: 10, TopK: 3, FirstPickBias: 0.3, Workers: 2}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"missing route limit", func(c *Config) { c.MaxRouteMinutes = 0 }},
		{"negative route limit", func(c *Config) { c.MaxRouteMinutes = -1 }},
		{"no budget", func(c *Config) { c.MaxTrials = 0; c.TimeBudgetMS = 0 }},
		{"negative trials", func(c *Config) { c.MaxTrials = -1 }},
		{"negative time budget", func(c *Config) { c.TimeBudgetMS = -5 }},
		{"zero top k", func(c *Config) { c.TopK = 0 }},
		{"bias above one", func(c *Config) { c.FirstPickBias = 1.5 }},
		{"bias below zero", func(c *Config) { c.FirstPickBias = -0.1 }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mut(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
