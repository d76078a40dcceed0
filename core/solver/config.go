package solver

import (
	"fmt"
	"runtime"

	"github.com/openfreight/loadplan/core/model"
)

// Config holds the solve parameters shared by the CLI, the service and the
// QA harness.
type Config struct {
	// MaxRouteMinutes caps each driver's total route duration. There is no
	// built-in value; callers must supply the shift length.
	MaxRouteMinutes float64 `json:"max_route_minutes"`
	// DriverCost is the fixed fee per route in the cost formula.
	DriverCost float64 `json:"driver_cost"`
	// MaxTrials bounds the number of construction trials, counting the
	// greedy baseline. Zero leaves the wall-clock budget in charge.
	MaxTrials int `json:"max_trials"`
	// TimeBudgetMS bounds the wall-clock search time in milliseconds. Zero
	// leaves the trial budget in charge.
	TimeBudgetMS int `json:"time_budget_ms"`
	// Seed fixes the perturbation draws for reproducible runs. Zero draws a
	// seed from the clock; the chosen seed is reported either way.
	Seed int64 `json:"seed"`
	// TopK is the number of nearest neighbors eligible as a promoted first
	// pick.
	TopK int `json:"top_k"`
	// FirstPickBias is the per-load probability of promoting a first pick.
	FirstPickBias float64 `json:"first_pick_bias"`
	// Workers is the number of concurrent trial workers.
	Workers int `json:"workers"`
}

// SetDefaults fills unset tuning parameters. The duration limit and the
// search budget are deliberately left alone: both are required inputs.
func (c *Config) SetDefaults() {
	if c.DriverCost == 0 {
		c.DriverCost = model.DefaultDriverCost
	}
	if c.TopK == 0 {
		c.TopK = 3
	}
	if c.FirstPickBias == 0 {
		c.FirstPickBias = 0.3
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate checks mandatory fields and ranges.
func (c Config) Validate() error {
	if c.MaxRouteMinutes <= 0 {
		return fmt.Errorf("max_route_minutes is required")
	}
	if c.DriverCost < 0 {
		return fmt.Errorf("driver_cost must be non-negative")
	}
	if c.MaxTrials < 0 {
		return fmt.Errorf("max_trials must be non-negative")
	}
	if c.TimeBudgetMS < 0 {
		return fmt.Errorf("time_budget_ms must be non-negative")
	}
	if c.MaxTrials == 0 && c.TimeBudgetMS == 0 {
		return fmt.Errorf("either max_trials or time_budget_ms must be set")
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1")
	}
	if c.FirstPickBias < 0 || c.FirstPickBias > 1 {
		return fmt.Errorf("first_pick_bias must be within [0,1]")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	return nil
}
