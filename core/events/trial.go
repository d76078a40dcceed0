package events

import "time"

// TrialEvent is published after every completed construction trial.
type TrialEvent struct {
	RunID  string
	Trial  int
	Cost   float64
	Routes int
	Took   time.Duration
}

// Baseline reports whether the trial was the unperturbed greedy pass.
func (e TrialEvent) Baseline() bool { return e.Trial == 0 }

// BestEvent is published when a trial improves the best known cost.
type BestEvent struct {
	RunID  string
	Trial  int
	Cost   float64
	Routes int
}

// SolvedEvent is published once per run with the final outcome.
type SolvedEvent struct {
	RunID   string
	Cost    float64
	Routes  int
	Trials  int
	Elapsed time.Duration
}
