// Package events defines the solver events emitted on the event bus.
//
// Available event types:
//   - TrialEvent: one construction trial finished
//   - BestEvent: a trial improved the best known cost
//   - SolvedEvent: a search run completed
package events
