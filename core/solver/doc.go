package solver

// Package solver builds delivery plans for pickup and dropoff problems.
// Greedy constructs a single deterministic plan by chaining each route's
// next pickup to the previous dropoff. Searcher wraps the same construction
// in randomized restarts that promote alternative near neighbors, keeping
// the cheapest plan found within an iteration or wall clock budget.
// LowerBound supplies a relaxation used to report optimality gaps.
