package model

import "errors"

var (
	// ErrInvalidLoad is returned when a load is rejected at problem
	// construction, for example because of non-finite coordinates or a
	// duplicate ID.
	ErrInvalidLoad = errors.New("invalid load")

	// ErrInfeasible is returned when a load cannot be served within the
	// route duration limit even on a route of its own.
	ErrInfeasible = errors.New("load infeasible within duration limit")

	// ErrNoLoads is returned when a problem is built without any loads.
	ErrNoLoads = errors.New("problem has no loads")
)
