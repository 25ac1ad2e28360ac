package provider

import "errors"

var (
	// ErrRouteUnavailable is returned when the routing provider cannot be
	// reached or answers with an error status.
	ErrRouteUnavailable = errors.New("routing service unavailable")

	// ErrNoRoute is returned when the routing provider answered but found
	// no route between the requested points.
	ErrNoRoute = errors.New("no route found")
)
