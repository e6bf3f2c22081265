package navigator

import "errors"

var (
	// ErrInvalidAlgorithm is returned when a traversal other than bfs or dfs
	// is requested.
	ErrInvalidAlgorithm = errors.New("navigator: invalid algorithm")

	// ErrUnknownLocation is returned by weighted routing when an endpoint is
	// not on the map.
	ErrUnknownLocation = errors.New("navigator: unknown location")

	// ErrNoRoute is returned by weighted routing when no corridors connect
	// the two endpoints.
	ErrNoRoute = errors.New("navigator: no route between locations")
)
