// Package algo implements the traversals run against the campus map:
// breadth-first order and hop-count paths, depth-first order, weighted
// shortest paths and minimum spanning trees.
//
// Every function allocates its own queue and visited set and only reads
// from the adjacency it is given, so calls may run concurrently against
// one shared map.
package algo

import (
	"context"

	"github.com/atharv3903/campusnav/internal/model"
)

// Adjacency yields the ordered neighbors of a location. Unknown locations
// have no neighbors.
type Adjacency interface {
	Neighbors(loc string) []string
}

// WeightedAdjacency additionally knows corridor weights.
type WeightedAdjacency interface {
	Has(loc string) bool
	WeightedNeighbors(loc string) []model.Corridor
}

func cancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
