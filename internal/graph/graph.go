// Package graph holds the campus map: named locations joined by undirected
// corridors. A Graph is built once, validated, and never modified, so it
// can be read from any number of goroutines without locking.
//
// Neighbor order is kept exactly as authored. Traversals break ties by
// that order, so two maps with the same corridors in a different order are
// different maps.
package graph

import (
	"fmt"
	"math"
	"slices"

	"github.com/atharv3903/campusnav/internal/model"
)

// DefaultWeight is the cost of a corridor the map gives no weight for.
const DefaultWeight = 1.0

type edgeKey struct{ a, b string }

func keyOf(a, b string) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

type Graph struct {
	adj       map[string][]string
	sorted    []string
	weights   map[edgeKey]float64
	corridors []model.Corridor
}

// New validates data and builds the graph. Every failure wraps
// ErrConstruction and one of the specific sentinels in errors.go.
func New(data MapData) (*Graph, error) {
	g := &Graph{
		adj:     make(map[string][]string, len(data.Locations)),
		weights: make(map[edgeKey]float64),
	}

	for _, loc := range data.Locations {
		if loc.Name == "" {
			return nil, fmt.Errorf("%w: %w", ErrConstruction, ErrEmptyName)
		}
		if _, dup := g.adj[loc.Name]; dup {
			return nil, fmt.Errorf("%w: %w: %q", ErrConstruction, ErrDuplicateName, loc.Name)
		}
		g.adj[loc.Name] = slices.Clone(loc.Neighbors)
		if g.adj[loc.Name] == nil {
			g.adj[loc.Name] = []string{}
		}
		g.sorted = append(g.sorted, loc.Name)
	}
	slices.Sort(g.sorted)

	for _, loc := range data.Locations {
		seen := make(map[string]struct{}, len(loc.Neighbors))
		for _, nb := range loc.Neighbors {
			switch {
			case nb == loc.Name:
				return nil, fmt.Errorf("%w: %w: %q", ErrConstruction, ErrSelfLoop, nb)
			case !g.Has(nb):
				return nil, fmt.Errorf("%w: %w: %q lists %q", ErrConstruction, ErrUnknownNeighbor, loc.Name, nb)
			}
			if _, dup := seen[nb]; dup {
				return nil, fmt.Errorf("%w: %w: %q lists %q", ErrConstruction, ErrDuplicateEdge, loc.Name, nb)
			}
			seen[nb] = struct{}{}

			if !slices.Contains(g.adj[nb], loc.Name) {
				return nil, fmt.Errorf("%w: %w: %q lists %q but %q does not list %q",
					ErrConstruction, ErrAsymmetricEdge, loc.Name, nb, nb, loc.Name)
			}
		}
	}

	for _, c := range data.Corridors {
		if !g.Adjacent(c.From, c.To) {
			return nil, fmt.Errorf("%w: %w: %q -- %q", ErrConstruction, ErrUnknownCorridor, c.From, c.To)
		}
		if !(c.Weight > 0) || math.IsInf(c.Weight, 0) {
			return nil, fmt.Errorf("%w: %w: %q -- %q has %v", ErrConstruction, ErrInvalidWeight, c.From, c.To, c.Weight)
		}
		k := keyOf(c.From, c.To)
		if old, ok := g.weights[k]; ok && old != c.Weight {
			return nil, fmt.Errorf("%w: %w: %q -- %q has %v and %v",
				ErrConstruction, ErrConflictingWeight, c.From, c.To, old, c.Weight)
		}
		g.weights[k] = c.Weight
	}

	// each corridor once, in the order its first endpoint was authored
	listed := make(map[edgeKey]struct{})
	for _, loc := range data.Locations {
		for _, nb := range loc.Neighbors {
			k := keyOf(loc.Name, nb)
			if _, ok := listed[k]; ok {
				continue
			}
			listed[k] = struct{}{}
			w, ok := g.weights[k]
			if !ok {
				w = DefaultWeight
			}
			g.corridors = append(g.corridors, model.Corridor{From: loc.Name, To: nb, Weight: w})
		}
	}

	return g, nil
}

// Neighbors returns a copy of the authored neighbor list. Unknown and
// isolated locations have none.
func (g *Graph) Neighbors(loc string) []string {
	return slices.Clone(g.adj[loc])
}

// Has reports whether loc is a location on the map. Matching is exact.
func (g *Graph) Has(loc string) bool {
	_, ok := g.adj[loc]
	return ok
}

// Len is the number of locations.
func (g *Graph) Len() int { return len(g.sorted) }

// Locations returns every location in ascending order.
func (g *Graph) Locations() []string {
	return slices.Clone(g.sorted)
}

// Corridors returns every corridor once, with its effective weight.
func (g *Graph) Corridors() []model.Corridor {
	return slices.Clone(g.corridors)
}

// Adjacent reports whether a corridor joins a and b.
func (g *Graph) Adjacent(a, b string) bool {
	return slices.Contains(g.adj[a], b)
}

// Weight returns the cost of the corridor between a and b.
func (g *Graph) Weight(a, b string) (float64, bool) {
	if !g.Adjacent(a, b) {
		return 0, false
	}
	if w, ok := g.weights[keyOf(a, b)]; ok {
		return w, true
	}
	return DefaultWeight, true
}

// WeightedNeighbors returns the neighbors of loc in authored order paired
// with corridor weights.
func (g *Graph) WeightedNeighbors(loc string) []model.Corridor {
	nbs := g.adj[loc]
	out := make([]model.Corridor, 0, len(nbs))
	for _, nb := range nbs {
		w, _ := g.Weight(loc, nb)
		out = append(out, model.Corridor{From: loc, To: nb, Weight: w})
	}
	return out
}

// IsRoute reports whether path walks real corridors. A lone known location
// is a route; an empty path or the unreachable fallback [start, dest] is not.
func (g *Graph) IsRoute(path []string) bool {
	if len(path) == 0 {
		return false
	}
	if len(path) == 1 {
		return g.Has(path[0])
	}
	for i := 1; i < len(path); i++ {
		if !g.Adjacent(path[i-1], path[i]) {
			return false
		}
	}
	return true
}
