package algo

import (
	"context"
	"sort"

	"github.com/atharv3903/campusnav/internal/model"
)

// disjointSet is union-find with path compression and union by rank.
type disjointSet struct {
	parent map[string]string
	rank   map[string]int
}

func newDisjointSet(items []string) *disjointSet {
	ds := &disjointSet{
		parent: make(map[string]string, len(items)),
		rank:   make(map[string]int, len(items)),
	}
	for _, it := range items {
		ds.parent[it] = it
	}
	return ds
}

func (ds *disjointSet) find(x string) string {
	if _, ok := ds.parent[x]; !ok {
		ds.parent[x] = x
	}
	root := x
	for ds.parent[root] != root {
		root = ds.parent[root]
	}
	for ds.parent[x] != root {
		next := ds.parent[x]
		ds.parent[x] = root
		x = next
	}
	return root
}

// union joins the sets holding a and b and reports whether they were
// separate.
func (ds *disjointSet) union(a, b string) bool {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return false
	}
	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ds.parent[ra] = rb
	case ds.rank[ra] > ds.rank[rb]:
		ds.parent[rb] = ra
	default:
		ds.parent[rb] = ra
		ds.rank[ra]++
	}
	return true
}

// Kruskal returns a minimum spanning forest over the given corridors and
// its total weight. Corridors of equal weight are considered in the order
// given, so the result is deterministic.
func Kruskal(ctx context.Context, locations []string, corridors []model.Corridor) ([]model.Corridor, float64, error) {
	sorted := make([]model.Corridor, len(corridors))
	copy(sorted, corridors)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Weight < sorted[j].Weight })

	ds := newDisjointSet(locations)
	tree := make([]model.Corridor, 0, len(locations))
	total := 0.0

	for _, c := range sorted {
		if err := cancelled(ctx); err != nil {
			return nil, 0, err
		}
		if ds.union(c.From, c.To) {
			tree = append(tree, c)
			total += c.Weight
		}
	}
	return tree, total, nil
}
