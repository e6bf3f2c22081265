package algo

import (
	"container/heap"
	"context"
)

type pqItem struct {
	node string
	dist float64
}

type pq []pqItem

func (p pq) Len() int           { return len(p) }
func (p pq) Less(i, j int) bool { return p[i].dist < p[j].dist }
func (p pq) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

func (p *pq) Push(x any) {
	*p = append(*p, x.(pqItem))
}

func (p *pq) Pop() any {
	old := *p
	n := len(old)
	item := old[n-1]
	*p = old[:n-1]
	return item
}

// Dijkstra finds the cheapest walk from src to dst by corridor weight. It
// returns the path, its total weight and the number of locations settled.
// The path is nil when either end is unknown or dst cannot be reached.
func Dijkstra(ctx context.Context, g WeightedAdjacency, src, dst string) ([]string, float64, int, error) {
	if !g.Has(src) || !g.Has(dst) {
		return nil, 0, 0, nil
	}
	if src == dst {
		return []string{src}, 0, 0, nil
	}

	dist := map[string]float64{src: 0}
	prev := map[string]string{}
	pq := &pq{}
	heap.Push(pq, pqItem{node: src, dist: 0})
	explored := 0

	for pq.Len() > 0 {
		if err := cancelled(ctx); err != nil {
			return nil, 0, explored, err
		}

		cur := heap.Pop(pq).(pqItem)
		u := cur.node

		// stale entry, u was settled through a cheaper corridor
		if cur.dist > dist[u] {
			continue
		}
		if u == dst {
			break
		}

		explored++

		for _, e := range g.WeightedNeighbors(u) {
			nd := dist[u] + e.Weight

			old, found := dist[e.To]

			if !found || nd < old {
				dist[e.To] = nd
				prev[e.To] = u
				heap.Push(pq, pqItem{node: e.To, dist: nd})
			}
		}
	}

	if _, ok := dist[dst]; !ok {
		return nil, 0, explored, nil
	}

	// reconstruct
	path := []string{}
	cur := dst

	for cur != src {
		path = append(path, cur)
		cur = prev[cur]
	}
	path = append(path, src)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, dist[dst], explored, nil
}
