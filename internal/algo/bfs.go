package algo

import "context"

// PathResult is the outcome of a hop-count path search. When Found is
// false, Path is the two-node fallback [start, dest] and does not follow
// real corridors.
type PathResult struct {
	Path  []string
	Found bool
}

// Hops is the number of corridors walked.
func (r PathResult) Hops() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// BFSOrder returns the locations reachable from start in breadth-first
// visiting order. A location may sit in the queue more than once; it is
// visited the first time it is dequeued. An unknown start yields [start].
func BFSOrder(ctx context.Context, adj Adjacency, start string) ([]string, error) {
	queue := []string{start}
	visited := make(map[string]bool)
	order := make([]string, 0, 8)

	for len(queue) > 0 {
		if err := cancelled(ctx); err != nil {
			return nil, err
		}

		node := queue[0]
		queue = queue[1:]
		if visited[node] {
			continue
		}
		visited[node] = true
		order = append(order, node)

		for _, nb := range adj.Neighbors(node) {
			if !visited[nb] {
				queue = append(queue, nb)
			}
		}
	}
	return order, nil
}

// BFSPath searches breadth-first over partial paths and returns the first
// one that ends at dest, which has the fewest hops. Ties go to the path
// whose branches come first in neighbor order. If dest cannot be reached
// the result is [start, dest] with Found unset.
func BFSPath(ctx context.Context, adj Adjacency, start, dest string) (PathResult, error) {
	if start == dest {
		return PathResult{Path: []string{start}, Found: true}, nil
	}

	queue := [][]string{{start}}
	visited := make(map[string]bool)

	for len(queue) > 0 {
		if err := cancelled(ctx); err != nil {
			return PathResult{}, err
		}

		path := queue[0]
		queue = queue[1:]
		node := path[len(path)-1]

		if node == dest {
			return PathResult{Path: path, Found: true}, nil
		}
		if visited[node] {
			continue
		}
		visited[node] = true

		for _, nb := range adj.Neighbors(node) {
			if visited[nb] {
				continue
			}
			next := make([]string, len(path)+1)
			copy(next, path)
			next[len(path)] = nb
			queue = append(queue, next)
		}
	}

	return PathResult{Path: []string{start, dest}}, nil
}
