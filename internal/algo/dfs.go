package algo

import "context"

// dfsFrame is one level of the walk: a location's neighbors and the index
// of the next one to try.
type dfsFrame struct {
	nbs  []string
	next int
}

// DFSOrder returns the locations reachable from start in depth-first
// discovery order: the first neighbor is explored completely before the
// second is tried. An unknown start yields [start].
func DFSOrder(ctx context.Context, adj Adjacency, start string) ([]string, error) {
	visited := map[string]bool{start: true}
	order := []string{start}
	stack := []dfsFrame{{nbs: adj.Neighbors(start)}}

	for len(stack) > 0 {
		if err := cancelled(ctx); err != nil {
			return nil, err
		}

		top := &stack[len(stack)-1]
		if top.next == len(top.nbs) {
			stack = stack[:len(stack)-1]
			continue
		}
		nb := top.nbs[top.next]
		top.next++

		if visited[nb] {
			continue
		}
		visited[nb] = true
		order = append(order, nb)
		stack = append(stack, dfsFrame{nbs: adj.Neighbors(nb)})
	}
	return order, nil
}
