package algo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharv3903/campusnav/internal/algo"
	"github.com/atharv3903/campusnav/internal/graph"
)

func reference(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Reference()
	require.NoError(t, err)
	return g
}

// diamond: A-B, A-C, B-D, C-D, plus an island E.
func diamond(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(graph.MapData{
		Locations: []graph.LocationEntry{
			{Name: "A", Neighbors: []string{"B", "C"}},
			{Name: "B", Neighbors: []string{"A", "D"}},
			{Name: "C", Neighbors: []string{"A", "D"}},
			{Name: "D", Neighbors: []string{"B", "C"}},
			{Name: "E"},
		},
		Corridors: []graph.CorridorWeight{
			{From: "A", To: "B", Weight: 5},
			{From: "A", To: "C", Weight: 1},
			{From: "B", To: "D", Weight: 1},
			{From: "C", To: "D", Weight: 1},
		},
	})
	require.NoError(t, err)
	return g
}

// hopDistances is a layered BFS used as an oracle for path lengths.
func hopDistances(g *graph.Graph, start string) map[string]int {
	dist := map[string]int{start: 0}
	frontier := []string{start}
	for len(frontier) > 0 {
		var next []string
		for _, n := range frontier {
			for _, nb := range g.Neighbors(n) {
				if _, ok := dist[nb]; !ok {
					dist[nb] = dist[n] + 1
					next = append(next, nb)
				}
			}
		}
		frontier = next
	}
	return dist
}

func TestBFSOrder_Reference(t *testing.T) {
	g := reference(t)
	order, err := algo.BFSOrder(context.Background(), g, "Lab01")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Lab01", "NetEngLab", "HarrisonHall", "ComputingOffice", "Library", "ComputingLab",
		"BusinessOffice", "EngineeringSection", "TeachersOffices", "LectureHall4", "LectureHallA",
		"LectureHallB", "LectureHall7_10", "Stairs_B1_GF", "LectureHall5", "StudyArea", "OutsideArea",
		"PaymentOffice", "LectureHall6", "B2_F2", "LectureHall3", "Auditorium", "B2_F1",
		"AssistantsOffice", "B2_GF", "LectureHall1", "Stairs_B2_GF", "LectureHall2", "Cafeteria",
	}, order)
}

func TestBFSOrder_Diamond(t *testing.T) {
	order, err := algo.BFSOrder(context.Background(), diamond(t), "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, order)
}

func TestBFSOrder_UnknownAndIsolated(t *testing.T) {
	g := diamond(t)
	ctx := context.Background()

	order, err := algo.BFSOrder(ctx, g, "Gymnasium")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gymnasium"}, order)

	order, err = algo.BFSOrder(ctx, g, "E")
	require.NoError(t, err)
	assert.Equal(t, []string{"E"}, order)
}

func TestBFSPath_Reference(t *testing.T) {
	g := reference(t)
	ctx := context.Background()

	res, err := algo.BFSPath(ctx, g, "Cafeteria", "Library")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, []string{
		"Cafeteria", "Stairs_B2_GF", "B2_GF", "B2_F1", "B2_F2",
		"StudyArea", "LectureHallA", "BusinessOffice", "Library",
	}, res.Path)
	assert.Equal(t, 8, res.Hops())

	res, err = algo.BFSPath(ctx, g, "Lab01", "Auditorium")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Lab01", "NetEngLab", "HarrisonHall", "ComputingOffice", "Library",
		"BusinessOffice", "LectureHallA", "StudyArea", "B2_F2", "Auditorium",
	}, res.Path)
}

func TestBFSPath_TieGoesToFirstNeighbor(t *testing.T) {
	res, err := algo.BFSPath(context.Background(), diamond(t), "A", "D")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, res.Path)
}

func TestBFSPath_EdgeCases(t *testing.T) {
	g := diamond(t)
	ctx := context.Background()

	cases := []struct {
		name        string
		start, dest string
		want        []string
		found       bool
	}{
		{"same node", "A", "A", []string{"A"}, true},
		{"same unknown node", "Gym", "Gym", []string{"Gym"}, true},
		{"unreachable", "A", "E", []string{"A", "E"}, false},
		{"unknown destination", "A", "Gym", []string{"A", "Gym"}, false},
		{"unknown start", "Gym", "A", []string{"Gym", "A"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := algo.BFSPath(ctx, g, tc.start, tc.dest)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Path)
			assert.Equal(t, tc.found, res.Found)
		})
	}
}

func TestBFSPath_MinimalForAllPairs(t *testing.T) {
	g := reference(t)
	ctx := context.Background()

	for _, a := range g.Locations() {
		dist := hopDistances(g, a)
		for _, b := range g.Locations() {
			res, err := algo.BFSPath(ctx, g, a, b)
			require.NoError(t, err)
			require.True(t, res.Found, "%s -> %s", a, b)
			assert.True(t, g.IsRoute(res.Path), "%s -> %s: %v", a, b, res.Path)
			assert.Equal(t, dist[b], res.Hops(), "%s -> %s", a, b)
			assert.Equal(t, a, res.Path[0])
			assert.Equal(t, b, res.Path[len(res.Path)-1])
		}
	}
}

func TestOrders_VisitEachReachableOnce(t *testing.T) {
	g := reference(t)
	ctx := context.Background()

	for _, start := range g.Locations() {
		for name, fn := range map[string]func(context.Context, algo.Adjacency, string) ([]string, error){
			"bfs": algo.BFSOrder,
			"dfs": algo.DFSOrder,
		} {
			order, err := fn(ctx, g, start)
			require.NoError(t, err)
			assert.Equal(t, start, order[0], name)
			assert.ElementsMatch(t, g.Locations(), order, "%s from %s", name, start)
		}
	}
}

func TestDFSOrder_Reference(t *testing.T) {
	g := reference(t)
	ctx := context.Background()

	order, err := algo.DFSOrder(ctx, g, "Library")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Library", "BusinessOffice", "LectureHall4", "Stairs_B1_GF",
		"PaymentOffice", "LectureHall3", "AssistantsOffice", "LectureHall1",
		"LectureHall2", "Cafeteria", "Stairs_B2_GF", "B2_GF", "B2_F1",
		"B2_F2", "Auditorium", "StudyArea", "LectureHallA", "LectureHallB",
		"OutsideArea", "LectureHall7_10", "LectureHall5", "LectureHall6",
		"EngineeringSection", "ComputingOffice", "ComputingLab",
		"TeachersOffices", "HarrisonHall", "NetEngLab", "Lab01",
	}, order)

	order, err = algo.DFSOrder(ctx, g, "Cafeteria")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Cafeteria", "Stairs_B2_GF", "B2_GF", "B2_F1", "B2_F2", "Auditorium",
		"StudyArea", "LectureHallA", "BusinessOffice", "LectureHall4", "Stairs_B1_GF",
		"PaymentOffice", "LectureHall3", "AssistantsOffice", "LectureHall1", "LectureHall2",
		"LectureHall5", "LectureHall6", "LectureHallB", "LectureHall7_10", "OutsideArea",
		"Library", "EngineeringSection", "ComputingOffice", "ComputingLab", "TeachersOffices",
		"HarrisonHall", "NetEngLab", "Lab01",
	}, order)
}

func TestDFSOrder_Diamond(t *testing.T) {
	g := diamond(t)
	ctx := context.Background()

	order, err := algo.DFSOrder(ctx, g, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D", "C"}, order)

	order, err = algo.DFSOrder(ctx, g, "E")
	require.NoError(t, err)
	assert.Equal(t, []string{"E"}, order)

	order, err = algo.DFSOrder(ctx, g, "Gymnasium")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gymnasium"}, order)
}

func TestDeterministic(t *testing.T) {
	g := reference(t)
	ctx := context.Background()

	first, err := algo.DFSOrder(ctx, g, "B2_F2")
	require.NoError(t, err)
	firstPath, err := algo.BFSPath(ctx, g, "TeachersOffices", "LectureHall6")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := algo.DFSOrder(ctx, g, "B2_F2")
		require.NoError(t, err)
		assert.Equal(t, first, again)

		againPath, err := algo.BFSPath(ctx, g, "TeachersOffices", "LectureHall6")
		require.NoError(t, err)
		assert.Equal(t, firstPath, againPath)
	}
}

func TestCancelled(t *testing.T) {
	g := reference(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := algo.BFSOrder(ctx, g, "Lab01")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = algo.BFSPath(ctx, g, "Lab01", "Cafeteria")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = algo.DFSOrder(ctx, g, "Lab01")
	assert.ErrorIs(t, err, context.Canceled)
	_, _, _, err = algo.Dijkstra(ctx, g, "Lab01", "Cafeteria")
	assert.ErrorIs(t, err, context.Canceled)
	_, _, err = algo.Kruskal(ctx, g.Locations(), g.Corridors())
	assert.ErrorIs(t, err, context.Canceled)
}
