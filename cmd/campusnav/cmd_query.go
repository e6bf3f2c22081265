package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atharv3903/campusnav/internal/model"
	"github.com/atharv3903/campusnav/internal/navigator"
)

// loadNavigator loads the configured map. One-shot commands run uncached.
func (a *app) loadNavigator(ctx context.Context) (*navigator.Service, error) {
	g, err := loadGraph(ctx, a.cfg.Map, a.log)
	if err != nil {
		return nil, err
	}
	return navigator.New(g, nil, a.log), nil
}

func (a *app) newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path <start> <end>",
		Short: "Fewest-hop route between two locations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.loadNavigator(cmd.Context())
			if err != nil {
				return err
			}
			r, err := nav.ShortestPath(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.output(cmd.OutOrStdout(), model.RouteResponse{
				Path:     r.Path,
				HopCount: r.HopCount,
				Found:    r.Found,
			}, []string{"STEP", "LOCATION"}, stepRows(r.Path))
		},
	}
	a.cfg.Map.BindFlags(cmd.Flags())
	return cmd
}

func (a *app) newWeightedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weighted <start> <end>",
		Short: "Shortest route by corridor length",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.loadNavigator(cmd.Context())
			if err != nil {
				return err
			}
			r, err := nav.WeightedPath(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.output(cmd.OutOrStdout(), model.WeightedRouteResponse{
				Path:          r.Path,
				Distance:      r.Distance,
				ExploredNodes: r.Explored,
			}, []string{"STEP", "LOCATION"}, stepRows(r.Path))
		},
	}
	a.cfg.Map.BindFlags(cmd.Flags())
	return cmd
}

func (a *app) newTraverseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traverse <bfs|dfs> <start> [destination]",
		Short: "Visiting order of a breadth- or depth-first traversal",
		Long: "Prints the order in which a traversal from start visits the map.\n" +
			"A bfs traversal with a destination prints the fewest-hop route instead.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dest string
			if len(args) == 3 {
				dest = args[2]
			}

			nav, err := a.loadNavigator(cmd.Context())
			if err != nil {
				return err
			}
			t, err := nav.TraversalOrder(cmd.Context(), args[0], args[1], dest)
			if err != nil {
				return err
			}

			resp := model.TraversalResponse{Algorithm: t.Algorithm, Start: t.Start, Order: t.Order, Path: t.Path}
			steps := t.Order
			if t.Path != nil {
				found := t.Found
				resp.Found = &found
				steps = t.Path
			}
			return a.output(cmd.OutOrStdout(), resp, []string{"STEP", "LOCATION"}, stepRows(steps))
		},
	}
	a.cfg.Map.BindFlags(cmd.Flags())
	return cmd
}

func (a *app) newMSTCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mst",
		Short: "Minimum spanning tree of the corridors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.loadNavigator(cmd.Context())
			if err != nil {
				return err
			}
			tree, err := nav.SpanningTree(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(tree.Corridors))
			for _, c := range tree.Corridors {
				rows = append(rows, []string{c.From, c.To, strconv.FormatFloat(c.Weight, 'f', -1, 64)})
			}
			rows = append(rows, []string{"", "total", strconv.FormatFloat(tree.TotalWeight, 'f', -1, 64)})

			return a.output(cmd.OutOrStdout(), model.SpanningTreeResponse{
				Algorithm:   "mst",
				Corridors:   tree.Corridors,
				TotalWeight: tree.TotalWeight,
			}, []string{"FROM", "TO", "WEIGHT"}, rows)
		},
	}
	a.cfg.Map.BindFlags(cmd.Flags())
	return cmd
}

func (a *app) newLocationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List every location on the map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.loadNavigator(cmd.Context())
			if err != nil {
				return err
			}
			locs := nav.Locations()

			rows := make([][]string, 0, len(locs))
			for _, l := range locs {
				rows = append(rows, []string{l, strings.Join(nav.Graph().Neighbors(l), ", ")})
			}
			return a.output(cmd.OutOrStdout(), model.LocationsResponse{Locations: locs, Count: len(locs)},
				[]string{"LOCATION", "NEIGHBORS"}, rows)
		},
	}
	a.cfg.Map.BindFlags(cmd.Flags())
	return cmd
}

func (a *app) newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Look a location up by name or prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.loadNavigator(cmd.Context())
			if err != nil {
				return err
			}
			res := nav.Search(args[0])
			return a.output(cmd.OutOrStdout(), model.SearchResponse{
				Query:       res.Query,
				Found:       res.Found,
				Suggestions: res.Suggestions,
			}, nil, nil)
		},
	}
	a.cfg.Map.BindFlags(cmd.Flags())
	return cmd
}

type validateReport struct {
	Source      string   `json:"source"`
	Locations   int      `json:"locations"`
	Corridors   int      `json:"corridors"`
	Connected   bool     `json:"connected"`
	Unreachable []string `json:"unreachable,omitempty"`
}

func (a *app) newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the map, check it and report its shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.loadNavigator(cmd.Context())
			if err != nil {
				return err
			}
			g := nav.Graph()
			rep := validateReport{
				Source:    a.cfg.Map.Source,
				Locations: g.Len(),
				Corridors: len(g.Corridors()),
				Connected: true,
			}

			if locs := g.Locations(); len(locs) > 0 {
				t, err := nav.TraversalOrder(cmd.Context(), navigator.AlgorithmBFS, locs[0], "")
				if err != nil {
					return err
				}
				seen := make(map[string]bool, len(t.Order))
				for _, l := range t.Order {
					seen[l] = true
				}
				for _, l := range locs {
					if !seen[l] {
						rep.Unreachable = append(rep.Unreachable, l)
					}
				}
				rep.Connected = len(rep.Unreachable) == 0
			}
			return a.output(cmd.OutOrStdout(), rep, nil, nil)
		},
	}
	a.cfg.Map.BindFlags(cmd.Flags())
	return cmd
}

func stepRows(path []string) [][]string {
	rows := make([][]string, len(path))
	for i, loc := range path {
		rows[i] = []string{fmt.Sprint(i), loc}
	}
	return rows
}
