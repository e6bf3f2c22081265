// Package db loads a campus map from SQL storage. The map is read once at
// startup; nothing here is on the query path.
//
// Both backends use the same two tables:
//
//	locations (name, seq)                             -- seq is the authoring order
//	adjacency (location, neighbor, position, weight)  -- one row per direction
//
// position orders a location's neighbors. weight may be NULL, in which case
// the corridor gets the default weight.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atharv3903/campusnav/internal/graph"
)

// MapSource is anything a campus map can be loaded from.
type MapSource interface {
	LoadMap(ctx context.Context) (graph.MapData, error)
}

const (
	selectLocations = `SELECT name FROM locations ORDER BY seq`
	selectAdjacency = `SELECT location, neighbor, weight FROM adjacency ORDER BY location, position`
)

// adjRow is one directed half of a corridor.
type adjRow struct {
	Location string
	Neighbor string
	Weight   sql.NullFloat64
}

// Store reads the map from MySQL.
type Store struct {
	DB *sql.DB
}

func (s Store) LoadMap(ctx context.Context) (graph.MapData, error) {
	names, err := s.locations(ctx)
	if err != nil {
		return graph.MapData{}, err
	}

	rows, err := s.DB.QueryContext(ctx, selectAdjacency)
	if err != nil {
		return graph.MapData{}, fmt.Errorf("query adjacency: %w", err)
	}
	defer rows.Close()

	adj := make([]adjRow, 0, 64)
	for rows.Next() {
		var r adjRow
		if err := rows.Scan(&r.Location, &r.Neighbor, &r.Weight); err != nil {
			return graph.MapData{}, fmt.Errorf("scan adjacency: %w", err)
		}
		adj = append(adj, r)
	}
	if err := rows.Err(); err != nil {
		return graph.MapData{}, fmt.Errorf("read adjacency: %w", err)
	}

	return assemble(names, adj), nil
}

func (s Store) locations(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, selectLocations)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 32)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read locations: %w", err)
	}
	return names, nil
}

// SaveMap replaces the stored map with data in one transaction.
func (s Store) SaveMap(ctx context.Context, data graph.MapData) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, stmt := range []string{`DELETE FROM adjacency`, `DELETE FROM locations`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear map: %w", err)
		}
	}

	weights := weightIndex(data)
	for seq, loc := range data.Locations {
		if _, err := tx.ExecContext(ctx, `INSERT INTO locations (name, seq) VALUES (?, ?)`, loc.Name, seq); err != nil {
			return fmt.Errorf("insert location %q: %w", loc.Name, err)
		}
		for pos, nb := range loc.Neighbors {
			w, ok := weights[[2]string{loc.Name, nb}]
			_, err := tx.ExecContext(ctx,
				`INSERT INTO adjacency (location, neighbor, position, weight) VALUES (?, ?, ?, ?)`,
				loc.Name, nb, pos, sql.NullFloat64{Float64: w, Valid: ok})
			if err != nil {
				return fmt.Errorf("insert corridor %q -> %q: %w", loc.Name, nb, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// assemble turns rows into MapData. Rows must already be grouped by
// location and sorted by position. A location that only appears in
// adjacency rows is still declared, so New can report it.
func assemble(names []string, rows []adjRow) graph.MapData {
	idx := make(map[string]int, len(names))
	data := graph.MapData{Locations: make([]graph.LocationEntry, 0, len(names))}
	for _, n := range names {
		idx[n] = len(data.Locations)
		data.Locations = append(data.Locations, graph.LocationEntry{Name: n})
	}

	for _, r := range rows {
		i, ok := idx[r.Location]
		if !ok {
			i = len(data.Locations)
			idx[r.Location] = i
			data.Locations = append(data.Locations, graph.LocationEntry{Name: r.Location})
		}
		data.Locations[i].Neighbors = append(data.Locations[i].Neighbors, r.Neighbor)
		if r.Weight.Valid {
			data.Corridors = append(data.Corridors, graph.CorridorWeight{
				From:   r.Location,
				To:     r.Neighbor,
				Weight: r.Weight.Float64,
			})
		}
	}
	return data
}

// weightIndex maps both directions of every weighted corridor.
func weightIndex(data graph.MapData) map[[2]string]float64 {
	out := make(map[[2]string]float64, 2*len(data.Corridors))
	for _, c := range data.Corridors {
		out[[2]string{c.From, c.To}] = c.Weight
		out[[2]string{c.To, c.From}] = c.Weight
	}
	return out
}
