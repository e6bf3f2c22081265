package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atharv3903/campusnav/internal/graph"
)

// PGStore reads the map from PostgreSQL.
type PGStore struct {
	Pool *pgxpool.Pool
}

// OpenPG connects to dsn and checks the connection.
func OpenPG(ctx context.Context, dsn string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PGStore{Pool: pool}, nil
}

func (s *PGStore) Close() { s.Pool.Close() }

func (s *PGStore) LoadMap(ctx context.Context) (graph.MapData, error) {
	rows, err := s.Pool.Query(ctx, selectLocations)
	if err != nil {
		return graph.MapData{}, fmt.Errorf("query locations: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return graph.MapData{}, fmt.Errorf("read locations: %w", err)
	}

	rows, err = s.Pool.Query(ctx, selectAdjacency)
	if err != nil {
		return graph.MapData{}, fmt.Errorf("query adjacency: %w", err)
	}
	adj, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (adjRow, error) {
		var r adjRow
		var w *float64
		if err := row.Scan(&r.Location, &r.Neighbor, &w); err != nil {
			return adjRow{}, err
		}
		if w != nil {
			r.Weight = sql.NullFloat64{Float64: *w, Valid: true}
		}
		return r, nil
	})
	if err != nil {
		return graph.MapData{}, fmt.Errorf("read adjacency: %w", err)
	}

	return assemble(names, adj), nil
}
