package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"github.com/atharv3903/campusnav/internal/config"
	"github.com/atharv3903/campusnav/internal/db"
	"github.com/atharv3903/campusnav/internal/graph"
)

const loadTimeout = 10 * time.Second

// loadGraph builds the campus map from the configured source.
func loadGraph(ctx context.Context, mc config.MapConfig, log *logrus.Logger) (*graph.Graph, error) {
	if err := mc.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	var (
		data graph.MapData
		err  error
	)
	switch mc.Source {
	case config.SourceEmbedded:
		data, err = graph.ReferenceData()
	case config.SourceFile:
		data, err = graph.ReadFile(mc.File)
	case config.SourceMySQL:
		data, err = loadMySQL(ctx, mc.DSN.Value())
	case config.SourcePostgres:
		var pg *db.PGStore
		if pg, err = db.OpenPG(ctx, mc.DSN.Value()); err == nil {
			defer pg.Close()
			data, err = pg.LoadMap(ctx)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load map from %s: %w", mc.Source, err)
	}

	g, err := graph.New(data)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"source":    mc.Source,
		"locations": g.Len(),
		"corridors": len(g.Corridors()),
	}).Debug("map loaded")
	return g, nil
}

func openMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return conn, nil
}

func loadMySQL(ctx context.Context, dsn string) (graph.MapData, error) {
	conn, err := openMySQL(ctx, dsn)
	if err != nil {
		return graph.MapData{}, err
	}
	defer conn.Close()
	return db.Store{DB: conn}.LoadMap(ctx)
}
