package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atharv3903/campusnav/internal/db"
	"github.com/atharv3903/campusnav/internal/graph"
)

func (a *app) newSeedCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a map into the MySQL tables, replacing what is there",
		Long: "Validates the map from --from (the built-in campus map when empty) and\n" +
			"writes it to the locations and adjacency tables at --dsn.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Map.DSN.Value() == "" {
				return fmt.Errorf("--dsn (or DB_DSN) is required")
			}

			var (
				data graph.MapData
				err  error
			)
			if from == "" {
				data, err = graph.ReferenceData()
			} else {
				data, err = graph.ReadFile(from)
			}
			if err != nil {
				return err
			}
			g, err := graph.New(data)
			if err != nil {
				return err
			}

			conn, err := openMySQL(cmd.Context(), a.cfg.Map.DSN.Value())
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := (db.Store{DB: conn}).SaveMap(cmd.Context(), data); err != nil {
				return err
			}
			a.log.WithField("locations", g.Len()).WithField("corridors", len(g.Corridors())).Info("map seeded")
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "YAML map to seed from (default: built-in campus map)")
	cmd.Flags().Var(&a.cfg.Map.DSN, "dsn", "MySQL DSN (env: DB_DSN)")
	return cmd
}
