package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/atharv3903/campusnav/internal/api"
	"github.com/atharv3903/campusnav/internal/cache"
	"github.com/atharv3903/campusnav/internal/navigator"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the navigation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	a.cfg.BindFlags(cmd.Flags())
	return cmd
}

// serve runs the API until ctx is cancelled, then drains in-flight requests
// for up to the configured shutdown timeout.
func (a *app) serve(ctx context.Context) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	g, err := loadGraph(ctx, a.cfg.Map, a.log)
	if err != nil {
		return err
	}

	var rc *cache.RouteCache
	if a.cfg.CacheSize > 0 {
		rc = cache.NewRouteCache(a.cfg.CacheSize)
	}
	nav := navigator.New(g, rc, a.log)

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           api.New(nav, a.log, a.cfg.CORSOrigins).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		a.log.WithField("addr", a.cfg.Addr).
			WithField("map_source", a.cfg.Map.Source).
			WithField("locations", g.Len()).
			Info("campusnav listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		a.log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
