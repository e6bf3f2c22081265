// Package api serves the campus navigator over HTTP.
package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/atharv3903/campusnav/internal/navigator"
)

type Server struct {
	Engine *gin.Engine
	Nav    *navigator.Service
	Log    *logrus.Logger
}

// New builds the router. An empty origin list, or one containing "*",
// allows any origin.
func New(nav *navigator.Service, log *logrus.Logger, corsOrigins []string) *Server {
	s := &Server{
		Engine: gin.New(),
		Nav:    nav,
		Log:    log,
	}
	s.middleware(corsOrigins)
	s.routes()
	return s
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler { return s.Engine }

func (s *Server) middleware(corsOrigins []string) {
	s.Engine.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	s.Engine.Use(requestID(s.Log))
	s.Engine.Use(requestLogger(s.Log))
	s.Engine.Use(gin.Recovery())

	cc := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       time.Hour,
	}
	if len(corsOrigins) == 0 || slices.Contains(corsOrigins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = corsOrigins
	}
	s.Engine.Use(cors.New(cc))
	s.Engine.Use(instrument())
}

func (s *Server) routes() {
	s.Engine.GET("/healthz", s.handleHealth)
	s.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.Engine.Group("/api")
	api.GET("/locations", s.handleLocations)
	api.GET("/search/:location", s.handleSearch)
	api.GET("/exists/:location", s.handleExists)
	api.POST("/shortest-path", s.handleShortestPath)
	api.POST("/weighted-path", s.handleWeightedPath)
	api.POST("/algorithm", s.handleAlgorithm)

	debug := s.Engine.Group("/debug")
	debug.GET("/cache_stats", s.handleCacheStats)
	debug.POST("/clear_cache", s.handleClearCache)
}
