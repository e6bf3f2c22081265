package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atharv3903/campusnav/internal/model"
	"github.com/atharv3903/campusnav/internal/navigator"
)

const algorithmMST = "mst"

type routeRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type algorithmRequest struct {
	Algorithm   string `json:"algorithm" binding:"required"`
	Start       string `json:"start"`
	Destination string `json:"destination"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"locations": s.Nav.Graph().Len(),
	})
}

func (s *Server) handleLocations(c *gin.Context) {
	locs := s.Nav.Locations()
	c.JSON(http.StatusOK, model.LocationsResponse{Locations: locs, Count: len(locs)})
}

func (s *Server) handleSearch(c *gin.Context) {
	res := s.Nav.Search(c.Param("location"))
	c.JSON(http.StatusOK, model.SearchResponse{
		Query:       res.Query,
		Found:       res.Found,
		Suggestions: res.Suggestions,
	})
}

func (s *Server) handleExists(c *gin.Context) {
	loc := c.Param("location")
	c.JSON(http.StatusOK, model.ExistsResponse{Location: loc, Exists: s.Nav.Exists(loc)})
}

func (s *Server) handleShortestPath(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "start and end are required")
		return
	}

	r, err := s.Nav.ShortestPath(c.Request.Context(), req.Start, req.End)
	if err != nil {
		respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.RouteResponse{
		Path:     r.Path,
		HopCount: r.HopCount,
		Found:    r.Found,
		CacheHit: r.CacheHit,
	})
}

func (s *Server) handleWeightedPath(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "start and end are required")
		return
	}

	r, err := s.Nav.WeightedPath(c.Request.Context(), req.Start, req.End)
	if err != nil {
		respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.WeightedRouteResponse{
		Path:          r.Path,
		Distance:      r.Distance,
		ExploredNodes: r.Explored,
		CacheHit:      r.CacheHit,
	})
}

func (s *Server) handleAlgorithm(c *gin.Context) {
	var req algorithmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "algorithm is required")
		return
	}

	switch req.Algorithm {
	case algorithmMST:
		s.spanningTree(c)
		return
	case navigator.AlgorithmBFS, navigator.AlgorithmDFS:
		if req.Start == "" {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "start is required")
			return
		}
	}

	t, err := s.Nav.TraversalOrder(c.Request.Context(), req.Algorithm, req.Start, req.Destination)
	if err != nil {
		respondQueryError(c, err)
		return
	}

	resp := model.TraversalResponse{
		Algorithm: t.Algorithm,
		Start:     t.Start,
		Order:     t.Order,
		Path:      t.Path,
		CacheHit:  t.CacheHit,
	}
	if t.Path != nil {
		found := t.Found
		resp.Found = &found
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) spanningTree(c *gin.Context) {
	tree, err := s.Nav.SpanningTree(c.Request.Context())
	if err != nil {
		respondQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SpanningTreeResponse{
		Algorithm:   algorithmMST,
		Corridors:   tree.Corridors,
		TotalWeight: tree.TotalWeight,
	})
}

func (s *Server) handleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.Nav.CacheStats())
}

func (s *Server) handleClearCache(c *gin.Context) {
	s.Nav.ClearCache()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
