// Package navigator answers route and traversal queries against a loaded
// campus map. It is the only entry point the transport layers use.
package navigator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/atharv3903/campusnav/internal/algo"
	"github.com/atharv3903/campusnav/internal/cache"
	"github.com/atharv3903/campusnav/internal/graph"
	"github.com/atharv3903/campusnav/internal/metrics"
	"github.com/atharv3903/campusnav/internal/model"
)

// Traversal algorithms accepted by TraversalOrder.
const (
	AlgorithmBFS = "bfs"
	AlgorithmDFS = "dfs"
)

// cache keys for queries that are not plain traversals
const (
	keyHopPath      = "bfs-path"
	keyWeightedPath = "dijkstra"
)

// maxSuggestions caps the names returned by Search.
const maxSuggestions = 10

var tracer = otel.Tracer("campusnav.navigator")

// Route is a hop-count route. When Found is false, Path is the
// [start, end] fallback, which does not follow real corridors, and
// HopCount is zero.
type Route struct {
	Path     []string
	HopCount int
	Found    bool
	CacheHit bool
}

// Traversal holds either a visiting Order or, for a breadth-first query
// with a destination, a Path.
type Traversal struct {
	Algorithm string
	Start     string
	Order     []string
	Path      []string
	Found     bool
	CacheHit  bool
}

type WeightedRoute struct {
	Path     []string
	Distance float64
	Explored int
	CacheHit bool
}

type SpanningTree struct {
	Corridors   []model.Corridor
	TotalWeight float64
}

type SearchResult struct {
	Query       string
	Found       bool
	Suggestions []string
}

// Service is safe for concurrent use. The map is read-only and the result
// cache does its own locking.
type Service struct {
	g   *graph.Graph
	rc  *cache.RouteCache
	log *logrus.Logger
}

// New returns a Service over g. rc may be nil to disable result caching.
// A nil log falls back to the logrus standard logger.
func New(g *graph.Graph, rc *cache.RouteCache, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	metrics.Locations.Set(float64(g.Len()))
	metrics.Corridors.Set(float64(len(g.Corridors())))

	return &Service{g: g, rc: rc, log: log}
}

// Graph returns the map the service answers from.
func (s *Service) Graph() *graph.Graph { return s.g }

// CacheStats reports result cache counters; zero when caching is off.
func (s *Service) CacheStats() cache.Stats {
	if s.rc == nil {
		return cache.Stats{}
	}
	return s.rc.Stats()
}

// ClearCache drops all memoized results.
func (s *Service) ClearCache() {
	if s.rc != nil {
		s.rc.Clear()
	}
}

// Exists reports whether loc is on the map, by exact match.
func (s *Service) Exists(loc string) bool {
	return s.g.Has(loc)
}

// Locations lists every location in ascending order.
func (s *Service) Locations() []string {
	return s.g.Locations()
}

// ShortestPath returns the route from start to end with the fewest hops.
// It never fails for unknown or unreachable locations; the result then has
// Found unset.
func (s *Service) ShortestPath(ctx context.Context, start, end string) (Route, error) {
	ctx, span := tracer.Start(ctx, "navigator.ShortestPath", trace.WithAttributes(
		attribute.String("campusnav.start", start),
		attribute.String("campusnav.end", end),
	))
	defer span.End()

	res, hit, err := s.hopPath(ctx, start, end)
	if err != nil {
		s.fail(span, keyHopPath, err)
		return Route{}, err
	}

	r := Route{Path: res.Locations, Found: res.Found, CacheHit: hit}
	if r.Found {
		r.HopCount = len(r.Path) - 1
	}
	span.SetAttributes(attribute.Bool("campusnav.found", r.Found), attribute.Int("campusnav.hops", r.HopCount))
	return r, nil
}

// TraversalOrder runs a bfs or dfs traversal from start. A bfs query with a
// destination other than start returns the hop-count path instead of the
// visiting order; dfs ignores the destination.
func (s *Service) TraversalOrder(ctx context.Context, algorithm, start, destination string) (Traversal, error) {
	ctx, span := tracer.Start(ctx, "navigator.TraversalOrder", trace.WithAttributes(
		attribute.String("campusnav.algorithm", algorithm),
		attribute.String("campusnav.start", start),
		attribute.String("campusnav.destination", destination),
	))
	defer span.End()

	out := Traversal{Algorithm: algorithm, Start: start}

	var run func(context.Context, algo.Adjacency, string) ([]string, error)
	switch algorithm {
	case AlgorithmBFS:
		if destination != "" && destination != start {
			res, hit, err := s.hopPath(ctx, start, destination)
			if err != nil {
				s.fail(span, keyHopPath, err)
				return Traversal{}, err
			}
			out.Path, out.Found, out.CacheHit = res.Locations, res.Found, hit
			return out, nil
		}
		run = algo.BFSOrder
	case AlgorithmDFS:
		run = algo.DFSOrder
	default:
		err := fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidAlgorithm, algorithm, AlgorithmBFS, AlgorithmDFS)
		s.fail(span, "invalid", err)
		return Traversal{}, err
	}

	res, hit, err := s.cached(ctx, cache.RouteKey{Algo: algorithm, Src: start}, func(ctx context.Context) (cache.Result, error) {
		order, err := run(ctx, s.g, start)
		return cache.Result{Locations: order, Found: true}, err
	})
	if err != nil {
		s.fail(span, algorithm, err)
		return Traversal{}, err
	}
	metrics.QueriesTotal.WithLabelValues(algorithm, "ok").Inc()

	out.Order, out.Found, out.CacheHit = res.Locations, true, hit
	return out, nil
}

// WeightedPath returns the cheapest route by corridor weight.
func (s *Service) WeightedPath(ctx context.Context, start, end string) (WeightedRoute, error) {
	ctx, span := tracer.Start(ctx, "navigator.WeightedPath", trace.WithAttributes(
		attribute.String("campusnav.start", start),
		attribute.String("campusnav.end", end),
	))
	defer span.End()

	for _, loc := range []string{start, end} {
		if !s.g.Has(loc) {
			err := fmt.Errorf("%w: %q", ErrUnknownLocation, loc)
			s.fail(span, keyWeightedPath, err)
			return WeightedRoute{}, err
		}
	}

	res, hit, err := s.cached(ctx, cache.RouteKey{Algo: keyWeightedPath, Src: start, Dst: end}, func(ctx context.Context) (cache.Result, error) {
		path, total, explored, err := algo.Dijkstra(ctx, s.g, start, end)
		return cache.Result{Locations: path, Found: path != nil, Distance: total, Explored: explored}, err
	})
	if err != nil {
		s.fail(span, keyWeightedPath, err)
		return WeightedRoute{}, err
	}
	if !res.Found {
		err := fmt.Errorf("%w: %q -> %q", ErrNoRoute, start, end)
		s.fail(span, keyWeightedPath, err)
		return WeightedRoute{}, err
	}
	metrics.QueriesTotal.WithLabelValues(keyWeightedPath, "ok").Inc()

	span.SetAttributes(attribute.Float64("campusnav.distance", res.Distance))
	return WeightedRoute{Path: res.Locations, Distance: res.Distance, Explored: res.Explored, CacheHit: hit}, nil
}

// SpanningTree returns the minimum spanning tree of the map by corridor
// weight. A map in several pieces yields a forest.
func (s *Service) SpanningTree(ctx context.Context) (SpanningTree, error) {
	ctx, span := tracer.Start(ctx, "navigator.SpanningTree")
	defer span.End()

	tree, total, err := algo.Kruskal(ctx, s.g.Locations(), s.g.Corridors())
	if err != nil {
		s.fail(span, "mst", err)
		return SpanningTree{}, err
	}
	metrics.QueriesTotal.WithLabelValues("mst", "ok").Inc()
	return SpanningTree{Corridors: tree, TotalWeight: total}, nil
}

// Search looks a name up in the directory. Found needs an exact match;
// Suggestions holds locations whose names start with query, ignoring case.
func (s *Service) Search(query string) SearchResult {
	res := SearchResult{Query: query, Found: s.g.Has(query), Suggestions: []string{}}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return res
	}
	for _, loc := range s.g.Locations() {
		if strings.HasPrefix(strings.ToLower(loc), q) {
			res.Suggestions = append(res.Suggestions, loc)
		}
	}
	sort.Strings(res.Suggestions)
	if len(res.Suggestions) > maxSuggestions {
		res.Suggestions = res.Suggestions[:maxSuggestions]
	}
	return res
}

func (s *Service) hopPath(ctx context.Context, start, end string) (cache.Result, bool, error) {
	res, hit, err := s.cached(ctx, cache.RouteKey{Algo: keyHopPath, Src: start, Dst: end}, func(ctx context.Context) (cache.Result, error) {
		pr, err := algo.BFSPath(ctx, s.g, start, end)
		return cache.Result{Locations: pr.Path, Found: pr.Found}, err
	})
	if err != nil {
		return cache.Result{}, false, err
	}

	outcome := "ok"
	if !res.Found {
		outcome = "unreachable"
		s.log.WithFields(logrus.Fields{
			"start": start,
			"end":   end,
		}).Debug("no route between locations")
	}
	metrics.QueriesTotal.WithLabelValues(keyHopPath, outcome).Inc()
	return res, hit, nil
}

func (s *Service) cached(ctx context.Context, key cache.RouteKey, run func(context.Context) (cache.Result, error)) (cache.Result, bool, error) {
	if s.rc != nil {
		if r, ok := s.rc.Get(key); ok {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return r, true, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	r, err := run(ctx)
	if err != nil {
		return cache.Result{}, false, err
	}
	if s.rc != nil {
		s.rc.Put(key, r)
	}
	return r, false, nil
}

func (s *Service) fail(span trace.Span, algorithm string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	metrics.QueriesTotal.WithLabelValues(algorithm, "error").Inc()
	s.log.WithError(err).WithField("algorithm", algorithm).Debug("query failed")
}
