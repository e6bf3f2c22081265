package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharv3903/campusnav/internal/api"
	"github.com/atharv3903/campusnav/internal/cache"
	"github.com/atharv3903/campusnav/internal/graph"
	"github.com/atharv3903/campusnav/internal/model"
	"github.com/atharv3903/campusnav/internal/navigator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func newServer(t *testing.T, origins ...string) *api.Server {
	t.Helper()
	g, err := graph.Reference()
	require.NoError(t, err)
	return api.New(navigator.New(g, cache.NewRouteCache(64), testLogger()), testLogger(), origins)
}

func doRequest(s *api.Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

func TestHealth(t *testing.T) {
	w := doRequest(newServer(t), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 29, body["locations"])
	assert.NotEmpty(t, w.Header().Get(api.RequestIDHeader))
}

func TestLocations(t *testing.T) {
	w := doRequest(newServer(t), http.MethodGet, "/api/locations", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[model.LocationsResponse](t, w)
	assert.Equal(t, 29, body.Count)
	assert.Len(t, body.Locations, 29)
	assert.IsNonDecreasing(t, body.Locations)
}

func TestExists(t *testing.T) {
	s := newServer(t)

	body := decode[model.ExistsResponse](t, doRequest(s, http.MethodGet, "/api/exists/Cafeteria", ""))
	assert.Equal(t, model.ExistsResponse{Location: "Cafeteria", Exists: true}, body)

	body = decode[model.ExistsResponse](t, doRequest(s, http.MethodGet, "/api/exists/Gymnasium", ""))
	assert.False(t, body.Exists)
}

func TestSearch(t *testing.T) {
	s := newServer(t)

	body := decode[model.SearchResponse](t, doRequest(s, http.MethodGet, "/api/search/lib", ""))
	assert.False(t, body.Found)
	assert.Equal(t, []string{"Library"}, body.Suggestions)

	body = decode[model.SearchResponse](t, doRequest(s, http.MethodGet, "/api/search/Library", ""))
	assert.True(t, body.Found)

	body = decode[model.SearchResponse](t, doRequest(s, http.MethodGet, "/api/search/zzz", ""))
	assert.NotNil(t, body.Suggestions)
	assert.Empty(t, body.Suggestions)
}

func TestShortestPath(t *testing.T) {
	s := newServer(t)

	w := doRequest(s, http.MethodPost, "/api/shortest-path", `{"start":"Cafeteria","end":"Library"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[model.RouteResponse](t, w)
	assert.True(t, body.Found)
	assert.Equal(t, 8, body.HopCount)
	assert.Equal(t, "Cafeteria", body.Path[0])
	assert.Equal(t, "Library", body.Path[8])
	assert.False(t, body.CacheHit)

	body = decode[model.RouteResponse](t, doRequest(s, http.MethodPost, "/api/shortest-path", `{"start":"Cafeteria","end":"Library"}`))
	assert.True(t, body.CacheHit)

	body = decode[model.RouteResponse](t, doRequest(s, http.MethodPost, "/api/shortest-path", `{"start":"Cafeteria","end":"Gymnasium"}`))
	assert.False(t, body.Found)
	assert.Zero(t, body.HopCount)
	assert.Equal(t, []string{"Cafeteria", "Gymnasium"}, body.Path)
}

func TestShortestPath_BadRequest(t *testing.T) {
	s := newServer(t)
	for _, payload := range []string{`{"start":"Cafeteria"}`, `not json`, `{}`} {
		w := doRequest(s, http.MethodPost, "/api/shortest-path", payload)
		require.Equal(t, http.StatusBadRequest, w.Code, payload)

		body := decode[errorBody](t, w)
		assert.Equal(t, api.ErrCodeInvalidRequest, body.Code)
		assert.Equal(t, w.Header().Get(api.RequestIDHeader), body.RequestID)
	}
}

func TestWeightedPath(t *testing.T) {
	s := newServer(t)

	w := doRequest(s, http.MethodPost, "/api/weighted-path", `{"start":"Cafeteria","end":"Auditorium"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[model.WeightedRouteResponse](t, w)
	assert.Equal(t, 25.0, body.Distance)
	assert.Equal(t, []string{"Cafeteria", "Stairs_B2_GF", "B2_GF", "B2_F1", "B2_F2", "Auditorium"}, body.Path)
	assert.Positive(t, body.ExploredNodes)

	w = doRequest(s, http.MethodPost, "/api/weighted-path", `{"start":"Cafeteria","end":"Gymnasium"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, api.ErrCodeNotFound, decode[errorBody](t, w).Code)
}

func TestWeightedPath_NoRoute(t *testing.T) {
	g, err := graph.New(graph.MapData{Locations: []graph.LocationEntry{
		{Name: "A", Neighbors: []string{"B"}},
		{Name: "B", Neighbors: []string{"A"}},
		{Name: "C"},
	}})
	require.NoError(t, err)
	s := api.New(navigator.New(g, nil, testLogger()), testLogger(), nil)

	w := doRequest(s, http.MethodPost, "/api/weighted-path", `{"start":"A","end":"C"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, api.ErrCodeNoRoute, decode[errorBody](t, w).Code)
}

func TestAlgorithm_Orders(t *testing.T) {
	s := newServer(t)

	for _, alg := range []string{"bfs", "dfs"} {
		w := doRequest(s, http.MethodPost, "/api/algorithm", `{"algorithm":"`+alg+`","start":"Library"}`)
		require.Equal(t, http.StatusOK, w.Code, alg)

		body := decode[model.TraversalResponse](t, w)
		assert.Equal(t, alg, body.Algorithm)
		assert.Len(t, body.Order, 29)
		assert.Equal(t, "Library", body.Order[0])
		assert.Nil(t, body.Path)
		assert.Nil(t, body.Found)
	}
}

func TestAlgorithm_BFSWithDestination(t *testing.T) {
	w := doRequest(newServer(t), http.MethodPost, "/api/algorithm",
		`{"algorithm":"bfs","start":"Cafeteria","destination":"Library"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[model.TraversalResponse](t, w)
	require.NotNil(t, body.Found)
	assert.True(t, *body.Found)
	assert.Len(t, body.Path, 9)
	assert.Nil(t, body.Order)
}

func TestAlgorithm_MST(t *testing.T) {
	w := doRequest(newServer(t), http.MethodPost, "/api/algorithm", `{"algorithm":"mst"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[model.SpanningTreeResponse](t, w)
	assert.Equal(t, "mst", body.Algorithm)
	assert.Len(t, body.Corridors, 28)
	assert.Equal(t, 138.0, body.TotalWeight)
}

func TestAlgorithm_Errors(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		code    string
	}{
		{"unknown algorithm", `{"algorithm":"astar","start":"Library"}`, api.ErrCodeInvalidAlgorithm},
		{"upper case", `{"algorithm":"BFS","start":"Library"}`, api.ErrCodeInvalidAlgorithm},
		{"unknown without start", `{"algorithm":"astar"}`, api.ErrCodeInvalidAlgorithm},
		{"missing algorithm", `{"start":"Library"}`, api.ErrCodeInvalidRequest},
		{"missing start", `{"algorithm":"dfs"}`, api.ErrCodeInvalidRequest},
	}

	s := newServer(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(s, http.MethodPost, "/api/algorithm", tc.payload)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.code, decode[errorBody](t, w).Code)
		})
	}
}

func TestCacheStatsAndClear(t *testing.T) {
	s := newServer(t)
	doRequest(s, http.MethodPost, "/api/shortest-path", `{"start":"Lab01","end":"Auditorium"}`)
	doRequest(s, http.MethodPost, "/api/shortest-path", `{"start":"Lab01","end":"Auditorium"}`)

	stats := decode[cache.Stats](t, doRequest(s, http.MethodGet, "/debug/cache_stats", ""))
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Len)

	w := doRequest(s, http.MethodPost, "/debug/clear_cache", "")
	require.Equal(t, http.StatusOK, w.Code)

	stats = decode[cache.Stats](t, doRequest(s, http.MethodGet, "/debug/cache_stats", ""))
	assert.Zero(t, stats.Len)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t)
	doRequest(s, http.MethodGet, "/healthz", "")

	w := doRequest(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "campusnav_http_requests_total")
}

func TestCORS(t *testing.T) {
	preflight := func(s *api.Server, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		return w
	}

	w := preflight(newServer(t), "http://anywhere.example")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	s := newServer(t, "http://campus.example")
	w = preflight(s, "http://campus.example")
	assert.Equal(t, "http://campus.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight(s, "http://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
