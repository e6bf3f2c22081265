package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	lat := make([]time.Duration, 100)
	for i := range lat {
		lat[i] = time.Duration(i+1) * time.Millisecond
	}
	assert.Equal(t, 50*time.Millisecond, percentile(lat, 0.50))
	assert.Equal(t, 95*time.Millisecond, percentile(lat, 0.95))
	assert.Equal(t, 100*time.Millisecond, percentile(lat, 1))
	assert.Equal(t, 7*time.Millisecond, percentile([]time.Duration{7 * time.Millisecond}, 0.99))
}

func TestWriteCSV(t *testing.T) {
	var b strings.Builder
	writeCSV(&b, []result{{Clients: 4, AvgLatency: 1.5, P50: 1, P95: 2, P99: 3, Throughput: 2000, Errors: 1}})
	assert.Equal(t,
		"clients,avg_latency_ms,p50_ms,p95_ms,p99_ms,throughput_rps,errors\n4,1.5000,1.0000,2.0000,3.0000,2000.00,1\n",
		b.String())
}

func TestRouteBody(t *testing.T) {
	body, err := routeBody("Cafeteria", "Library")
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"Cafeteria","end":"Library"}`, string(body))
}
