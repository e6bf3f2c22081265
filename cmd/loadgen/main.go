// Command loadgen drives random shortest-path queries at a running campusnav
// server for a fixed duration and reports the result cache hit rate and
// latency.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/atharv3903/campusnav/internal/cache"
	"github.com/atharv3903/campusnav/internal/model"
)

func main() {
	server := pflag.String("server", "http://127.0.0.1:8080", "campusnav base URL")
	duration := pflag.Duration("duration", 30*time.Second, "how long to send requests")
	endpoint := pflag.String("endpoint", "shortest-path", "route endpoint: shortest-path|weighted-path")
	pflag.Parse()

	log := logrus.New()
	client := &http.Client{Timeout: 10 * time.Second}

	locs, err := fetchLocations(client, *server)
	if err != nil {
		log.WithError(err).Fatal("fetch locations")
	}
	log.Infof("loaded %d locations", len(locs))

	// clear cache before test to avoid cumulative stats
	resp, err := client.Post(*server+"/debug/clear_cache", "application/json", http.NoBody)
	if err != nil {
		log.WithError(err).Fatal("clear cache")
	}
	resp.Body.Close()

	var (
		totalReq, totalErr, totalHit int64
		latencies                    []time.Duration
	)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	url := fmt.Sprintf("%s/api/%s", *server, *endpoint)

	log.Infof("running loadgen for %s", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	for ctx.Err() == nil {
		body, err := routeBody(locs[rnd.Intn(len(locs))], locs[rnd.Intn(len(locs))])
		if err != nil {
			log.WithError(err).Fatal("encode request")
		}

		start := time.Now()
		resp, err := client.Post(url, "application/json", bytes.NewReader(body))
		latencies = append(latencies, time.Since(start))
		totalReq++

		if err != nil {
			totalErr++
			continue
		}
		var rr struct {
			CacheHit bool `json:"cache_hit"`
		}
		err = json.NewDecoder(resp.Body).Decode(&rr)
		resp.Body.Close()
		if err != nil || resp.StatusCode != http.StatusOK {
			totalErr++
			continue
		}
		if rr.CacheHit {
			totalHit++
		}
	}

	var stats cache.Stats
	if resp, err := client.Get(*server + "/debug/cache_stats"); err == nil {
		json.NewDecoder(resp.Body).Decode(&stats) //nolint:errcheck // best effort
		resp.Body.Close()
	}

	w := os.Stdout
	fmt.Fprintln(w, "\n========== LOADGEN SUMMARY ==========")
	fmt.Fprintf(w, "Total Requests: %d\n", totalReq)
	fmt.Fprintf(w, "Errors: %d\n", totalErr)
	if totalReq > 0 {
		fmt.Fprintf(w, "Response Cache Hit Rate: %.1f%%\n", float64(totalHit)/float64(totalReq)*100)
	}
	if stats.Gets > 0 {
		fmt.Fprintf(w, "Server Cache: gets=%d hits=%d puts=%d evictions=%d len=%d/%d\n",
			stats.Gets, stats.Hits, stats.Puts, stats.Evictions, stats.Len, stats.Capacity)
	}

	if len(latencies) > 0 {
		lo, hi, sum := latencies[0], latencies[0], time.Duration(0)
		for _, l := range latencies {
			lo, hi = min(lo, l), max(hi, l)
			sum += l
		}
		fmt.Fprintf(w, "Avg Latency: %v\n", sum/time.Duration(len(latencies)))
		fmt.Fprintf(w, "Fastest: %v\n", lo)
		fmt.Fprintf(w, "Slowest: %v\n", hi)
	}
	fmt.Fprintln(w, "=====================================")
}

// routeBody encodes the JSON body the route endpoints bind.
func routeBody(start, end string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"start": start, "end": end})
	if err != nil {
		return nil, fmt.Errorf("marshal route request: %w", err)
	}
	return body, nil
}

func fetchLocations(client *http.Client, server string) ([]string, error) {
	resp, err := client.Get(server + "/api/locations")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET /api/locations: %s", resp.Status)
	}
	var lr model.LocationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	if len(lr.Locations) == 0 {
		return nil, fmt.Errorf("server has no locations")
	}
	return lr.Locations, nil
}
