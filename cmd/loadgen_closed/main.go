// Command loadgen_closed runs closed-loop load against a campusnav server:
// for each client count, that many workers send back-to-back queries for a
// fixed time. Results are printed and written as CSV.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/atharv3903/campusnav/internal/model"
)

type result struct {
	Clients    int
	AvgLatency float64
	P50        float64
	P95        float64
	P99        float64
	Throughput float64
	Errors     int64
}

func main() {
	server := pflag.String("server", "http://127.0.0.1:8080", "campusnav base URL")
	clients := pflag.IntSlice("clients", []int{1, 2, 4, 8, 16, 32, 64}, "client counts to test")
	duration := pflag.Duration("duration", 10*time.Second, "length of each run")
	out := pflag.String("out", "results.csv", "CSV output path")
	pflag.Parse()

	log := logrus.New()

	transport := &http.Transport{
		MaxIdleConns:        500,
		MaxIdleConnsPerHost: 500,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  true,
	}
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}

	locs, err := fetchLocations(client, *server)
	if err != nil {
		log.WithError(err).Fatal("fetch locations")
	}

	// warm the server so cold-start effects don't matter
	if _, err := query(client, *server, locs[0], locs[len(locs)-1]); err != nil {
		log.WithError(err).Fatal("warm up")
	}

	var results []result
	for _, n := range *clients {
		log.Infof("running %s with %d clients", *duration, n)
		r, err := runClosedLoop(client, *server, locs, n, *duration)
		if err != nil {
			log.WithError(err).Fatal("closed loop")
		}
		results = append(results, r)
	}

	fmt.Println("\n========== CLOSED-LOOP RESULTS (CSV) ==========")
	writeCSV(os.Stdout, results)
	fmt.Println("===============================================")

	f, err := os.Create(*out)
	if err != nil {
		log.WithError(err).Fatal("create csv")
	}
	defer f.Close()
	writeCSV(f, results)
	log.Infof("wrote %s", *out)
}

// runClosedLoop keeps clients workers busy for dur and aggregates their
// latencies.
func runClosedLoop(client *http.Client, server string, locs []string, clients int, dur time.Duration) (result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dur)
	defer cancel()

	var (
		mu        sync.Mutex
		latencies []time.Duration
		errs      int64
	)

	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < clients; i++ {
		seed := time.Now().UnixNano() + int64(i)
		eg.Go(func() error {
			rnd := rand.New(rand.NewSource(seed))
			var local []time.Duration
			var localErrs int64

			for ctx.Err() == nil {
				lat, err := query(client, server, locs[rnd.Intn(len(locs))], locs[rnd.Intn(len(locs))])
				if err != nil {
					localErrs++
					continue
				}
				local = append(local, lat)
			}

			mu.Lock()
			latencies = append(latencies, local...)
			errs += localErrs
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return result{}, err
	}

	r := result{Clients: clients, Errors: errs}
	if len(latencies) == 0 {
		return r, nil
	}

	slices.Sort(latencies)
	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	r.AvgLatency = ms(sum / time.Duration(len(latencies)))
	r.P50 = ms(percentile(latencies, 0.50))
	r.P95 = ms(percentile(latencies, 0.95))
	r.P99 = ms(percentile(latencies, 0.99))
	r.Throughput = float64(len(latencies)) / dur.Seconds()
	return r, nil
}

func query(client *http.Client, server, start, end string) (time.Duration, error) {
	body, err := routeBody(start, end)
	if err != nil {
		return 0, err
	}

	t0 := time.Now()
	resp, err := client.Post(server+"/api/shortest-path", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	_, err = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	lat := time.Since(t0)

	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("shortest-path: %s", resp.Status)
	}
	return lat, nil
}

func routeBody(start, end string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"start": start, "end": end})
	if err != nil {
		return nil, fmt.Errorf("marshal route request: %w", err)
	}
	return body, nil
}

// percentile expects sorted input.
func percentile(sorted []time.Duration, p float64) time.Duration {
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

func writeCSV(w io.Writer, results []result) {
	fmt.Fprintln(w, "clients,avg_latency_ms,p50_ms,p95_ms,p99_ms,throughput_rps,errors")
	for _, r := range results {
		fmt.Fprintf(w, "%d,%.4f,%.4f,%.4f,%.4f,%.2f,%d\n",
			r.Clients, r.AvgLatency, r.P50, r.P95, r.P99, r.Throughput, r.Errors)
	}
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
