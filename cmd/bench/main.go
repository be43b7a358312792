// Command bench runs a synthetic workload against the cache and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IvanBrykalov/freqcache/cache"
	pmet "github.com/IvanBrykalov/freqcache/metrics/prom"
	"github.com/IvanBrykalov/freqcache/policy/arc"
	"github.com/IvanBrykalov/freqcache/policy/lru"
	"github.com/IvanBrykalov/freqcache/policy/lruk"
)

func main() {
	// ---- Flags ----
	var (
		capacity = flag.Int("cap", 100_000, "cache capacity (entries)")
		shards   = flag.Int("shards", 0, "number of shards (0=auto)")
		policy   = flag.String("policy", "lfu", "eviction policy: lfu | lru | lruk | arc")
		avgCap   = flag.Int("avgcap", 0, "LFU aging threshold (0=default)")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "freqcache", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Build cache ----
	opt := cache.Options[string, string]{
		Capacity:            *capacity,
		Shards:              *shards,
		AverageFrequencyCap: *avgCap,
		Metrics:             metrics,
	}
	switch *policy {
	case "lfu":
		// nil => LFU by default
	case "lru":
		opt.Policy = lru.New[string, string]()
	case "lruk":
		opt.Policy = lruk.New[string, string](2, 0)
	case "arc":
		opt.Policy = arc.New[string, string]()
	default:
		log.Fatalf("unknown policy: %q (use lfu, lru, lruk or arc)", *policy)
	}
	c := cache.New[string, string](opt)
	defer func() { _ = c.Close() }()

	// ---- Preload to get a realistic hit-rate ----
	n := *preload
	if n <= 0 {
		n = *capacity / 2
	}
	for i := 0; i < n; i++ {
		c.Put("k:"+strconv.Itoa(i), "v")
	}

	// ---- Run the workload ----
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	var ops atomic.Int64
	var wg sync.WaitGroup
	wg.Add(*workers)
	start := time.Now()

	for w := 0; w < *workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(*seed + int64(id)*7919))
			z := rand.NewZipf(r, *zipfS, *zipfV, uint64(*keys-1))
			for ctx.Err() == nil {
				k := "k:" + strconv.FormatUint(z.Uint64(), 10)
				if r.Intn(100) < *readPct {
					c.Get(k)
				} else {
					c.Put(k, "v")
				}
				ops.Add(1)
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	st := c.Stats()
	total := ops.Load()
	hitRate := 0.0
	if st.Hits+st.Misses > 0 {
		hitRate = float64(st.Hits) / float64(st.Hits+st.Misses)
	}
	fmt.Printf("policy=%s workers=%d reads=%d%% keyspace=%d\n", *policy, *workers, *readPct, *keys)
	fmt.Printf("ops=%d (%.0f ops/s) hit-rate=%.2f%%\n",
		total, float64(total)/elapsed.Seconds(), 100*hitRate)
	fmt.Printf("entries=%d evictions=%d\n", st.Entries, st.Evictions)
}
