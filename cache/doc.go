// Package cache provides a fast, generic, sharded in-memory cache with a
// pluggable eviction-policy family: frequency-aging LFU (the default), plain
// LRU, LRU-K, and ARC, all behind one key/value contract.
//
// # Design
//
//   - Concurrency: the cache is split into shards, each an independent
//     sub-cache guarded by one exclusive mutex held for the full duration of
//     a public operation. Keys are hashed (xxHash) and routed to exactly one
//     shard; shards never interact, which bounds lock contention to
//     1/shardCount at the accepted price of per-shard capacity and ordering.
//
//   - Policies: each policy is a complete store (put/get/purge) created
//     per shard by a factory from the policy package. The default LFU store
//     keeps entries in frequency buckets with an O(1) tracked minimum and a
//     periodic aging pass that compresses frequencies so stale hot keys
//     cannot entrench themselves.
//
//   - Capacity: the configured total is split across shards (ceil division).
//     Capacity 0 is a valid degenerate configuration: a permanent no-op
//     store, not an error. No operation ever fails; a missing key is
//     reported as (zero, false).
//
//   - GetOrLoad: coalesces concurrent loads for the same key using an
//     internal singleflight group. If Loader is nil, GetOrLoad returns
//     ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals.
//     NoopMetrics is the default; metrics/prom provides a Prometheus
//     adapter. Options.OnEvict is called for every policy eviction.
//
// # Basic usage
//
//	// LFU cache with room for 10k entries.
//	c := cache.New[string, []byte](cache.Options[string, []byte]{Capacity: 10_000})
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Purge()
//
// # Tuning LFU aging
//
//	// Age frequencies once the per-shard mean exceeds 100.
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity:            50_000,
//	    AverageFrequencyCap: 100,
//	})
//
// # Using an alternative policy
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 50_000,
//	    Policy:   arc.New[string, string](),
//	})
//
// # With GetOrLoad (singleflight)
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 1024,
//	    Loader: func(ctx context.Context, k string) (string, error) {
//	        return "v:" + k, nil // e.g. fetch from DB
//	    },
//	})
//	v, err := c.GetOrLoad(context.Background(), "key")
//
// # Exporting metrics
//
//	m := prom.New(nil, "freqcache", "demo", nil) // implements cache.Metrics
//	c := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Capacity: 10_000,
//	    Metrics:  m,
//	})
//
// All methods on Cache are safe for concurrent use. Typical operation cost
// is O(1) expected time; the LFU aging pass is O(n) per shard but fires only
// once per AverageFrequencyCap-scale worth of accesses.
package cache
