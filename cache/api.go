package cache

import "context"

// Cache is a sharded, in-memory key/value cache.
// All methods are safe for concurrent use by multiple goroutines.
//
// Typical complexity is amortized O(1): a hash, a map lookup, and
// constant-time structure adjustments under one shard's lock.
type Cache[K comparable, V any] interface {
	// Put inserts or updates k→v. A write counts as an access and promotes
	// the entry per the active eviction policy; it may evict one entry from
	// the target shard when that shard is at capacity.
	Put(k K, v V)

	// Get returns the value for k and a presence flag. On hit, the entry's
	// priority (frequency and/or recency) is promoted. Absence is a normal
	// outcome, never an error.
	Get(k K) (V, bool)

	// Purge discards all entries in every shard.
	Purge()

	// Len returns the total number of resident entries across all shards.
	Len() int

	// Stats returns aggregated hit/miss/eviction counters.
	Stats() Stats

	// Close marks the cache closed; subsequent operations are ignored.
	Close() error

	// GetOrLoad returns the value for k, loading it via Options.Loader on
	// miss. Concurrent loads for the same key are coalesced. If no Loader
	// was configured, returns ErrNoLoader.
	GetOrLoad(ctx context.Context, k K) (V, error)
}

// Stats is a point-in-time aggregate of the per-shard counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions uint64
	Entries   int
}
