package cache

import (
	"context"

	"github.com/IvanBrykalov/freqcache/policy"
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict()
	Size(entries int)
}

// Options configures the cache. Zero values are safe; defaults are applied
// in New():
//   - nil Policy   => LFU with AverageFrequencyCap aging
//   - Shards <= 0  => auto from host parallelism, rounded to a power of two
//   - nil Metrics  => NoopMetrics
type Options[K comparable, V any] struct {
	// Capacity is the total entry limit, split evenly across shards
	// (ceil division). Capacity 0 is a valid degenerate configuration:
	// the cache stays permanently empty and every Put is a no-op.
	Capacity int

	// Shards is the number of independent partitions. If <= 0 a default is
	// chosen from the host parallelism hint; otherwise the value is rounded
	// up to the next power of two.
	Shards int

	// Policy selects the eviction strategy (lfu/lru/lruk/arc or custom).
	// nil selects LFU, the default policy of this engine.
	Policy policy.Policy[K, V]

	// AverageFrequencyCap is the aging threshold used by the default LFU
	// policy: when the mean access frequency of a shard's resident entries
	// exceeds it, all frequencies in that shard are compressed.
	// <= 0 selects the LFU package default. Ignored when Policy is set.
	AverageFrequencyCap int

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called for every policy eviction, under the shard lock;
	// keep callbacks lightweight. Purge does not trigger it.
	OnEvict func(k K, v V)

	// Metrics receives hit/miss/evict/size signals. Nil => NoopMetrics.
	Metrics Metrics
}
