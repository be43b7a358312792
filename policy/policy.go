// Package policy defines the contracts shared by every eviction strategy.
//
// A Store is one self-contained sub-cache: it owns its entries, its internal
// ordering structures, and its eviction decisions. The sharded cache creates
// one Store per shard and serializes all access to it behind the shard lock,
// so Store implementations never synchronize on their own.
package policy

// Store is the capability every eviction strategy implements.
// Absence of a key is a normal outcome, not an error.
//
// Concurrency: a Store is NOT safe for concurrent use. The cache package
// wraps each Store in a shard that holds an exclusive lock for the full
// duration of every call.
type Store[K comparable, V any] interface {
	// Put inserts or updates k→v. A write counts as an access and promotes
	// the entry per the policy's ordering. May evict one entry when the
	// store is at capacity.
	Put(k K, v V)

	// Get returns the value for k and a presence flag.
	// On hit, the entry's priority is promoted (frequency and/or recency).
	Get(k K) (V, bool)

	// Purge discards all entries. The store becomes logically empty.
	Purge()

	// Len returns the number of resident entries.
	Len() int
}

// Hooks is the store's channel back to its owning shard.
// All calls happen under the shard lock; keep implementations lightweight.
type Hooks[K comparable, V any] interface {
	// OnEvict is invoked for every entry the store removes to make room.
	// It is NOT called for Purge (bulk release) or for value updates.
	OnEvict(k K, v V)
}

// Policy is a factory that creates shard-local Store instances.
// capacity is the per-shard entry limit; capacity 0 must yield a store
// that is a permanent no-op (every Put is ignored, every Get misses).
type Policy[K comparable, V any] interface {
	New(capacity int, h Hooks[K, V]) Store[K, V]
}

// NoopHooks discards all notifications. Useful when a Store is used
// standalone, outside a sharded cache.
type NoopHooks[K comparable, V any] struct{}

func (NoopHooks[K, V]) OnEvict(K, V) {}
