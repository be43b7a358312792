package cache

import (
	"sync"

	"github.com/IvanBrykalov/freqcache/internal/util"
	"github.com/IvanBrykalov/freqcache/policy"
)

// shard is one independent partition of the cache: a policy store guarded by
// one exclusive lock held for the full duration of every public operation.
// The store runs to completion under the lock (including bucket relocation
// and aging for LFU), so its invariants hold at every point another
// goroutine can observe.
type shard[K comparable, V any] struct {
	mu    sync.Mutex
	store policy.Store[K, V]

	opt *Options[K, V]

	// Hot counters on separate cache lines to avoid false sharing between
	// neighboring shards. Readable without the shard lock.
	_      util.CacheLinePad
	hits   util.PaddedAtomicInt64
	misses util.PaddedAtomicInt64
	evicts util.PaddedAtomicUint64
}

// newShard builds a shard around a fresh policy store of the given per-shard
// capacity. The store reports evictions back through the shard's hooks.
func newShard[K comparable, V any](capacity int, pol policy.Policy[K, V], opt *Options[K, V]) *shard[K, V] {
	s := &shard[K, V]{opt: opt}
	s.store = pol.New(capacity, shardHooks[K, V]{s: s})
	return s
}

func (s *shard[K, V]) Put(k K, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Put(k, v)
	s.opt.Metrics.Size(s.store.Len())
}

func (s *shard[K, V]) Get(k K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.store.Get(k)
	if ok {
		s.hits.Add(1)
		s.opt.Metrics.Hit()
	} else {
		s.misses.Add(1)
		s.opt.Metrics.Miss()
	}
	return v, ok
}

func (s *shard[K, V]) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Purge()
	s.opt.Metrics.Size(0)
}

func (s *shard[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// shardHooks adapts a shard to policy.Hooks. The store invokes OnEvict while
// the shard lock is held, so counter updates and the user callback happen
// inside the same critical section as the eviction itself.
type shardHooks[K comparable, V any] struct{ s *shard[K, V] }

func (h shardHooks[K, V]) OnEvict(k K, v V) {
	h.s.evicts.Add(1)
	h.s.opt.Metrics.Evict()
	if cb := h.s.opt.OnEvict; cb != nil {
		cb(k, v)
	}
}
