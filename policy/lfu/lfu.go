// Package lfu implements a least-frequently-used eviction store with
// frequency aging.
//
// Entries are grouped into buckets by exact access frequency; each bucket
// keeps insertion order so ties between equally-frequent entries break
// toward the oldest. A tracked minimum frequency makes eviction O(1), and
// a periodic aging pass compresses all frequencies so long-cooled hot keys
// cannot entrench themselves against newer traffic.
package lfu

import (
	"slices"

	"github.com/IvanBrykalov/freqcache/policy"
)

// DefaultAverageCap is the aging threshold used when none is configured.
// Aging fires when the mean frequency across resident entries exceeds it,
// so the default makes aging rare on typical workloads.
const DefaultAverageCap = 1_000_000

// store implements policy.Store with LFU ordering.
//
// Three indexes are kept mutually consistent under every mutation:
// keyIndex (key → entry), buckets (frequency → bucket, created lazily and
// kept for reuse even when empty), and minFreq (the smallest frequency
// with a non-empty bucket, meaningful only while keyIndex is non-empty).
type store[K comparable, V any] struct {
	capacity   int
	averageCap int
	hooks      policy.Hooks[K, V]

	keyIndex map[K]*entry[K, V]
	buckets  map[int]*bucket[K, V]
	minFreq  int
	accesses int // always equals the sum of resident frequencies
}

// New returns a Policy factory producing LFU stores with the given aging
// threshold. averageCap <= 0 selects DefaultAverageCap.
func New[K comparable, V any](averageCap int) policy.Policy[K, V] {
	if averageCap <= 0 {
		averageCap = DefaultAverageCap
	}
	return lfuPolicy[K, V]{averageCap: averageCap}
}

type lfuPolicy[K comparable, V any] struct{ averageCap int }

func (p lfuPolicy[K, V]) New(capacity int, h policy.Hooks[K, V]) policy.Store[K, V] {
	return NewStore(capacity, p.averageCap, h)
}

// NewStore builds a single standalone LFU store. capacity 0 yields a
// permanent no-op store. The store is not safe for concurrent use; wrap it
// in a sharded cache (or your own lock) for parallel callers.
func NewStore[K comparable, V any](capacity, averageCap int, h policy.Hooks[K, V]) policy.Store[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	if averageCap <= 0 {
		averageCap = DefaultAverageCap
	}
	if h == nil {
		h = policy.NoopHooks[K, V]{}
	}
	return &store[K, V]{
		capacity:   capacity,
		averageCap: averageCap,
		hooks:      h,
		keyIndex:   make(map[K]*entry[K, V], capacity),
		buckets:    make(map[int]*bucket[K, V]),
	}
}

// Get returns the value for k. A hit promotes the entry into the bucket for
// its incremented frequency; a miss has no side effect.
func (s *store[K, V]) Get(k K) (V, bool) {
	e, ok := s.keyIndex[k]
	if !ok {
		var zero V
		return zero, false
	}
	v := e.val
	s.touch(e)
	return v, true
}

// Put inserts or updates k→v. An update replaces the value and then follows
// the same promotion path as Get: a write counts as an access. An insert may
// first evict the current LFU victim when the store is full.
func (s *store[K, V]) Put(k K, v V) {
	if s.capacity == 0 {
		return
	}
	if e, ok := s.keyIndex[k]; ok {
		e.val = v
		s.touch(e)
		return
	}
	if len(s.keyIndex) == s.capacity {
		s.evict()
	}
	e := &entry[K, V]{key: k, val: v, freq: 1}
	s.keyIndex[k] = e
	s.bucketFor(1).append(e)
	// A fresh entry is always a minimum-frequency candidate.
	s.minFreq = 1
	s.countAccess()
}

// Purge drops the key index and all buckets wholesale. The next insert
// re-establishes minFreq through the normal insert path.
func (s *store[K, V]) Purge() {
	s.keyIndex = make(map[K]*entry[K, V], s.capacity)
	s.buckets = make(map[int]*bucket[K, V])
	s.minFreq = 0
	s.accesses = 0
}

// Len returns the number of resident entries.
func (s *store[K, V]) Len() int { return len(s.keyIndex) }

// touch relocates e from its current bucket into the one for its
// incremented frequency, then advances minFreq when e was the last member
// of the minimum bucket: frequencies only grow between aging passes, so the
// new minimum can only be one step up.
func (s *store[K, V]) touch(e *entry[K, V]) {
	old := s.buckets[e.freq]
	old.remove(e)
	e.freq++
	s.bucketFor(e.freq).append(e)
	if e.freq-1 == s.minFreq && old.empty() {
		s.minFreq++
	}
	s.countAccess()
}

// bucketFor returns the bucket for freq, creating it on first use.
// Buckets are never deleted once created; an empty bucket stays around for
// the next entry that reaches its frequency.
func (s *store[K, V]) bucketFor(freq int) *bucket[K, V] {
	b, ok := s.buckets[freq]
	if !ok {
		b = newBucket[K, V](freq)
		s.buckets[freq] = b
	}
	return b
}

// evict removes the oldest entry of the minimum-frequency bucket: the least
// frequently used key, ties broken by longest residence at that frequency.
// The victim's frequency leaves the access total so the running average
// reflects only resident entries.
func (s *store[K, V]) evict() {
	b := s.buckets[s.minFreq]
	victim := b.oldest()
	b.remove(victim)
	delete(s.keyIndex, victim.key)
	s.accesses -= victim.freq
	s.hooks.OnEvict(victim.key, victim.val)
}

// countAccess records one access and triggers an aging pass when the mean
// frequency across resident entries exceeds the configured cap.
func (s *store[K, V]) countAccess() {
	s.accesses++
	if len(s.keyIndex) == 0 {
		return
	}
	if s.accesses/len(s.keyIndex) > s.averageCap {
		s.age()
	}
}

// age compresses the frequency spectrum: every resident entry loses
// averageCap/2 frequency points, floored at 1, so a stale once-hot key can
// no longer dominate the eviction order while relative order is preserved.
// The access total is rebuilt from the reduced frequencies, which is what
// keeps the trigger amortized (one O(n) pass per averageCap-scale worth of
// accesses). minFreq is recomputed by scan afterwards since entries may
// land in arbitrary lower buckets.
func (s *store[K, V]) age() {
	// Snapshot in ascending frequency order, oldest first within a bucket,
	// so relinking keeps the within-frequency order deterministic.
	freqs := make([]int, 0, len(s.buckets))
	for f, b := range s.buckets {
		if !b.empty() {
			freqs = append(freqs, f)
		}
	}
	slices.Sort(freqs)

	entries := make([]*entry[K, V], 0, len(s.keyIndex))
	for _, f := range freqs {
		b := s.buckets[f]
		for e := b.head.next; e != b.tail; e = e.next {
			entries = append(entries, e)
		}
	}

	total := 0
	for _, e := range entries {
		s.buckets[e.freq].remove(e)
		e.freq -= s.averageCap / 2
		if e.freq < 1 {
			e.freq = 1
		}
		s.bucketFor(e.freq).append(e)
		total += e.freq
	}
	s.accesses = total
	s.updateMinFreq()
}

// updateMinFreq rescans all buckets for the smallest non-empty frequency.
// Only aging needs this; every other mutation maintains minFreq in O(1).
func (s *store[K, V]) updateMinFreq() {
	min := 0
	for f, b := range s.buckets {
		if b.empty() {
			continue
		}
		if min == 0 || f < min {
			min = f
		}
	}
	if min == 0 {
		// Unreachable while keyIndex is non-empty; keep the insert default.
		min = 1
	}
	s.minFreq = min
}
