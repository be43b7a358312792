// Package arc implements the adaptive replacement cache (ARC) eviction store.
//
// Resident entries split into T1 (seen once recently) and T2 (seen at least
// twice). Two ghost lists, B1 and B2, remember recently evicted keys from
// each side without holding values. A hit in a ghost list shifts the
// adaptation target p toward the side that would have kept the key, so the
// store continuously rebalances between recency and frequency.
package arc

import (
	"container/list"

	"github.com/IvanBrykalov/freqcache/policy"
)

// kv is a resident entry. Element values in T1/T2 are *kv; elements in the
// ghost lists B1/B2 carry only the key.
type kv[K comparable, V any] struct {
	key K
	val V
}

// store implements policy.Store with ARC replacement.
// All four lists keep MRU at Front; index maps give O(1) membership checks.
type store[K comparable, V any] struct {
	capacity int
	p        int // adaptation target: preferred size of T1
	hooks    policy.Hooks[K, V]

	t1, t2 *list.List
	b1, b2 *list.List

	t1Idx, t2Idx map[K]*list.Element
	b1Idx, b2Idx map[K]*list.Element
}

// New returns a Policy factory producing ARC stores.
func New[K comparable, V any]() policy.Policy[K, V] { return arcPolicy[K, V]{} }

type arcPolicy[K comparable, V any] struct{}

func (arcPolicy[K, V]) New(capacity int, h policy.Hooks[K, V]) policy.Store[K, V] {
	return NewStore[K, V](capacity, h)
}

// NewStore builds a single standalone ARC store. capacity 0 yields a
// permanent no-op store. Not safe for concurrent use.
func NewStore[K comparable, V any](capacity int, h policy.Hooks[K, V]) policy.Store[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	if h == nil {
		h = policy.NoopHooks[K, V]{}
	}
	return &store[K, V]{
		capacity: capacity,
		hooks:    h,
		t1:       list.New(),
		t2:       list.New(),
		b1:       list.New(),
		b2:       list.New(),
		t1Idx:    make(map[K]*list.Element, capacity),
		t2Idx:    make(map[K]*list.Element, capacity),
		b1Idx:    make(map[K]*list.Element),
		b2Idx:    make(map[K]*list.Element),
	}
}

// Get returns the value for k. A hit in T1 promotes the entry into T2
// (it has now been seen more than once); a hit in T2 refreshes its recency.
func (s *store[K, V]) Get(k K) (V, bool) {
	if el, ok := s.t1Idx[k]; ok {
		e := el.Value.(*kv[K, V])
		s.t1.Remove(el)
		delete(s.t1Idx, k)
		s.t2Idx[k] = s.t2.PushFront(e)
		return e.val, true
	}
	if el, ok := s.t2Idx[k]; ok {
		s.t2.MoveToFront(el)
		return el.Value.(*kv[K, V]).val, true
	}
	var zero V
	return zero, false
}

// Put inserts or updates k→v following the ARC request cases: resident hits
// promote into T2, ghost hits adapt p and re-admit into T2, and unseen keys
// enter T1 after the directory is trimmed to size.
func (s *store[K, V]) Put(k K, v V) {
	if s.capacity == 0 {
		return
	}

	// Resident hit: update in place and promote to T2 MRU.
	if el, ok := s.t1Idx[k]; ok {
		e := el.Value.(*kv[K, V])
		e.val = v
		s.t1.Remove(el)
		delete(s.t1Idx, k)
		s.t2Idx[k] = s.t2.PushFront(e)
		return
	}
	if el, ok := s.t2Idx[k]; ok {
		el.Value.(*kv[K, V]).val = v
		s.t2.MoveToFront(el)
		return
	}

	// Ghost hit in B1: recency side was too small; grow p.
	if el, ok := s.b1Idx[k]; ok {
		s.p = min(s.capacity, s.p+max(1, s.b2.Len()/s.b1.Len()))
		s.replace(false)
		s.b1.Remove(el)
		delete(s.b1Idx, k)
		s.t2Idx[k] = s.t2.PushFront(&kv[K, V]{key: k, val: v})
		return
	}
	// Ghost hit in B2: frequency side was too small; shrink p.
	if el, ok := s.b2Idx[k]; ok {
		s.p = max(0, s.p-max(1, s.b1.Len()/s.b2.Len()))
		s.replace(true)
		s.b2.Remove(el)
		delete(s.b2Idx, k)
		s.t2Idx[k] = s.t2.PushFront(&kv[K, V]{key: k, val: v})
		return
	}

	// Completely new key: trim the directory, then admit into T1.
	l1 := s.t1.Len() + s.b1.Len()
	if l1 == s.capacity {
		if s.t1.Len() < s.capacity {
			s.dropGhost(s.b1, s.b1Idx)
			s.replace(false)
		} else {
			// B1 is empty and T1 is full: evict straight from T1
			// without leaving a ghost.
			s.evictResident(s.t1, s.t1Idx, nil, nil)
		}
	} else if l1 < s.capacity {
		total := l1 + s.t2.Len() + s.b2.Len()
		if total >= s.capacity {
			if total == 2*s.capacity {
				s.dropGhost(s.b2, s.b2Idx)
			}
			s.replace(false)
		}
	}
	s.t1Idx[k] = s.t1.PushFront(&kv[K, V]{key: k, val: v})
}

// Purge discards resident entries, ghosts, and the adaptation state.
func (s *store[K, V]) Purge() {
	s.t1.Init()
	s.t2.Init()
	s.b1.Init()
	s.b2.Init()
	s.t1Idx = make(map[K]*list.Element, s.capacity)
	s.t2Idx = make(map[K]*list.Element, s.capacity)
	s.b1Idx = make(map[K]*list.Element)
	s.b2Idx = make(map[K]*list.Element)
	s.p = 0
}

// Len returns the number of resident entries (ghost keys hold no values).
func (s *store[K, V]) Len() int { return s.t1.Len() + s.t2.Len() }

// replace evicts one resident entry per the ARC REPLACE rule: demote the
// T1 LRU into B1 when T1 exceeds its target p (or matches it on a B2 hit),
// otherwise demote the T2 LRU into B2.
func (s *store[K, V]) replace(b2Hit bool) {
	if s.t1.Len() >= 1 && (s.t1.Len() > s.p || (b2Hit && s.t1.Len() == s.p)) {
		s.evictResident(s.t1, s.t1Idx, s.b1, s.b1Idx)
	} else if s.t2.Len() > 0 {
		s.evictResident(s.t2, s.t2Idx, s.b2, s.b2Idx)
	}
}

// evictResident removes the LRU entry of a resident list, optionally leaving
// its key behind as a ghost, and reports the eviction to the shard.
func (s *store[K, V]) evictResident(l *list.List, idx map[K]*list.Element, ghost *list.List, ghostIdx map[K]*list.Element) {
	tail := l.Back()
	if tail == nil {
		return
	}
	e := tail.Value.(*kv[K, V])
	l.Remove(tail)
	delete(idx, e.key)
	if ghost != nil {
		ghostIdx[e.key] = ghost.PushFront(e.key)
	}
	s.hooks.OnEvict(e.key, e.val)
}

// dropGhost discards the LRU ghost key of a ghost list.
func (s *store[K, V]) dropGhost(ghost *list.List, ghostIdx map[K]*list.Element) {
	tail := ghost.Back()
	if tail == nil {
		return
	}
	delete(ghostIdx, tail.Value.(K))
	ghost.Remove(tail)
}
