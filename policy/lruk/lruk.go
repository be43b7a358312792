// Package lruk implements the LRU-K eviction store.
//
// A key must be touched K times before it is admitted into the resident
// cache; until then its accesses accumulate in a bounded history list that
// holds counts (and the most recent pending value) but no resident entry.
// One-shot scans therefore never displace the working set, which is the
// same pressure 2Q relieves with its probation queue.
package lruk

import (
	"container/list"

	"github.com/IvanBrykalov/freqcache/policy"
)

// kv is a resident entry. Element values in the resident list are *kv.
type kv[K comparable, V any] struct {
	key K
	val V
}

// hist tracks a not-yet-admitted key: how often it was touched and the most
// recent value a Put supplied for it (admission needs a value to store).
type hist[K comparable, V any] struct {
	key    K
	hits   int
	val    V
	hasVal bool
}

// store implements policy.Store with LRU-K admission.
//
// Resident entries: map + list, MRU at Front. History: map + list, also
// MRU at Front, bounded by historyCap; overflow drops the coldest history
// key. All ordering updates are O(1) list moves.
type store[K comparable, V any] struct {
	capacity   int
	k          int
	historyCap int
	hooks      policy.Hooks[K, V]

	res     map[K]*list.Element
	resList *list.List

	histIdx  map[K]*list.Element
	histList *list.List
}

// New constructs an LRU-K policy factory.
//   - k: number of accesses required for admission (values < 1 clamp to 1;
//     k == 1 degrades to plain LRU).
//   - historyCap: history size; <= 0 means "same as the store capacity".
func New[K comparable, V any](k, historyCap int) policy.Policy[K, V] {
	if k < 1 {
		k = 1
	}
	return lrukPolicy[K, V]{k: k, historyCap: historyCap}
}

type lrukPolicy[K comparable, V any] struct {
	k          int
	historyCap int
}

func (p lrukPolicy[K, V]) New(capacity int, h policy.Hooks[K, V]) policy.Store[K, V] {
	return NewStore[K, V](capacity, p.k, p.historyCap, h)
}

// NewStore builds a single standalone LRU-K store. capacity 0 yields a
// permanent no-op store. Not safe for concurrent use.
func NewStore[K comparable, V any](capacity, k, historyCap int, h policy.Hooks[K, V]) policy.Store[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	if k < 1 {
		k = 1
	}
	if historyCap <= 0 {
		historyCap = capacity
	}
	if h == nil {
		h = policy.NoopHooks[K, V]{}
	}
	return &store[K, V]{
		capacity:   capacity,
		k:          k,
		historyCap: historyCap,
		hooks:      h,
		res:        make(map[K]*list.Element, capacity),
		resList:    list.New(),
		histIdx:    make(map[K]*list.Element),
		histList:   list.New(),
	}
}

// Get returns the resident value for k, promoting it to MRU. A miss on a
// tracked-but-unadmitted key still counts toward its admission threshold;
// crossing the threshold admits the key if a Put has supplied a value.
func (s *store[K, V]) Get(k K) (V, bool) {
	if el, ok := s.res[k]; ok {
		s.resList.MoveToFront(el)
		return el.Value.(*kv[K, V]).val, true
	}
	if s.capacity == 0 {
		var zero V
		return zero, false
	}
	he := s.touchHistory(k)
	if he.hits >= s.k && he.hasVal {
		v := he.val
		s.admit(he)
		return v, true
	}
	var zero V
	return zero, false
}

// Put inserts or updates k→v. Resident keys update in place and promote to
// MRU. Unknown keys accumulate in the history; once a key's count reaches
// the threshold it is admitted, evicting the resident LRU tail if needed.
func (s *store[K, V]) Put(k K, v V) {
	if s.capacity == 0 {
		return
	}
	if el, ok := s.res[k]; ok {
		el.Value.(*kv[K, V]).val = v
		s.resList.MoveToFront(el)
		return
	}
	he := s.touchHistory(k)
	he.val = v
	he.hasVal = true
	if he.hits >= s.k {
		s.admit(he)
	}
}

// Purge discards resident entries and the admission history.
func (s *store[K, V]) Purge() {
	s.res = make(map[K]*list.Element, s.capacity)
	s.resList.Init()
	s.histIdx = make(map[K]*list.Element)
	s.histList.Init()
}

// Len returns the number of resident entries (history keys are not resident).
func (s *store[K, V]) Len() int { return len(s.res) }

// touchHistory bumps the access count for an unadmitted key, creating its
// history slot at MRU on first touch and dropping the coldest history key
// when the history overflows.
func (s *store[K, V]) touchHistory(k K) *hist[K, V] {
	if el, ok := s.histIdx[k]; ok {
		he := el.Value.(*hist[K, V])
		he.hits++
		s.histList.MoveToFront(el)
		return he
	}
	he := &hist[K, V]{key: k, hits: 1}
	s.histIdx[k] = s.histList.PushFront(he)
	for s.histList.Len() > s.historyCap {
		tail := s.histList.Back()
		if tail == nil {
			break
		}
		delete(s.histIdx, tail.Value.(*hist[K, V]).key)
		s.histList.Remove(tail)
	}
	return he
}

// admit moves a key from the history into the resident cache, evicting the
// resident LRU tail when at capacity.
func (s *store[K, V]) admit(he *hist[K, V]) {
	if el, ok := s.histIdx[he.key]; ok {
		s.histList.Remove(el)
		delete(s.histIdx, he.key)
	}
	if len(s.res) == s.capacity {
		tail := s.resList.Back()
		victim := tail.Value.(*kv[K, V])
		s.resList.Remove(tail)
		delete(s.res, victim.key)
		s.hooks.OnEvict(victim.key, victim.val)
	}
	s.res[he.key] = s.resList.PushFront(&kv[K, V]{key: he.key, val: he.val})
}
