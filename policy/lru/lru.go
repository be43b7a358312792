// Package lru implements the classic least-recently-used eviction store.
package lru

import "github.com/IvanBrykalov/freqcache/policy"

// node is an intrusive doubly linked list element: head is MRU, tail is LRU.
type node[K comparable, V any] struct {
	key  K
	val  V
	prev *node[K, V]
	next *node[K, V]
}

// store implements policy.Store with move-to-front LRU ordering.
// A map gives O(1) lookup; the intrusive list gives O(1) promotion and a
// direct eviction candidate at the tail.
type store[K comparable, V any] struct {
	capacity int
	hooks    policy.Hooks[K, V]

	m    map[K]*node[K, V]
	head *node[K, V] // MRU
	tail *node[K, V] // LRU
}

// New returns a Policy factory producing LRU stores.
func New[K comparable, V any]() policy.Policy[K, V] { return lruPolicy[K, V]{} }

type lruPolicy[K comparable, V any] struct{}

func (lruPolicy[K, V]) New(capacity int, h policy.Hooks[K, V]) policy.Store[K, V] {
	return NewStore[K, V](capacity, h)
}

// NewStore builds a single standalone LRU store. capacity 0 yields a
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
		m:        make(map[K]*node[K, V], capacity),
	}
}

// Get returns the value for k and promotes the node to MRU.
func (s *store[K, V]) Get(k K) (V, bool) {
	n, ok := s.m[k]
	if !ok {
		var zero V
		return zero, false
	}
	s.moveToFront(n)
	return n.val, true
}

// Put inserts or updates k→v. Updates promote to MRU; inserts evict the
// current LRU tail when the store is full.
func (s *store[K, V]) Put(k K, v V) {
	if s.capacity == 0 {
		return
	}
	if n, ok := s.m[k]; ok {
		n.val = v
		s.moveToFront(n)
		return
	}
	if len(s.m) == s.capacity {
		victim := s.tail
		s.remove(victim)
		delete(s.m, victim.key)
		s.hooks.OnEvict(victim.key, victim.val)
	}
	n := &node[K, V]{key: k, val: v}
	s.m[k] = n
	s.pushFront(n)
}

// Purge discards all entries.
func (s *store[K, V]) Purge() {
	s.m = make(map[K]*node[K, V], s.capacity)
	s.head, s.tail = nil, nil
}

// Len returns the number of resident entries.
func (s *store[K, V]) Len() int { return len(s.m) }

// pushFront inserts n at MRU in O(1).
func (s *store[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
}

// moveToFront promotes n to MRU in O(1).
func (s *store[K, V]) moveToFront(n *node[K, V]) {
	if n == s.head {
		return
	}
	s.remove(n)
	s.pushFront(n)
}

// remove detaches n from the list in O(1).
func (s *store[K, V]) remove(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if s.head == n {
		s.head = n.next
	}
	if s.tail == n {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
