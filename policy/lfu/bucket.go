package lfu

// entry is one cached item. It lives in exactly one bucket (the one matching
// its current frequency) and is referenced, non-owning, by the store's key
// index. Links are plain pointers; the bucket sentinels guarantee prev/next
// are never nil for a linked member, so unlinking needs no nil checks.
type entry[K comparable, V any] struct {
	key  K
	val  V
	freq int

	prev *entry[K, V]
	next *entry[K, V]
}

// bucket is a sentinel-headed doubly linked list of entries that all share
// one frequency value. The oldest entry sits right after head; new entries
// are appended before tail. Every operation is O(1) and no traversal is
// exposed: the store always supplies a direct entry reference.
type bucket[K comparable, V any] struct {
	freq int
	head *entry[K, V] // sentinel
	tail *entry[K, V] // sentinel
}

func newBucket[K comparable, V any](freq int) *bucket[K, V] {
	b := &bucket[K, V]{
		freq: freq,
		head: &entry[K, V]{},
		tail: &entry[K, V]{},
	}
	b.head.next = b.tail
	b.tail.prev = b.head
	return b
}

// empty reports whether the bucket holds no real entries.
func (b *bucket[K, V]) empty() bool { return b.head.next == b.tail }

// append inserts e before the tail sentinel, the most-recently-touched
// position within this frequency.
func (b *bucket[K, V]) append(e *entry[K, V]) {
	e.prev = b.tail.prev
	e.next = b.tail
	b.tail.prev.next = e
	b.tail.prev = e
}

// remove unlinks e from the bucket. e must be a current member; the store
// only ever passes entries through the bucket recorded for their frequency,
// which makes a foreign remove unrepresentable.
func (b *bucket[K, V]) remove(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
}

// oldest returns the head-most real entry: the eviction candidate for this
// frequency. Must not be called on an empty bucket.
func (b *bucket[K, V]) oldest() *entry[K, V] { return b.head.next }
