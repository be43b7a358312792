package lruk

import (
	"strconv"
	"testing"
)

type captureHooks[K comparable, V any] struct{ keys []K }

func (h *captureHooks[K, V]) OnEvict(k K, _ V) { h.keys = append(h.keys, k) }

// With k=2 a single Put leaves the key in the history, not resident;
// the second access admits it.
func TestStore_AdmissionThreshold(t *testing.T) {
	t.Parallel()

	s := NewStore[string, int](4, 2, 0, nil)

	s.Put("a", 1)
	if s.Len() != 0 {
		t.Fatalf("Len after first touch = %d, want 0", s.Len())
	}

	// Second touch crosses the threshold; the pending value is served.
	if v, ok := s.Get("a"); !ok || v != 1 {
		t.Fatalf("Get a: got %v ok=%v, want 1 true", v, ok)
	}
	if s.Len() != 1 {
		t.Fatalf("Len after admission = %d, want 1", s.Len())
	}
	if v, ok := s.Get("a"); !ok || v != 1 {
		t.Fatalf("resident Get a: got %v ok=%v, want 1 true", v, ok)
	}
}

// k=1 degrades to plain LRU: first Put admits immediately.
func TestStore_KOne(t *testing.T) {
	t.Parallel()

	s := NewStore[string, int](2, 1, 0, nil)
	s.Put("a", 1)
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

// One-shot keys never reach the resident cache, so a scan cannot displace
// the working set.
func TestStore_ScanResistance(t *testing.T) {
	t.Parallel()

	h := &captureHooks[string, int]{}
	s := NewStore[string, int](2, 2, 64, h)

	s.Put("hot", 1)
	s.Put("hot", 1) // admitted

	for i := 0; i < 50; i++ {
		s.Put("scan:"+strconv.Itoa(i), i) // single touch each
	}

	if _, ok := s.Get("hot"); !ok {
		t.Fatal("hot key must survive the scan")
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (scan keys unadmitted)", s.Len())
	}
	if len(h.keys) != 0 {
		t.Fatalf("no resident evictions expected, got %v", h.keys)
	}
}

// Admitting beyond capacity evicts the resident LRU tail.
func TestStore_ResidentEviction(t *testing.T) {
	t.Parallel()

	h := &captureHooks[string, int]{}
	s := NewStore[string, int](2, 2, 0, h)

	s.Put("a", 1)
	s.Put("a", 1) // resident: [a]
	s.Put("b", 2)
	s.Put("b", 2) // resident: [b a]
	s.Get("a")    // resident: [a b]
	s.Put("c", 3)
	s.Put("c", 3) // admits c, evicts LRU (b)

	if len(h.keys) != 1 || h.keys[0] != "b" {
		t.Fatalf("evicted %v, want [b]", h.keys)
	}
	if _, ok := s.Get("a"); !ok {
		t.Fatal("a must survive")
	}
	if v, ok := s.Get("c"); !ok || v != 3 {
		t.Fatalf("c: got %v ok=%v, want 3 true", v, ok)
	}
}

// The history is bounded: overflowing it forgets the coldest key, whose
// count restarts on the next touch.
func TestStore_HistoryBound(t *testing.T) {
	t.Parallel()

	s := NewStore[string, int](4, 2, 2, nil)

	s.Put("a", 1)
	s.Put("b", 2)
	s.Put("c", 3) // history holds 2: a dropped

	if _, ok := s.Get("a"); ok {
		t.Fatal("a was forgotten; this touch restarts its count")
	}
	// A Put supplies the value again; as the second touch since the reset
	// it crosses the threshold and admits.
	s.Put("a", 1)
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1 after re-admission", s.Len())
	}
}

// Capacity 0 degrades the store to a permanent no-op.
func TestStore_CapacityZero(t *testing.T) {
	t.Parallel()

	s := NewStore[string, int](0, 2, 0, nil)
	s.Put("a", 1)
	s.Put("a", 1)
	if _, ok := s.Get("a"); ok {
		t.Fatal("capacity-0 store must never hit")
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
}

// Purge clears residents and the admission history.
func TestStore_Purge(t *testing.T) {
	t.Parallel()

	s := NewStore[string, int](2, 2, 0, nil)
	s.Put("a", 1)
	s.Put("a", 1)
	s.Put("b", 2) // history only
	s.Purge()

	if s.Len() != 0 {
		t.Fatalf("Len after Purge = %d, want 0", s.Len())
	}
	// b's single pre-purge touch must not count anymore.
	s.Put("b", 2)
	if s.Len() != 0 {
		t.Fatal("history must be empty after Purge")
	}
}
