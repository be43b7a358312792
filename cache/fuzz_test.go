package cache

import (
	"strings"
	"testing"
)

// Fuzz basic Put/Get/Purge semantics under arbitrary string inputs.
// Guards against panics and ensures core invariants hold.
// NOTE: key/value lengths are capped to avoid pathological memory usage
// during fuzzing (this does not weaken the invariants we check).
func FuzzCache_PutGetPurge(f *testing.F) {
	// Seed corpus: empty, ASCII, Unicode, long strings.
	f.Add("", "")
	f.Add("a", "1")
	f.Add("b", "2")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12 // 4096
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c := New[string, string](Options[string, string]{Capacity: 16})
		t.Cleanup(func() { _ = c.Close() })

		// Put -> Get must return the same value.
		c.Put(k, v)
		got, ok := c.Get(k)
		if !ok || got != v {
			t.Fatalf("after Put/Get: want %q, got %q ok=%v", v, got, ok)
		}

		// Repeated Gets keep returning the current value unchanged.
		for i := 0; i < 3; i++ {
			if got, ok = c.Get(k); !ok || got != v {
				t.Fatalf("repeated Get #%d: want %q, got %q ok=%v", i, v, got, ok)
			}
		}

		// An update replaces the value.
		c.Put(k, v+"!")
		if got, ok = c.Get(k); !ok || got != v+"!" {
			t.Fatalf("after update: want %q, got %q ok=%v", v+"!", got, ok)
		}

		// Purge must make the key unreachable.
		c.Purge()
		if _, ok = c.Get(k); ok {
			t.Fatalf("key must be absent after Purge")
		}
		if c.Len() != 0 {
			t.Fatalf("Len after Purge = %d, want 0", c.Len())
		}

		// The cache must be reusable after Purge.
		c.Put(k, v)
		if got, ok = c.Get(k); !ok || got != v {
			t.Fatalf("after Purge+Put: want %q, got %q ok=%v", v, got, ok)
		}
	})
}
